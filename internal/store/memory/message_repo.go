package memory

import (
	"context"
	"sort"
	"strings"

	"mockchat/internal/domain"
)

type MessageRepo struct {
	db *DB
}

func NewMessageRepo(db *DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

// Create appends the message and refreshes the owning conversation's
// LastMessage/UpdatedAt in the same critical section. A message addressed to
// an unknown conversation is still stored; the conversation update is skipped.
func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if m.ID == "" {
		m.ID = r.db.nextID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = r.db.now()
	}
	if m.Status == "" {
		m.Status = domain.StatusSent
	}

	r.db.seq++
	r.db.messages[m.ID] = cloneMessage(m)
	r.db.msgIDs = append(r.db.msgIDs, m.ID)
	r.db.msgSeq[m.ID] = r.db.seq

	r.db.refreshLastMessageLocked(m.ConversationID)
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneMessage(m), nil
}

func (r *MessageRepo) ListForConversation(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var msgs []*domain.Message
	for _, id := range r.db.msgIDs {
		if m := r.db.messages[id]; m.ConversationID == conversationID {
			msgs = append(msgs, m)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		if !msgs[i].Timestamp.Equal(msgs[j].Timestamp) {
			return msgs[i].Timestamp.After(msgs[j].Timestamp)
		}
		return r.db.msgSeq[msgs[i].ID] > r.db.msgSeq[msgs[j].ID]
	})

	if offset >= len(msgs) {
		return []*domain.Message{}, nil
	}
	msgs = msgs[offset:]
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[:limit]
	}

	out := make([]*domain.Message, len(msgs))
	for i, m := range msgs {
		out[i] = cloneMessage(m)
	}
	return out, nil
}

func (r *MessageRepo) UpdateContent(ctx context.Context, id, content string) (*domain.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	m, ok := r.db.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.Content = content
	m.Edited = true
	now := r.db.now()
	m.EditedAt = &now

	// Keep the denormalized copy on the conversation in sync.
	if c, ok := r.db.convs[m.ConversationID]; ok && c.LastMessage != nil && c.LastMessage.ID == id {
		c.LastMessage = cloneMessage(m)
	}
	return cloneMessage(m), nil
}

func (r *MessageRepo) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	m, ok := r.db.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !m.Status.CanAdvanceTo(status) {
		return cloneMessage(m), nil
	}
	m.Status = status

	if c, ok := r.db.convs[m.ConversationID]; ok && c.LastMessage != nil && c.LastMessage.ID == id {
		c.LastMessage = cloneMessage(m)
	}
	return cloneMessage(m), nil
}

func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	m, ok := r.db.messages[id]
	if !ok {
		return domain.ErrNotFound
	}
	conversationID := m.ConversationID
	wasLast := false
	if c, ok := r.db.convs[conversationID]; ok && c.LastMessage != nil && c.LastMessage.ID == id {
		wasLast = true
	}

	r.db.removeMessageLocked(id)
	if wasLast {
		r.db.refreshLastMessageLocked(conversationID)
	}
	return nil
}

// Search performs a case-insensitive substring match against message content,
// optionally scoped to one conversation. Results come back in storage order;
// ranking is not part of the contract.
func (r *MessageRepo) Search(ctx context.Context, query, conversationID string) ([]*domain.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	q := strings.ToLower(query)
	out := []*domain.Message{}
	for _, id := range r.db.msgIDs {
		m := r.db.messages[id]
		if conversationID != "" && m.ConversationID != conversationID {
			continue
		}
		if strings.Contains(strings.ToLower(m.Content), q) {
			out = append(out, cloneMessage(m))
		}
	}
	return out, nil
}
