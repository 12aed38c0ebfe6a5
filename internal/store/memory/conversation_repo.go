package memory

import (
	"context"

	"mockchat/internal/domain"
)

type ConversationRepo struct {
	db *DB
}

func NewConversationRepo(db *DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

var _ domain.ConversationRepository = (*ConversationRepo)(nil)

func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if c.ID == "" {
		c.ID = r.db.nextID()
	}
	now := r.db.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	r.db.convs[c.ID] = cloneConversation(c)
	r.db.convIDs = append(r.db.convIDs, c.ID)
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.convs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneConversation(c), nil
}

func (r *ConversationRepo) List(ctx context.Context) ([]*domain.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	convs := make([]*domain.Conversation, 0, len(r.db.convIDs))
	for _, id := range r.db.convIDs {
		convs = append(convs, cloneConversation(r.db.convs[id]))
	}
	return convs, nil
}

func (r *ConversationRepo) Update(ctx context.Context, id string, patch domain.ConversationPatch) (*domain.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.convs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	c.UpdatedAt = r.db.now()
	return cloneConversation(c), nil
}

func (r *ConversationRepo) Touch(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.convs[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.UpdatedAt = r.db.now()
	return nil
}

func (r *ConversationRepo) Delete(ctx context.Context, id string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.convs[id]; !ok {
		return nil, domain.ErrNotFound
	}

	var removed []string
	for _, mid := range r.db.msgIDs {
		if r.db.messages[mid].ConversationID == id {
			removed = append(removed, mid)
		}
	}
	for _, mid := range removed {
		r.db.removeMessageLocked(mid)
	}

	delete(r.db.convs, id)
	for i, cid := range r.db.convIDs {
		if cid == id {
			r.db.convIDs = append(r.db.convIDs[:i], r.db.convIDs[i+1:]...)
			break
		}
	}
	return removed, nil
}
