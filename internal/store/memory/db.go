// Package memory implements the messaging store as id-indexed maps guarded
// by a single mutex. Every mutation, including the two-step append-message +
// update-conversation write, runs as one critical section.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mockchat/internal/domain"
)

// DB owns the three entity collections plus the attachment blob store.
// Nothing survives process restart.
type DB struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	users   map[string]*domain.User
	userIDs []string

	convs   map[string]*domain.Conversation
	convIDs []string

	messages map[string]*domain.Message
	msgIDs   []string
	msgSeq   map[string]uint64 // insertion order, tie-break for equal timestamps

	blobs map[string]*domain.Blob
}

// Open creates an empty store.
func Open() *DB {
	return &DB{
		now:      time.Now,
		users:    make(map[string]*domain.User),
		convs:    make(map[string]*domain.Conversation),
		messages: make(map[string]*domain.Message),
		msgSeq:   make(map[string]uint64),
		blobs:    make(map[string]*domain.Blob),
	}
}

// SetClock overrides the time source; used by tests.
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

func (db *DB) nextID() string {
	return uuid.NewString()
}

// newestMessageLocked returns the latest surviving message of a conversation,
// by timestamp then insertion order. Caller must hold the lock.
func (db *DB) newestMessageLocked(conversationID string) *domain.Message {
	var newest *domain.Message
	for _, id := range db.msgIDs {
		m := db.messages[id]
		if m.ConversationID != conversationID {
			continue
		}
		if newest == nil || m.Timestamp.After(newest.Timestamp) ||
			(m.Timestamp.Equal(newest.Timestamp) && db.msgSeq[m.ID] > db.msgSeq[newest.ID]) {
			newest = m
		}
	}
	return newest
}

// refreshLastMessageLocked recomputes a conversation's denormalized
// LastMessage/UpdatedAt after a message mutation. When no messages remain,
// LastMessage is cleared and UpdatedAt keeps its previous value.
func (db *DB) refreshLastMessageLocked(conversationID string) {
	c, ok := db.convs[conversationID]
	if !ok {
		return
	}
	newest := db.newestMessageLocked(conversationID)
	if newest == nil {
		c.LastMessage = nil
		return
	}
	c.LastMessage = cloneMessage(newest)
	c.UpdatedAt = newest.Timestamp
}

// removeMessageLocked drops a message and the blobs of its attachments.
func (db *DB) removeMessageLocked(id string) {
	m, ok := db.messages[id]
	if !ok {
		return
	}
	for _, att := range m.Attachments {
		delete(db.blobs, att.ID)
	}
	delete(db.messages, id)
	delete(db.msgSeq, id)
	for i, mid := range db.msgIDs {
		if mid == id {
			db.msgIDs = append(db.msgIDs[:i], db.msgIDs[i+1:]...)
			break
		}
	}
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func cloneMessage(m *domain.Message) *domain.Message {
	cp := *m
	if m.EditedAt != nil {
		t := *m.EditedAt
		cp.EditedAt = &t
	}
	if m.Attachments != nil {
		cp.Attachments = append([]domain.Attachment(nil), m.Attachments...)
	}
	return &cp
}

func cloneConversation(c *domain.Conversation) *domain.Conversation {
	cp := *c
	if c.LastMessage != nil {
		cp.LastMessage = cloneMessage(c.LastMessage)
	}
	return &cp
}
