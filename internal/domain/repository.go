package domain

import "context"

// UserRepository defines store operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// ConversationRepository defines store operations for conversations.
type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation) error
	GetByID(ctx context.Context, id string) (*Conversation, error)
	List(ctx context.Context) ([]*Conversation, error)
	Update(ctx context.Context, id string, patch ConversationPatch) (*Conversation, error)
	// Touch refreshes UpdatedAt without changing anything else.
	Touch(ctx context.Context, id string) error
	// Delete removes the conversation and cascades to its messages,
	// returning the ids of the removed messages.
	Delete(ctx context.Context, id string) ([]string, error)
}

// MessageRepository defines store operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	ListForConversation(ctx context.Context, conversationID string, limit, offset int) ([]*Message, error)
	UpdateContent(ctx context.Context, id, content string) (*Message, error)
	// UpdateStatus advances the message status; backward transitions are
	// silently ignored and the current message is returned.
	UpdateStatus(ctx context.Context, id string, status MessageStatus) (*Message, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query, conversationID string) ([]*Message, error)
}

// BlobRepository holds uploaded attachment bytes.
type BlobRepository interface {
	Put(ctx context.Context, b *Blob) error
	Get(ctx context.Context, id string) (*Blob, error)
}
