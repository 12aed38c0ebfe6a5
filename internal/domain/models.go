package domain

import "time"

// ConversationType distinguishes one-on-one threads from group threads.
type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	ConversationGroup  ConversationType = "group"
)

func (t ConversationType) Valid() bool {
	return t == ConversationDirect || t == ConversationGroup
}

// MessageType is derived from a message's attachments, never set by clients.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
)

// MessageStatus moves forward only: sent -> delivered -> read.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

func (s MessageStatus) rank() int {
	switch s {
	case StatusSent:
		return 0
	case StatusDelivered:
		return 1
	case StatusRead:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether a transition from s to next moves forward.
func (s MessageStatus) CanAdvanceTo(next MessageStatus) bool {
	return next.rank() > s.rank()
}

// User represents a messaging contact.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// Conversation groups an ordered set of messages. LastMessage is a
// denormalized copy of the newest surviving message in the conversation,
// kept consistent by the store on every message mutation.
type Conversation struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Type        ConversationType `json:"type"`
	LastMessage *Message         `json:"lastMessage,omitempty"`
	UnreadCount int              `json:"unreadCount"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ConversationPatch carries the fields a PATCH request may change.
// Nil pointers leave the field untouched.
type ConversationPatch struct {
	Name *string
	Type *ConversationType
}

// Message is a single chat message. Timestamp, SenderID and ConversationID
// are immutable after creation; edits touch Content, Edited and EditedAt only.
type Message struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversationId"`
	SenderID       string        `json:"senderId"`
	Content        string        `json:"content"`
	Timestamp      time.Time     `json:"timestamp"`
	Edited         bool          `json:"edited,omitempty"`
	EditedAt       *time.Time    `json:"editedAt,omitempty"`
	Type           MessageType   `json:"type"`
	Status         MessageStatus `json:"status"`
	Attachments    []Attachment  `json:"attachments,omitempty"`
}

// Attachment is an immutable file reference owned by exactly one message.
type Attachment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Blob holds uploaded attachment bytes for the lifetime of the process.
type Blob struct {
	ID          string
	Name        string
	ContentType string
	Data        []byte
}
