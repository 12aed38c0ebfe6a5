package service

// Broadcaster publishes store change events to connected clients.
// The ws hub implements it; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Event names emitted on the websocket feed.
const (
	EventMessageCreated      = "message.created"
	EventMessageUpdated      = "message.updated"
	EventMessageDeleted      = "message.deleted"
	EventMessageStatus       = "message.status"
	EventConversationCreated = "conversation.created"
	EventConversationUpdated = "conversation.updated"
	EventConversationDeleted = "conversation.deleted"
)

func notify(b Broadcaster, event string, data any) {
	if b != nil {
		b.Broadcast(event, data)
	}
}
