package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mockchat/internal/domain"
)

// defaultSenderID mirrors the client's fallback identity when no senderId
// accompanies a message.
const defaultSenderID = "1"

// minSearchQueryLen is the shortest query the search contract accepts;
// anything shorter yields an empty result without touching the store.
const minSearchQueryLen = 2

type MessageService struct {
	messages  domain.MessageRepository
	blobs     domain.BlobRepository
	scheduler *DeliveryScheduler
	events    Broadcaster

	DefaultPageSize int
}

func NewMessageService(
	messages domain.MessageRepository,
	blobs domain.BlobRepository,
	scheduler *DeliveryScheduler,
	events Broadcaster,
	defaultPageSize int,
) *MessageService {
	return &MessageService{
		messages:        messages,
		blobs:           blobs,
		scheduler:       scheduler,
		events:          events,
		DefaultPageSize: defaultPageSize,
	}
}

// AttachmentUpload carries one uploaded file from a multipart request.
type AttachmentUpload struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

type MessageCreateInput struct {
	ConversationID string
	SenderID       string
	Content        string
	Uploads        []AttachmentUpload
}

// Create stores a new message, updates the owning conversation's LastMessage
// and arms the delivered-status timer. The message type is derived from the
// attachments; a type supplied by the client is ignored.
func (s *MessageService) Create(ctx context.Context, in MessageCreateInput) (*domain.Message, error) {
	if in.Content == "" && len(in.Uploads) == 0 {
		return nil, fmt.Errorf("%w: message content cannot be empty", domain.ErrInvalidInput)
	}
	senderID := in.SenderID
	if senderID == "" {
		senderID = defaultSenderID
	}

	attachments, err := s.storeUploads(ctx, in.Uploads)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: in.ConversationID,
		SenderID:       senderID,
		Content:        in.Content,
		Type:           deriveMessageType(attachments),
		Status:         domain.StatusSent,
		Attachments:    attachments,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.scheduler.Schedule(msg.ID, func() {
		s.markDelivered(msg.ID)
	})

	notify(s.events, EventMessageCreated, msg)
	return msg, nil
}

// markDelivered is the timer callback. The id lookup failing means the
// message vanished in the meantime; the transition is then a no-op.
func (s *MessageService) markDelivered(messageID string) {
	msg, err := s.messages.UpdateStatus(context.Background(), messageID, domain.StatusDelivered)
	if err != nil {
		return
	}
	if msg.Status == domain.StatusDelivered {
		notify(s.events, EventMessageStatus, msg)
	}
}

func (s *MessageService) storeUploads(ctx context.Context, uploads []AttachmentUpload) ([]domain.Attachment, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	attachments := make([]domain.Attachment, 0, len(uploads))
	for _, up := range uploads {
		id := uuid.NewString()
		if err := s.blobs.Put(ctx, &domain.Blob{
			ID:          id,
			Name:        up.Name,
			ContentType: up.ContentType,
			Data:        up.Data,
		}); err != nil {
			return nil, fmt.Errorf("store upload %q: %w", up.Name, err)
		}

		att := domain.Attachment{
			ID:   id,
			Name: up.Name,
			Size: up.Size,
			Type: up.ContentType,
			URL:  "/api/messaging/uploads/" + id,
		}
		if strings.HasPrefix(up.ContentType, "image/") {
			att.ThumbnailURL = att.URL
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

// deriveMessageType: image when every attachment is image media, file when
// any non-image attachment is present, text when there are none.
func deriveMessageType(attachments []domain.Attachment) domain.MessageType {
	if len(attachments) == 0 {
		return domain.MessageText
	}
	for _, att := range attachments {
		if !strings.HasPrefix(att.Type, "image/") {
			return domain.MessageFile
		}
	}
	return domain.MessageImage
}

func (s *MessageService) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// List returns a conversation's messages newest first, windowed by
// offset/limit. A non-positive limit falls back to the default page size.
func (s *MessageService) List(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = s.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.messages.ListForConversation(ctx, conversationID, limit, offset)
}

// Edit overwrites the content and flags the message as edited. The caller's
// identity is not checked against the original sender; see DESIGN.md.
func (s *MessageService) Edit(ctx context.Context, id, content string) (*domain.Message, error) {
	msg, err := s.messages.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	notify(s.events, EventMessageUpdated, msg)
	return msg, nil
}

// Delete removes the message, cancels its pending delivery transition and
// lets the store recompute the conversation's LastMessage.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}
	s.scheduler.Cancel(id)
	notify(s.events, EventMessageDeleted, map[string]string{"id": id})
	return nil
}

// Search matches the query case-insensitively against message content.
// Queries shorter than two characters return an empty result.
func (s *MessageService) Search(ctx context.Context, query, conversationID string) ([]*domain.Message, error) {
	if len([]rune(query)) < minSearchQueryLen {
		return []*domain.Message{}, nil
	}
	return s.messages.Search(ctx, query, conversationID)
}
