package service

import (
	"context"
	"fmt"

	"mockchat/internal/domain"
)

type ConversationService struct {
	conversations domain.ConversationRepository
	scheduler     *DeliveryScheduler
	events        Broadcaster
}

func NewConversationService(
	conversations domain.ConversationRepository,
	scheduler *DeliveryScheduler,
	events Broadcaster,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		scheduler:     scheduler,
		events:        events,
	}
}

type ConversationCreateInput struct {
	Name string
	Type domain.ConversationType
}

func (s *ConversationService) Create(ctx context.Context, in ConversationCreateInput) (*domain.Conversation, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be 'direct' or 'group'", domain.ErrInvalidInput)
	}

	conv := &domain.Conversation{
		Name: in.Name,
		Type: in.Type,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	notify(s.events, EventConversationCreated, conv)
	return conv, nil
}

// List returns every conversation. The userId filter is accepted by the API
// but deliberately not applied; see DESIGN.md.
func (s *ConversationService) List(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	_ = userID
	return s.conversations.List(ctx)
}

func (s *ConversationService) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.conversations.GetByID(ctx, id)
}

func (s *ConversationService) Update(ctx context.Context, id string, patch domain.ConversationPatch) (*domain.Conversation, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be 'direct' or 'group'", domain.ErrInvalidInput)
	}
	conv, err := s.conversations.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	notify(s.events, EventConversationUpdated, conv)
	return conv, nil
}

// Delete removes the conversation and every message in it, cancelling any
// delivery transitions still pending for those messages.
func (s *ConversationService) Delete(ctx context.Context, id string) error {
	removed, err := s.conversations.Delete(ctx, id)
	if err != nil {
		return err
	}
	for _, messageID := range removed {
		s.scheduler.Cancel(messageID)
	}
	notify(s.events, EventConversationDeleted, map[string]string{"id": id})
	return nil
}

// Leave only refreshes the conversation's UpdatedAt; membership is not
// tracked by the store.
func (s *ConversationService) Leave(ctx context.Context, id string) error {
	return s.conversations.Touch(ctx, id)
}
