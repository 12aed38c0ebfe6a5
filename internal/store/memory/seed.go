package memory

import (
	"context"
	"fmt"
	"time"

	"mockchat/internal/domain"
)

// Seed loads the demo dataset: one online contact, a direct conversation
// with him, and a single read message from an hour ago.
func Seed(ctx context.Context, db *DB) error {
	users := NewUserRepo(db)
	convs := NewConversationRepo(db)
	msgs := NewMessageRepo(db)

	now := time.Now()

	pedro := &domain.User{
		Name:     "Pedro Gonzalez",
		Email:    "pedro@example.com",
		Avatar:   "/avatar-pedro.png",
		IsOnline: true,
		LastSeen: now,
	}
	if err := users.Create(ctx, pedro); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	conv := &domain.Conversation{
		Name:      "Pedro González",
		Type:      domain.ConversationDirect,
		CreatedAt: now.Add(-24 * time.Hour),
		UpdatedAt: now.Add(-24 * time.Hour),
	}
	if err := convs.Create(ctx, conv); err != nil {
		return fmt.Errorf("seed conversation: %w", err)
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       pedro.ID,
		Content:        "¡Hola! ¿Cómo estás?",
		Timestamp:      now.Add(-time.Hour),
		Type:           domain.MessageText,
		Status:         domain.StatusRead,
	}
	if err := msgs.Create(ctx, msg); err != nil {
		return fmt.Errorf("seed message: %w", err)
	}
	return nil
}
