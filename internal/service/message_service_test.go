package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockchat/internal/domain"
	"mockchat/internal/service"
	"mockchat/internal/store/memory"
)

// eventRecorder captures broadcasts for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) Broadcast(event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fixture struct {
	db        *memory.DB
	scheduler *service.DeliveryScheduler
	events    *eventRecorder
	msgs      *service.MessageService
	convs     *service.ConversationService
}

func newFixture(t *testing.T, delay time.Duration) *fixture {
	t.Helper()
	db := memory.Open()
	scheduler := service.NewDeliveryScheduler(delay)
	t.Cleanup(scheduler.Stop)
	events := &eventRecorder{}

	convRepo := memory.NewConversationRepo(db)
	msgRepo := memory.NewMessageRepo(db)
	blobRepo := memory.NewBlobRepo(db)

	return &fixture{
		db:        db,
		scheduler: scheduler,
		events:    events,
		msgs:      service.NewMessageService(msgRepo, blobRepo, scheduler, events, 50),
		convs:     service.NewConversationService(convRepo, scheduler, events),
	}
}

func (f *fixture) conversation(t *testing.T) *domain.Conversation {
	t.Helper()
	conv, err := f.convs.Create(context.Background(), service.ConversationCreateInput{
		Name: "Ana",
		Type: domain.ConversationDirect,
	})
	require.NoError(t, err)
	return conv
}

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("TextMessage", func(t *testing.T) {
		f := newFixture(t, time.Hour)
		conv := f.conversation(t)

		msg, err := f.msgs.Create(ctx, service.MessageCreateInput{
			ConversationID: conv.ID,
			Content:        "hi",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MessageText, msg.Type)
		assert.Equal(t, domain.StatusSent, msg.Status)
		assert.Equal(t, "1", msg.SenderID) // defaulted
		assert.False(t, msg.Timestamp.IsZero())

		got, err := f.convs.GetByID(ctx, conv.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastMessage)
		assert.Equal(t, msg.ID, got.LastMessage.ID)
		assert.True(t, got.UpdatedAt.Equal(msg.Timestamp))

		assert.Contains(t, f.events.names(), service.EventMessageCreated)
	})

	t.Run("EmptyContentRejected", func(t *testing.T) {
		f := newFixture(t, time.Hour)
		conv := f.conversation(t)

		_, err := f.msgs.Create(ctx, service.MessageCreateInput{ConversationID: conv.ID})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("AllImagesDeriveImageType", func(t *testing.T) {
		f := newFixture(t, time.Hour)
		conv := f.conversation(t)

		msg, err := f.msgs.Create(ctx, service.MessageCreateInput{
			ConversationID: conv.ID,
			Uploads: []service.AttachmentUpload{
				{Name: "a.png", Size: 3, ContentType: "image/png", Data: []byte("png")},
				{Name: "b.jpg", Size: 3, ContentType: "image/jpeg", Data: []byte("jpg")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MessageImage, msg.Type)
		require.Len(t, msg.Attachments, 2)
		assert.NotEmpty(t, msg.Attachments[0].URL)
		assert.Equal(t, msg.Attachments[0].URL, msg.Attachments[0].ThumbnailURL)
	})

	t.Run("MixedAttachmentsDeriveFileType", func(t *testing.T) {
		f := newFixture(t, time.Hour)
		conv := f.conversation(t)

		msg, err := f.msgs.Create(ctx, service.MessageCreateInput{
			ConversationID: conv.ID,
			Uploads: []service.AttachmentUpload{
				{Name: "a.png", Size: 3, ContentType: "image/png", Data: []byte("png")},
				{Name: "b.pdf", Size: 3, ContentType: "application/pdf", Data: []byte("pdf")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MessageFile, msg.Type)
		assert.Empty(t, msg.Attachments[1].ThumbnailURL)
	})
}

func TestDeliveryTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("SentBecomesDelivered", func(t *testing.T) {
		f := newFixture(t, 20*time.Millisecond)
		conv := f.conversation(t)

		msg, err := f.msgs.Create(ctx, service.MessageCreateInput{
			ConversationID: conv.ID,
			Content:        "hi",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSent, msg.Status)

		assert.Eventually(t, func() bool {
			got, err := f.msgs.GetByID(ctx, msg.ID)
			return err == nil && got.Status == domain.StatusDelivered
		}, time.Second, 5*time.Millisecond)

		assert.Contains(t, f.events.names(), service.EventMessageStatus)
	})

	t.Run("CancelledByMessageDelete", func(t *testing.T) {
		f := newFixture(t, 50*time.Millisecond)
		conv := f.conversation(t)

		msg, err := f.msgs.Create(ctx, service.MessageCreateInput{
			ConversationID: conv.ID,
			Content:        "hi",
		})
		require.NoError(t, err)
		require.Equal(t, 1, f.scheduler.Pending())

		require.NoError(t, f.msgs.Delete(ctx, msg.ID))
		assert.Equal(t, 0, f.scheduler.Pending())

		// The deleted id stays gone after the delay would have elapsed.
		time.Sleep(80 * time.Millisecond)
		_, err = f.msgs.GetByID(ctx, msg.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CancelledByConversationDelete", func(t *testing.T) {
		f := newFixture(t, 50*time.Millisecond)
		conv := f.conversation(t)

		_, err := f.msgs.Create(ctx, service.MessageCreateInput{
			ConversationID: conv.ID,
			Content:        "hi",
		})
		require.NoError(t, err)
		require.Equal(t, 1, f.scheduler.Pending())

		require.NoError(t, f.convs.Delete(ctx, conv.ID))
		assert.Equal(t, 0, f.scheduler.Pending())
	})
}

func TestEditMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)
	conv := f.conversation(t)

	msg, err := f.msgs.Create(ctx, service.MessageCreateInput{
		ConversationID: conv.ID,
		Content:        "original",
		SenderID:       "42",
	})
	require.NoError(t, err)

	edited, err := f.msgs.Edit(ctx, msg.ID, "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", edited.Content)
	assert.True(t, edited.Edited)
	require.NotNil(t, edited.EditedAt)
	assert.True(t, edited.Timestamp.Equal(msg.Timestamp))
	assert.Equal(t, "42", edited.SenderID)
	assert.Equal(t, conv.ID, edited.ConversationID)

	_, err = f.msgs.Edit(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMessageRecomputesLastMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)
	conv := f.conversation(t)

	first, err := f.msgs.Create(ctx, service.MessageCreateInput{ConversationID: conv.ID, Content: "first"})
	require.NoError(t, err)
	second, err := f.msgs.Create(ctx, service.MessageCreateInput{ConversationID: conv.ID, Content: "second"})
	require.NoError(t, err)

	require.NoError(t, f.msgs.Delete(ctx, second.ID))

	got, err := f.convs.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastMessage)
	assert.Equal(t, first.ID, got.LastMessage.ID)
}

func TestSearchQueryGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)
	conv := f.conversation(t)

	_, err := f.msgs.Create(ctx, service.MessageCreateInput{ConversationID: conv.ID, Content: "hello there"})
	require.NoError(t, err)

	for _, q := range []string{"", "h"} {
		got, err := f.msgs.Search(ctx, q, "")
		require.NoError(t, err)
		assert.Empty(t, got, "query %q should match nothing", q)
	}

	got, err := f.msgs.Search(ctx, "he", "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
