package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/koolkhan8586/hr-management/internal/events"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeHandler struct {
	handleFn  func(ctx context.Context, event events.NotificationRequestedEvent) error
	delivered []string
}

func (h *fakeHandler) HandleNotification(ctx context.Context, event events.NotificationRequestedEvent) error {
	if h.handleFn != nil {
		if err := h.handleFn(ctx, event); err != nil {
			return err
		}
	}
	h.delivered = append(h.delivered, event.Address)
	return nil
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return b
}

func TestConsumeNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 1, Value: mustMarshal(t, events.NotificationRequestedEvent{Address: "e1@example.com", Subject: "Leave Approved"})},
			{Offset: 2, Value: []byte("not-json")},
			{Offset: 3, Value: mustMarshal(t, events.NotificationRequestedEvent{Address: "broken@example.com"})},
		},
	}
	handler := &fakeHandler{handleFn: func(ctx context.Context, event events.NotificationRequestedEvent) error {
		if event.Address == "broken@example.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}}

	done := make(chan struct{})
	go func() {
		consumer.ConsumeNotifications(ctx, reader, handler, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}

	assert.Equal(t, []string{"e1@example.com"}, handler.delivered)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}
