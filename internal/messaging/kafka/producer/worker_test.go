package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"
	kafkaMock "github.com/koolkhan8586/hr-management/internal/messaging/kafka/mock"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakePublisher struct {
	publishFn func(ctx context.Context, event kafka.OutboxEvent) error
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, event kafka.OutboxEvent) error {
	if f.publishFn != nil {
		if err := f.publishFn(ctx, event); err != nil {
			return err
		}
	}
	f.published = append(f.published, event.ID)
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("marks sent and failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{
			{ID: "ok-1", Topic: "t"},
			{ID: "bad-1", Topic: "t"},
		}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "ok-1").Return(nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "bad-1", "sink down").Return(nil)

		pub := &fakePublisher{publishFn: func(ctx context.Context, event kafka.OutboxEvent) error {
			if event.ID == "bad-1" {
				return errors.New("sink down")
			}
			return nil
		}}

		sent, err := producer.ProcessPendingEvents(ctx, repo, pub, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{"ok-1"}, pub.published)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakePublisher{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakePublisher{}, zap.NewNop())

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakePublisher{}, zap.NewNop(), 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	pub := producer.NewKafkaPublisher(w)

	err := pub.Publish(context.Background(), kafka.OutboxEvent{
		ID:            "o-1",
		RequestID:     "req-1",
		AggregateType: "leave",
		AggregateID:   "L1",
		EventType:     "notification_requested",
		Topic:         "hr.notification.requested.v1",
		Payload:       []byte(`{}`),
	})

	assert.NoError(t, err)
	if assert.Len(t, w.messages, 1) {
		msg := w.messages[0]
		assert.Equal(t, "hr.notification.requested.v1", msg.Topic)
		assert.Equal(t, []byte("L1"), msg.Key)
		assert.Len(t, msg.Headers, 3)
	}
}
