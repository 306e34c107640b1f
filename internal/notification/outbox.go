package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/koolkhan8586/hr-management/internal/events"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"
	"github.com/koolkhan8586/hr-management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=outbox.go -destination=mock/outbox_mock.go -package=mock
type Enqueuer interface {
	// Enqueue menulis pesan ke outbox memakai transaksi pemanggil.
	// Pesan baru dikirim setelah transaksi tersebut commit.
	Enqueue(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID string, msgs ...Message) error
}

type outboxEnqueuer struct {
	repo   kafka.OutboxRepository
	admins []string
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

func NewOutboxEnqueuer(repo kafka.OutboxRepository, adminAddresses []string, logger ...*zap.Logger) Enqueuer {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}

	admins := make([]string, 0, len(adminAddresses))
	for _, a := range adminAddresses {
		if a = strings.TrimSpace(a); a != "" {
			admins = append(admins, a)
		}
	}

	return &outboxEnqueuer{
		repo:   repo,
		admins: admins,
		topic:  events.NotificationRequestedTopic,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (e *outboxEnqueuer) Enqueue(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID string, msgs ...Message) error {
	rid := contextutil.GetRequestID(ctx)
	qrepo := e.repo.WithTx(tx)

	for _, msg := range e.expand(msgs) {
		event := events.NotificationRequestedEvent{
			EventType:     events.NotificationRequestedEventType,
			RequestID:     rid,
			AggregateType: aggregateType,
			AggregateID:   aggregateID,
			Address:       msg.Address,
			Subject:       msg.Subject,
			Body:          msg.Body,
			OccurredAt:    e.now(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := qrepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: aggregateType,
			AggregateID:   aggregateID,
			EventType:     event.EventType,
			Topic:         e.topic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			e.logger.Error("enqueue notification failed",
				zap.String("request_id", rid),
				zap.String("aggregate_type", aggregateType),
				zap.String("aggregate_id", aggregateID),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func (e *outboxEnqueuer) expand(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, msg := range msgs {
		switch {
		case msg.Address == AdminAddress:
			for _, admin := range e.admins {
				m := msg
				m.Address = admin
				out = append(out, m)
			}
		case strings.TrimSpace(msg.Address) == "":
			e.logger.Debug("notification without address skipped", zap.String("subject", msg.Subject))
		default:
			out = append(out, msg)
		}
	}
	return out
}
