package consumer

import (
	"context"
	"encoding/json"

	"github.com/koolkhan8586/hr-management/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type NotificationHandler interface {
	HandleNotification(ctx context.Context, event events.NotificationRequestedEvent) error
}

// ConsumeNotifications mengirim setiap event notifikasi ke sink.
// Pengiriman bersifat best-effort: kegagalan dicatat lalu offset tetap di-commit.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	handler NotificationHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			commit(ctx, reader, msg, log)
			continue
		}

		if err := handler.HandleNotification(ctx, event); err != nil {
			log.Error("deliver notification failed",
				zap.String("request_id", event.RequestID),
				zap.String("aggregate_type", event.AggregateType),
				zap.String("aggregate_id", event.AggregateID),
				zap.String("address", event.Address),
				zap.Error(err),
			)
		} else {
			log.Info("notification delivered",
				zap.String("request_id", event.RequestID),
				zap.String("aggregate_id", event.AggregateID),
				zap.String("address", event.Address),
			)
		}

		commit(ctx, reader, msg, log)
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
	}
}
