package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/koolkhan8586/hr-management/internal/events"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"

	"go.uber.org/zap"
)

// Deliverer mengantar event notifikasi ke Sink. Dipakai oleh consumer kafka
// maupun oleh relay outbox in-process (tanpa kafka).
type Deliverer struct {
	sink   Sink
	logger *zap.Logger
}

func NewDeliverer(sink Sink, logger ...*zap.Logger) *Deliverer {
	l := zap.L().Named("notification.deliverer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.deliverer")
	}
	return &Deliverer{sink: sink, logger: l}
}

func (d *Deliverer) HandleNotification(ctx context.Context, event events.NotificationRequestedEvent) error {
	if err := d.sink.Send(ctx, event.Address, event.Subject, event.Body); err != nil {
		d.logger.Warn("notification send failed",
			zap.String("request_id", event.RequestID),
			zap.String("address", event.Address),
			zap.String("subject", event.Subject),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Publish memenuhi producer.Publisher sehingga outbox bisa dikirim langsung ke sink.
func (d *Deliverer) Publish(ctx context.Context, event kafka.OutboxEvent) error {
	var payload events.NotificationRequestedEvent
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("decode outbox %s: %w", event.ID, err)
	}
	return d.HandleNotification(ctx, payload)
}
