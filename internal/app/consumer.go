package app

import (
	"context"
	"fmt"

	"github.com/koolkhan8586/hr-management/internal/config"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka/consumer"
	"github.com/koolkhan8586/hr-management/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer membaca topic notifikasi dan mengirimnya ke sink sampai ctx selesai.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          cfg.Kafka.NotificationTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	deliverer := notification.NewDeliverer(buildSink(cfg, log), log)
	consumer.ConsumeNotifications(ctx, reader, deliverer, log)

	log.Info("consumer shutting down")
	return nil
}
