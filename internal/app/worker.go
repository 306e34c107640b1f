package app

import (
	"context"
	"fmt"

	"github.com/koolkhan8586/hr-management/internal/config"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka/producer"
	"github.com/koolkhan8586/hr-management/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker memindahkan outbox ke topic kafka sampai ctx selesai.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, sqlDB, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Kafka.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(gormDB),
		producer.NewKafkaPublisher(kafkaWriter),
		log,
		cfg.Outbox.PollInterval,
	)

	log.Info("worker shutting down")
	return nil
}
