package app

import (
	"context"

	"github.com/koolkhan8586/hr-management/internal/config"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka/producer"
	"github.com/koolkhan8586/hr-management/internal/middleware"
	"github.com/koolkhan8586/hr-management/internal/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp membuka infrastruktur, mendaftarkan semua modul ke router, dan
// (jika OUTBOX_INPROCESS=true) menjalankan relay outbox ke sink di goroutine terpisah
// sampai ctx selesai. Pemanggil wajib memanggil Infra.Close.
func BuildApp(ctx context.Context, cfg *config.Config, router *gin.Engine, logger *zap.Logger) (*Infra, error) {
	deps, err := OpenInfra(cfg, logger)
	if err != nil {
		return nil, err
	}

	router.Use(middleware.RequestID())

	if err := registerModules(ctx, router, cfg, deps, logger); err != nil {
		deps.Close()
		return nil, err
	}

	if cfg.Outbox.InProcess {
		deliverer := notification.NewDeliverer(buildSink(cfg, logger), logger)
		go producer.ProcessOutboxEvents(
			ctx,
			kafka.NewOutboxRepository(deps.GormDB),
			deliverer,
			logger.Named("app.relay"),
			cfg.Outbox.PollInterval,
		)
		logger.Info("in-process outbox relay started")
	}

	return deps, nil
}
