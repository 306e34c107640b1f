package app

import (
	"github.com/koolkhan8586/hr-management/internal/config"
	"github.com/koolkhan8586/hr-management/internal/notification"

	"go.uber.org/zap"
)

// buildSink: alamat "tg:" ke telegram, selain itu ke SMTP bila dikonfigurasi, atau hanya dicatat ke log.
func buildSink(cfg *config.Config, logger *zap.Logger) notification.Sink {
	var fallback notification.Sink = notification.NewLogSink(logger)
	if cfg.SMTP.Host != "" {
		fallback = notification.NewSMTPSink(notification.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		})
		logger.Info("smtp sink enabled", zap.String("host", cfg.SMTP.Host))
	}

	router := notification.NewRouter(fallback)
	if cfg.TelegramBotToken != "" {
		tg, err := notification.NewTelegramSink(cfg.TelegramBotToken)
		if err != nil {
			logger.Warn("telegram sink disabled", zap.Error(err))
		} else {
			router.Handle(notification.TelegramPrefix, tg)
			logger.Info("telegram sink enabled")
		}
	}
	return router
}
