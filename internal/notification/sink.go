package notification

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Sink adalah tujuan pengiriman pesan (email, telegram, log).
type Sink interface {
	Send(ctx context.Context, address, subject, body string) error
}

type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger ...*zap.Logger) *LogSink {
	l := zap.L().Named("notification.log_sink")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log_sink")
	}
	return &LogSink{logger: l}
}

func (s *LogSink) Send(ctx context.Context, address, subject, body string) error {
	s.logger.Info("notification",
		zap.String("address", address),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// Router memilih sink berdasarkan prefix alamat ("tg:" -> telegram).
// Alamat tanpa prefix yang terdaftar dikirim lewat fallback.
type Router struct {
	routes   map[string]Sink
	fallback Sink
}

func NewRouter(fallback Sink) *Router {
	return &Router{routes: map[string]Sink{}, fallback: fallback}
}

func (r *Router) Handle(prefix string, sink Sink) *Router {
	r.routes[prefix] = sink
	return r
}

func (r *Router) Send(ctx context.Context, address, subject, body string) error {
	for prefix, sink := range r.routes {
		if strings.HasPrefix(address, prefix) {
			return sink.Send(ctx, address, subject, body)
		}
	}
	if r.fallback == nil {
		return fmt.Errorf("no notification sink for address %q", address)
	}
	return r.fallback.Send(ctx, address, subject, body)
}
