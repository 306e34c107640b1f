package notification

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wneessen/go-mail"
)

func TestSMTPSink_Send(t *testing.T) {
	t.Run("builds message", func(t *testing.T) {
		var got *mail.Msg
		var deadline time.Time

		sink := NewSMTPSink(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "hr@example.com", Timeout: time.Minute})
		sink.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
		sink.send = func(ctx context.Context, msg *mail.Msg) error {
			got = msg
			deadline, _ = ctx.Deadline()
			return nil
		}

		err := sink.Send(context.Background(), "e1@example.com", "Cuti disetujui ✓\r\nBcc: x@evil.com", "Enjoy")

		assert.NoError(t, err)
		assert.False(t, deadline.IsZero())
		if assert.NotNil(t, got) {
			if assert.Len(t, got.GetTo(), 1) {
				assert.Equal(t, "e1@example.com", got.GetTo()[0].Address)
			}
			var buf bytes.Buffer
			_, err := got.WriteTo(&buf)
			assert.NoError(t, err)
			raw := buf.String()
			assert.Contains(t, raw, "Subject: =?UTF-8?q?")
			assert.NotContains(t, raw, "\r\nBcc:")
			assert.Contains(t, raw, "Enjoy")
		}
	})

	t.Run("invalid address", func(t *testing.T) {
		sink := NewSMTPSink(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "hr@example.com"})

		err := sink.Send(context.Background(), "not-an-email", "s", "b")

		assert.Error(t, err)
	})

	t.Run("host not configured", func(t *testing.T) {
		sink := NewSMTPSink(SMTPConfig{From: "hr@example.com"})

		err := sink.Send(context.Background(), "e1@example.com", "s", "b")

		assert.Error(t, err)
	})

	t.Run("hung server returns at ctx deadline", func(t *testing.T) {
		hang := func(ctx context.Context, network, address string) (net.Conn, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		sink := NewSMTPSink(
			SMTPConfig{Host: "smtp.example.com", Port: 587, From: "hr@example.com", Timeout: time.Minute},
			mail.WithDialContextFunc(hang),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := sink.Send(ctx, "e1@example.com", "s", "b")

		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("sink timeout bounds send without ctx deadline", func(t *testing.T) {
		hang := func(ctx context.Context, network, address string) (net.Conn, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		sink := NewSMTPSink(
			SMTPConfig{Host: "smtp.example.com", Port: 587, From: "hr@example.com", Timeout: 50 * time.Millisecond},
			mail.WithDialContextFunc(hang),
		)

		start := time.Now()
		err := sink.Send(context.Background(), "e1@example.com", "s", "b")

		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
