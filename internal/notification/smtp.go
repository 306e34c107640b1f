package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

const defaultSMTPTimeout = 10 * time.Second

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Timeout membatasi satu pengiriman (dial sampai QUIT).
	Timeout time.Duration
}

type SMTPSink struct {
	cfg  SMTPConfig
	opts []mail.Option
	now  func() time.Time
	send func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPSink(cfg SMTPConfig, opts ...mail.Option) *SMTPSink {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	s := &SMTPSink{cfg: cfg, opts: opts, now: time.Now}
	s.send = s.dialAndSend
	return s
}

func (s *SMTPSink) Send(ctx context.Context, address, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.Contains(address, "@") {
		return fmt.Errorf("invalid email address %q", address)
	}
	if s.cfg.Host == "" {
		return errors.New("smtp host is not configured")
	}

	msg, err := s.buildMessage(address, subject, body)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.send(ctx, msg)
}

func (s *SMTPSink) buildMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("smtp from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("smtp recipient: %w", err)
	}
	msg.Subject(sanitizeHeader(subject))
	msg.SetDateWithValue(s.now())
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (s *SMTPSink) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(s.cfg.Timeout),
	}
	// port eksplisit menang atas port bawaan policy TLS
	if s.cfg.Port > 0 {
		opts = append(opts, mail.WithPort(s.cfg.Port))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	opts = append(opts, s.opts...)

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
