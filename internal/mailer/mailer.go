package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"yamdb/internal/config"
)

// Message is a single outgoing email.
type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	ContentType string // defaults to text/plain
}

func (m *Message) validate() error {
	if m.From == "" {
		return errors.New("sender is required")
	}
	if len(m.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	if m.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

// bytes renders the header block followed by the body.
func (m *Message) bytes() []byte {
	contentType := m.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=UTF-8"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// New picks the backend named by EMAIL_BACKEND.
func New(cfg *config.Config, logger *slog.Logger) (Mailer, error) {
	switch cfg.EmailBackend {
	case "smtp":
		return NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			UseTLS:   cfg.SMTPUseTLS,
		}), nil
	case "console", "":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown email backend %q", cfg.EmailBackend)
	}
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "email",
		"from", msg.From,
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
