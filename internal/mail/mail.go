// Package mail defines the outbound e-mail collaborator. Delivery itself is
// out of scope; LogMailer records each message as a JSON log line.
package mail

import (
	"context"
	"errors"
	"strings"

	"doccenter/internal/logging"
)

// ErrNoRecipients is returned when a message has no addressee.
var ErrNoRecipients = errors.New("mail: no recipients")

// Message is one outbound e-mail.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of delivering them.
type LogMailer struct {
	lg *logging.Logger
}

func NewLogMailer(lg *logging.Logger) *LogMailer {
	return &LogMailer{lg: lg}
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.lg.Info("mail_sent", map[string]any{
		"component":  "mail",
		"to":         strings.Join(msg.To, ", "),
		"subject":    msg.Subject,
		"body_bytes": len(msg.Body),
	})
	return nil
}
