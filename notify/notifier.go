// Package notify holds the outbound delivery collaborators. Real SMS and
// email transport (Twilio, SMTP) live outside this system; the logging
// implementations stand in for them and keep the send path observable.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type LogSMSSender struct {
	log *slog.Logger
}

func NewLogSMSSender(log *slog.Logger) LogSMSSender {
	return LogSMSSender{log: log}
}

// SendAccessCode returns a provider-style message id so callers can report
// it the way they would a real gateway sid.
func (s LogSMSSender) SendAccessCode(_ context.Context, phoneNumber, code string) (string, error) {
	sid := "SM" + uuid.NewString()
	s.log.Info("SMS access code dispatched", "to", phoneNumber, "sid", sid, "code", code)
	return sid, nil
}

type LogEmailSender struct {
	log *slog.Logger
}

func NewLogEmailSender(log *slog.Logger) LogEmailSender {
	return LogEmailSender{log: log}
}

func (s LogEmailSender) SendAccessCode(_ context.Context, name, email, code string) error {
	s.log.Info("Email access code dispatched", "to", email, "name", name, "code", code)
	return nil
}
