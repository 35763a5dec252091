// Package mail defines the email-confirmation collaborator contract.
// Delivery is owned by an external implementation; the auth core treats it
// as fire-and-forget.
package mail

import (
	"context"

	"github.com/adboard/authcore/logger"
)

// ConfirmationSender delivers account confirmation emails.
type ConfirmationSender interface {
	// SendConfirmation sends a confirmation email carrying the given token.
	SendConfirmation(ctx context.Context, email, token string) error
}

// ConfirmationSenderFunc adapts an ordinary function to ConfirmationSender.
type ConfirmationSenderFunc func(ctx context.Context, email, token string) error

// SendConfirmation implements ConfirmationSender.
func (f ConfirmationSenderFunc) SendConfirmation(ctx context.Context, email, token string) error {
	return f(ctx, email, token)
}

// LogSender logs confirmation requests instead of delivering them. It backs
// the sample server and tests.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.WithComponent("mail")}
}

// SendConfirmation implements ConfirmationSender. The token itself is never
// logged, only its presence.
func (s *LogSender) SendConfirmation(ctx context.Context, email, token string) error {
	s.log.Info("confirmation email requested", map[string]interface{}{
		"email":     email,
		"has_token": token != "",
	})
	return nil
}
