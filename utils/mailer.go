package utils

import (
	"context"
	"log"
)

// Mailer is the seam to the transactional mail relay. Delivery itself is
// handled outside this service.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// LogMailer records the reset link instead of sending it. Used when no relay
// is configured (local development, tests).
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	log.Printf("password reset requested for %s: %s", to, resetURL)
	return nil
}
