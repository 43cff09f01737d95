package email

import (
	"context"
	"errors"
	"time"
)

// Sender define la interfaz para el envío de correos con enlace de token.
// route es la ruta relativa del cliente ("/verify/" o "/reset-password/").
type Sender interface {
	SendTokenLink(ctx context.Context, toEmail, subject, route, token string, ttl time.Duration) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendTokenLink(_ context.Context, _, _, _, _ string, _ time.Duration) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
