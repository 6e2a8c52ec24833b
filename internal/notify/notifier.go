package notify

import (
	"context"
	"log"
)

// Notifier delivers one outbound message. Send failures are logged by the
// callers, never retried and never surfaced to a user.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// Disabled stands in when no messaging credentials are configured: the
// synchronous webhook reply keeps working, pushes are dropped.
type Disabled struct{}

func (Disabled) Send(_ context.Context, to, _ string) error {
	log.Printf("notificações desabilitadas, mensagem para %s descartada", to)
	return nil
}
