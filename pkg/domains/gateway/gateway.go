package gateway

import (
	"context"
	"time"

	"github.com/wagateway/pkg/entities"
)

// Sender delivers one outbound message; satisfied by the session manager.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// SentStore records messages the transport accepted.
type SentStore interface {
	CreateSent(ctx context.Context, msg *entities.SentMessage) error
}

// Gateway is the control-plane entry point for operator-authored messages.
// A message is recorded only after the transport accepted it, so the sent-
// message log never contains attempts.
type Gateway struct {
	sender Sender
	store  SentStore
}

func New(sender Sender, store SentStore) *Gateway {
	return &Gateway{sender: sender, store: store}
}

// Send delivers the message and, on transport acceptance, persists it. Any
// send failure is returned to the caller with nothing persisted.
func (g *Gateway) Send(ctx context.Context, to, message string) error {
	if err := g.sender.Send(ctx, to, message); err != nil {
		return err
	}

	record := &entities.SentMessage{To: to, Message: message, Timestamp: time.Now()}
	return g.store.CreateSent(ctx, record)
}
