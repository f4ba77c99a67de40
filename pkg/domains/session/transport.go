package session

import (
	"context"
	"time"
)

// EventType identifies a transport lifecycle or message event.
type EventType int

const (
	// EventPairingCode carries a fresh pairing code; each one replaces the
	// previous code.
	EventPairingCode EventType = iota
	// EventConnected signals the connection is open and authenticated.
	EventConnected
	// EventClosed signals the connection dropped. LoggedOut tells recoverable
	// drops apart from a genuine logout.
	EventClosed
	// EventMessage carries one inbound message.
	EventMessage
)

// Event is one item on the transport's ordered event stream. All fields other
// than Type are populated only for the matching event type.
type Event struct {
	Type EventType

	PairingCode string

	LoggedOut bool

	Sender     string
	Body       string
	ReceivedAt time.Time
}

// Transport is the opaque connection to the messaging network. It emits all
// lifecycle and message events on a single channel, in arrival order; the
// channel is closed when the connection is torn down for good.
type Transport interface {
	// Connect starts connection establishment and returns immediately;
	// progress is observed through Events.
	Connect(ctx context.Context) error
	// Send delivers one text message and reports the transport's verdict.
	Send(ctx context.Context, to, body string) error
	// Events returns the ordered event stream. Always the same channel.
	Events() <-chan Event
	// Disconnect tears the connection down without touching credentials.
	Disconnect()
	// Logout tears the connection down and invalidates the remote session.
	Logout(ctx context.Context) error
	// ClearCredentials wipes the stored credentials so the next Connect
	// forces a fresh pairing.
	ClearCredentials(ctx context.Context) error
}

// TransportFactory builds a fresh Transport for the given session id. The
// manager calls it on every (re)connect cycle.
type TransportFactory func(ctx context.Context, sessionID string) (Transport, error)
