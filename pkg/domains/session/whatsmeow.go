package session

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"
)

// waTransport adapts a whatsmeow client to the Transport interface. The
// sqlstore container doubles as the credential store: whatsmeow refreshes the
// stored keys on its own as a side effect of normal operation.
type waTransport struct {
	sessionID string
	client    *whatsmeow.Client
	container *sqlstore.Container
	device    *store.Device

	mu     sync.Mutex
	closed bool
	events chan Event
}

// NewWhatsmeowFactory returns a TransportFactory backed by whatsmeow with a
// sqlite credential store at the given DSN.
func NewWhatsmeowFactory(storeDSN string) TransportFactory {
	return func(ctx context.Context, sessionID string) (Transport, error) {
		clientLog := waLog.Stdout("WhatsApp_"+sessionID, "INFO", true)

		container, err := sqlstore.New(ctx, "sqlite", storeDSN, clientLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open credential store: %w", err)
		}

		device, err := container.GetFirstDevice(ctx)
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to get device: %w", err)
		}

		t := &waTransport{
			sessionID: sessionID,
			container: container,
			device:    device,
			events:    make(chan Event, 256),
		}
		t.client = whatsmeow.NewClient(device, clientLog)
		// The session manager owns the reconnect policy.
		t.client.EnableAutoReconnect = false
		t.client.AddEventHandler(t.handleEvent)
		return t, nil
	}
}

func (t *waTransport) Connect(ctx context.Context) error {
	if t.client.Store.ID == nil {
		// No credentials yet: this connect starts a pairing cycle. The QR
		// channel must be requested before connecting.
		qrChan, err := t.client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to get QR channel: %w", err)
		}
		if err := t.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		go t.forwardQR(qrChan)
		return nil
	}
	return t.client.Connect()
}

func (t *waTransport) forwardQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for item := range qrChan {
		switch item.Event {
		case "code":
			t.emit(Event{Type: EventPairingCode, PairingCode: item.Code})
		case "timeout":
			// whatsmeow drops the connection on QR expiry; surface it as a
			// recoverable close so a fresh pairing cycle starts.
			t.emit(Event{Type: EventClosed})
		case "error":
			log.Printf("[error] session %s: QR channel error: %v", t.sessionID, item.Error)
			t.emit(Event{Type: EventClosed})
		}
		// "success" is followed by *events.Connected from the main handler.
	}
}

func (t *waTransport) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Connected:
		t.emit(Event{Type: EventConnected})
	case *events.Disconnected:
		t.emit(Event{Type: EventClosed})
	case *events.StreamReplaced:
		t.emit(Event{Type: EventClosed})
	case *events.LoggedOut:
		t.emit(Event{Type: EventClosed, LoggedOut: true})
	case *events.Message:
		if v.Info.IsFromMe {
			return
		}
		t.emit(Event{
			Type:       EventMessage,
			Sender:     v.Info.Chat.String(),
			Body:       textContent(v),
			ReceivedAt: v.Info.Timestamp,
		})
	}
}

// textContent extracts the plain-text body of a message. Media and other
// unsupported payloads yield an empty string; the router discards those.
func textContent(msg *events.Message) string {
	if msg.Message == nil {
		return ""
	}
	if text := msg.Message.GetConversation(); text != "" {
		return text
	}
	if ext := msg.Message.GetExtendedTextMessage(); ext != nil {
		return ext.GetText()
	}
	return ""
}

// emit never blocks whatsmeow's handler goroutine; a full buffer drops the
// event with a log line instead.
func (t *waTransport) emit(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	select {
	case t.events <- ev:
	default:
		log.Printf("[warn] session %s: event buffer full, dropping event type %d", t.sessionID, ev.Type)
	}
}

func (t *waTransport) Events() <-chan Event {
	return t.events
}

func (t *waTransport) Send(ctx context.Context, to, body string) error {
	recipient, err := parseRecipient(to)
	if err != nil {
		return err
	}
	msg := &waProto.Message{
		Conversation: proto.String(body),
	}
	_, err = t.client.SendMessage(ctx, recipient, msg)
	return err
}

func (t *waTransport) Disconnect() {
	t.client.Disconnect()
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.events)
	}
	t.mu.Unlock()
	t.container.Close()
}

func (t *waTransport) Logout(ctx context.Context) error {
	return t.client.Logout(ctx)
}

func (t *waTransport) ClearCredentials(ctx context.Context) error {
	if t.device.ID == nil {
		return nil
	}
	return t.container.DeleteDevice(ctx, t.device)
}

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// parseRecipient accepts either a full JID (anything containing '@') or a
// bare phone number, which is cleaned and turned into a user JID.
func parseRecipient(to string) (waTypes.JID, error) {
	if strings.ContainsRune(to, '@') {
		jid, err := waTypes.ParseJID(to)
		if err != nil {
			return waTypes.JID{}, fmt.Errorf("invalid recipient JID: %w", err)
		}
		return jid, nil
	}

	cleaned := nonPhoneChars.ReplaceAllString(to, "")
	cleaned = strings.TrimPrefix(cleaned, "+")
	if len(cleaned) < 10 {
		return waTypes.JID{}, fmt.Errorf("invalid phone number: too short")
	}
	return waTypes.NewJID(cleaned, waTypes.DefaultUserServer), nil
}
