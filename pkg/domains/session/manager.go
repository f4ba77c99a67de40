package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// Phase is the discrete connection state of the session.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhasePairing
	PhaseConnected
)

func (p Phase) String() string {
	switch p {
	case PhasePairing:
		return "pairing"
	case PhaseConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Snapshot is a read-only copy of the session state. PairingCode is non-empty
// exactly when Phase is PhasePairing.
type Snapshot struct {
	SessionID   string
	Phase       Phase
	PairingCode string
}

// MessageHandler receives each inbound message, invoked synchronously from
// the dispatcher loop so one message is fully processed before the next.
type MessageHandler func(ctx context.Context, sender, body string, receivedAt time.Time)

// StatusRecorder mirrors phase transitions to durable storage. Implementations
// must tolerate being called from the dispatcher goroutine.
type StatusRecorder interface {
	RecordPhase(ctx context.Context, sessionID string, phase Phase)
}

// Backoff is the reconnect delay policy: exponential from Min, capped at Max.
// The zero value disables delays entirely, which tests rely on.
type Backoff struct {
	Min time.Duration
	Max time.Duration
}

// DefaultBackoff is the production reconnect policy.
var DefaultBackoff = Backoff{Min: time.Second, Max: 30 * time.Second}

func (b Backoff) Delay(attempt int) time.Duration {
	if b.Min <= 0 {
		return 0
	}
	d := b.Min
	for i := 0; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	return d
}

// Config holds construction options for the Manager.
type Config struct {
	Backoff  Backoff
	Recorder StatusRecorder
}

// Manager owns exactly one Transport at a time and reconciles its event
// stream into the Disconnected/Pairing/Connected state machine. All state
// writes happen on the single dispatcher goroutine (or while it is stopped),
// so readers only ever observe consistent snapshots.
type Manager struct {
	id       string
	factory  TransportFactory
	backoff  Backoff
	recorder StatusRecorder

	// handler is set once via OnMessage before Start and never mutated after.
	handler MessageHandler

	parent context.Context

	mu          sync.RWMutex
	phase       Phase
	pairingCode string
	transport   Transport
	running     bool
	runCancel   context.CancelFunc
	runDone     chan struct{}
}

// NewManager creates a manager for one session id. The factory is invoked on
// every connect cycle so each reconnect gets a fresh transport.
func NewManager(id string, factory TransportFactory, cfg Config) *Manager {
	return &Manager{
		id:       id,
		factory:  factory,
		backoff:  cfg.Backoff,
		recorder: cfg.Recorder,
	}
}

// OnMessage registers the inbound message handler. Must be called before Start.
func (m *Manager) OnMessage(h MessageHandler) {
	m.handler = h
}

// Start launches the connect/reconnect loop and returns immediately;
// connection progress is observed through Snapshot. Calling Start while the
// loop is already running is a no-op.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.parent = ctx
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.running = true
	m.runCancel = cancel
	m.runDone = done
	m.mu.Unlock()

	go m.run(runCtx, done)
	return nil
}

// Snapshot returns a read-only copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{SessionID: m.id, Phase: m.phase, PairingCode: m.pairingCode}
}

// Send delivers one text message through the owned transport. It fails fast
// with ErrNotConnected unless the session is Connected; transport rejections
// are wrapped in TransportError and never retried. Send does not persist
// anything, that is the caller's concern.
func (m *Manager) Send(ctx context.Context, to, body string) error {
	m.mu.RLock()
	phase, tr := m.phase, m.transport
	m.mu.RUnlock()

	if phase != PhaseConnected || tr == nil {
		return ErrNotConnected
	}
	if err := tr.Send(ctx, to, body); err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	return nil
}

// Logout invalidates the remote session, tears down the active transport,
// wipes the stored credentials and starts a fresh pairing cycle. The wipe
// does not go through the live transport, so it also works while the loop is
// between transports (e.g. waiting out a reconnect backoff).
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	cancel, done, tr, parent := m.runCancel, m.runDone, m.transport, m.parent
	m.mu.Unlock()

	// Remote logout needs the live connection, so it runs before teardown.
	// Best effort: the credential wipe below forces a fresh pairing either way.
	if tr != nil {
		if err := tr.Logout(ctx); err != nil {
			log.Printf("[warn] session %s: remote logout failed: %v", m.id, err)
		}
	}

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	if err := m.wipeCredentials(ctx); err != nil {
		return err
	}

	m.setState(ctx, PhaseDisconnected, "", nil)

	if parent == nil {
		parent = context.Background()
	}
	return m.Start(parent)
}

// wipeCredentials erases the stored credentials through a transport built
// just for the wipe. Teardown leaves the old transport's store handle
// unusable, and during a backoff window there is no transport at all, so the
// wipe never relies on one.
func (m *Manager) wipeCredentials(ctx context.Context) error {
	tr, err := m.factory(ctx, m.id)
	if err != nil {
		return err
	}
	defer tr.Disconnect()
	return tr.ClearCredentials(ctx)
}

// Stop cancels the connect loop without touching credentials.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel, done := m.runCancel, m.runDone
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (m *Manager) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	attempt := 0
	for {
		if m.connectOnce(ctx, &attempt) {
			// Logged out: terminal until an explicit restart.
			return
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.backoff.Delay(attempt)):
		}
		attempt++
	}
}

// connectOnce runs a single transport lifetime: build, connect, consume events
// until the connection closes. Reports whether the closure was a logout.
func (m *Manager) connectOnce(ctx context.Context, attempt *int) bool {
	tr, err := m.factory(ctx, m.id)
	if err != nil {
		log.Printf("[error] session %s: transport init failed: %v", m.id, err)
		return false
	}

	m.mu.Lock()
	m.transport = tr
	m.mu.Unlock()

	if err := tr.Connect(ctx); err != nil {
		log.Printf("[error] session %s: connect failed: %v", m.id, err)
		m.setState(ctx, PhaseDisconnected, "", nil)
		tr.Disconnect()
		return false
	}

	loggedOut := m.consume(ctx, tr, attempt)
	tr.Disconnect()
	m.setState(ctx, PhaseDisconnected, "", nil)
	return loggedOut
}

// consume is the dispatcher loop: the only writer of session state while a
// transport is live. It returns when the connection closes or ctx is
// cancelled, reporting whether the closure was a logout.
func (m *Manager) consume(ctx context.Context, tr Transport, attempt *int) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-tr.Events():
			if !ok {
				// Stream ended without a close event; treat as a
				// recoverable drop.
				return false
			}
			closed, loggedOut := m.apply(ctx, ev, tr, attempt)
			if closed {
				return loggedOut
			}
		}
	}
}

// apply reconciles one event against the state machine.
func (m *Manager) apply(ctx context.Context, ev Event, tr Transport, attempt *int) (closed, loggedOut bool) {
	switch ev.Type {
	case EventPairingCode:
		// Codes rotate; the latest always replaces the previous one.
		m.setState(ctx, PhasePairing, ev.PairingCode, tr)
	case EventConnected:
		if attempt != nil {
			*attempt = 0
		}
		m.setState(ctx, PhaseConnected, "", tr)
	case EventClosed:
		if ev.LoggedOut {
			if err := tr.ClearCredentials(ctx); err != nil {
				log.Printf("[error] session %s: credential wipe failed: %v", m.id, err)
			}
			return true, true
		}
		return true, false
	case EventMessage:
		if m.handler != nil {
			m.handler(ctx, ev.Sender, ev.Body, ev.ReceivedAt)
		}
	}
	return false, false
}

func (m *Manager) setState(ctx context.Context, phase Phase, code string, tr Transport) {
	m.mu.Lock()
	m.phase = phase
	m.pairingCode = code
	if phase == PhaseDisconnected {
		m.transport = nil
	} else if tr != nil {
		m.transport = tr
	}
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.RecordPhase(ctx, m.id, phase)
	}
}
