package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type sentRecord struct {
	To   string
	Body string
}

// fakeCredStore stands in for the durable credential store that outlives any
// single connection; every transport a factory builds shares one.
type fakeCredStore struct {
	mu      sync.Mutex
	cleared bool
}

func (s *fakeCredStore) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

// fakeTransport is a scripted Transport: tests push events, the manager
// consumes them.
type fakeTransport struct {
	mu           sync.Mutex
	store        *fakeCredStore
	events       chan Event
	closed       bool
	connectErr   error
	sendErr      error
	sent         []sentRecord
	loggedOut    bool
	credsCleared bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{events: make(chan Event, 16)}
}

func (f *fakeTransport) Connect(ctx context.Context) error { return f.connectErr }

func (f *fakeTransport) Send(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentRecord{To: to, Body: body})
	return nil
}

func (f *fakeTransport) Events() <-chan Event { return f.events }

func (f *fakeTransport) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
}

func (f *fakeTransport) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = true
	return nil
}

func (f *fakeTransport) ClearCredentials(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		// The store handle dies with the connection, like a closed sqlstore
		// container.
		return errors.New("credential store is closed")
	}
	f.credsCleared = true
	if f.store != nil {
		f.store.mu.Lock()
		f.store.cleared = true
		f.store.mu.Unlock()
	}
	return nil
}

func (f *fakeTransport) emit(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.events <- ev
	}
}

func (f *fakeTransport) setSendErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}

func (f *fakeTransport) sentMessages() []sentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentRecord(nil), f.sent...)
}

func (f *fakeTransport) wasCleared() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credsCleared
}

func (f *fakeTransport) wasLoggedOut() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedOut
}

// fakeFactory hands out a fresh fakeTransport per connect cycle, all backed
// by the same credential store.
type fakeFactory struct {
	mu         sync.Mutex
	store      fakeCredStore
	transports []*fakeTransport
}

func (f *fakeFactory) build(ctx context.Context, sessionID string) (Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tr := newFakeTransport()
	tr.store = &f.store
	f.transports = append(f.transports, tr)
	return tr, nil
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transports)
}

// transport waits until the n-th (1-based) transport has been built.
func (f *fakeFactory) transport(t *testing.T, n int) *fakeTransport {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		if len(f.transports) >= n {
			tr := f.transports[n-1]
			f.mu.Unlock()
			return tr
		}
		f.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("transport %d was never created", n)
	return nil
}

func waitFor(t *testing.T, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met: %s", msg)
}

func newTestManager(t *testing.T) (*Manager, *fakeFactory) {
	t.Helper()
	factory := &fakeFactory{}
	// Zero-value backoff keeps reconnects immediate for determinism.
	manager := NewManager("test-session", factory.build, Config{})
	t.Cleanup(manager.Stop)
	return manager, factory
}

func TestManager_PairingFlow(t *testing.T) {
	manager, factory := newTestManager(t)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	tr := factory.transport(t, 1)

	if got := manager.Snapshot().Phase; got != PhaseDisconnected {
		t.Fatalf("expected initial phase disconnected, got %v", got)
	}

	tr.emit(Event{Type: EventPairingCode, PairingCode: "code-1"})
	waitFor(t, "phase pairing with code-1", func() bool {
		s := manager.Snapshot()
		return s.Phase == PhasePairing && s.PairingCode == "code-1"
	})

	// A rotated code replaces the previous one, never queues behind it.
	tr.emit(Event{Type: EventPairingCode, PairingCode: "code-2"})
	waitFor(t, "code rotated to code-2", func() bool {
		return manager.Snapshot().PairingCode == "code-2"
	})

	tr.emit(Event{Type: EventConnected})
	waitFor(t, "phase connected with cleared code", func() bool {
		s := manager.Snapshot()
		return s.Phase == PhaseConnected && s.PairingCode == ""
	})

	if got := manager.Snapshot().SessionID; got != "test-session" {
		t.Errorf("expected session id test-session, got %q", got)
	}
}

func TestManager_ReconnectAfterClose(t *testing.T) {
	manager, factory := newTestManager(t)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tr1 := factory.transport(t, 1)
	tr1.emit(Event{Type: EventConnected})
	waitFor(t, "first connection open", func() bool {
		return manager.Snapshot().Phase == PhaseConnected
	})

	// A non-logout close must always lead back out of disconnected.
	tr1.emit(Event{Type: EventClosed})
	tr2 := factory.transport(t, 2)
	tr2.emit(Event{Type: EventConnected})
	waitFor(t, "reconnected on a fresh transport", func() bool {
		return manager.Snapshot().Phase == PhaseConnected
	})

	if tr1.wasCleared() {
		t.Error("a recoverable close must not wipe credentials")
	}
}

func TestManager_RemoteLogoutIsTerminal(t *testing.T) {
	manager, factory := newTestManager(t)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tr := factory.transport(t, 1)
	tr.emit(Event{Type: EventConnected})
	waitFor(t, "connected", func() bool {
		return manager.Snapshot().Phase == PhaseConnected
	})

	tr.emit(Event{Type: EventClosed, LoggedOut: true})
	waitFor(t, "disconnected with wiped credentials", func() bool {
		return manager.Snapshot().Phase == PhaseDisconnected && tr.wasCleared()
	})

	// Logged out is terminal: no new transport may be built.
	time.Sleep(50 * time.Millisecond)
	if got := factory.count(); got != 1 {
		t.Errorf("expected no reconnect after logout, got %d transports", got)
	}

	if err := manager.Send(context.Background(), "123456789012", "hi"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected after logout, got %v", err)
	}
}

func TestManager_Send(t *testing.T) {
	manager, factory := newTestManager(t)

	t.Run("fails fast when not connected", func(t *testing.T) {
		err := manager.Send(context.Background(), "123456789012", "hello")
		if !errors.Is(err, ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	})

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	tr := factory.transport(t, 1)

	t.Run("fails fast while pairing", func(t *testing.T) {
		tr.emit(Event{Type: EventPairingCode, PairingCode: "code"})
		waitFor(t, "pairing", func() bool {
			return manager.Snapshot().Phase == PhasePairing
		})
		err := manager.Send(context.Background(), "123456789012", "hello")
		if !errors.Is(err, ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	})

	tr.emit(Event{Type: EventConnected})
	waitFor(t, "connected", func() bool {
		return manager.Snapshot().Phase == PhaseConnected
	})

	t.Run("delegates to the transport when connected", func(t *testing.T) {
		if err := manager.Send(context.Background(), "123456789012", "hello"); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
		sent := tr.sentMessages()
		if len(sent) != 1 || sent[0].To != "123456789012" || sent[0].Body != "hello" {
			t.Fatalf("unexpected sent messages: %+v", sent)
		}
	})

	t.Run("wraps transport rejections", func(t *testing.T) {
		rejection := errors.New("invalid recipient")
		tr.setSendErr(rejection)

		err := manager.Send(context.Background(), "bad", "hello")
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("expected TransportError, got %v", err)
		}
		if !errors.Is(err, rejection) {
			t.Errorf("expected wrapped rejection, got %v", err)
		}
	})
}

func TestManager_LogoutRestartsPairing(t *testing.T) {
	manager, factory := newTestManager(t)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tr1 := factory.transport(t, 1)
	tr1.emit(Event{Type: EventConnected})
	waitFor(t, "connected", func() bool {
		return manager.Snapshot().Phase == PhaseConnected
	})

	if err := manager.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if !tr1.wasLoggedOut() {
		t.Error("expected remote logout on the old transport")
	}
	if !factory.store.wasCleared() {
		t.Error("expected credentials wiped on logout")
	}

	// Teardown left the old transport's store handle unusable; the wipe must
	// have gone around it.
	if err := tr1.ClearCredentials(context.Background()); err == nil {
		t.Error("expected the torn-down transport to reject credential ops")
	}

	// Logout restarts the loop: after the wipe's short-lived transport, a new
	// one begins a fresh pairing cycle.
	tr2 := factory.transport(t, 3)
	tr2.emit(Event{Type: EventPairingCode, PairingCode: "fresh-code"})
	waitFor(t, "fresh pairing cycle", func() bool {
		s := manager.Snapshot()
		return s.Phase == PhasePairing && s.PairingCode == "fresh-code"
	})
}

func TestManager_LogoutDuringBackoffWipesCredentials(t *testing.T) {
	factory := &fakeFactory{}
	manager := NewManager("test-session", factory.build, Config{
		Backoff: Backoff{Min: time.Hour, Max: time.Hour},
	})
	t.Cleanup(manager.Stop)

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tr1 := factory.transport(t, 1)
	tr1.emit(Event{Type: EventConnected})
	waitFor(t, "connected", func() bool {
		return manager.Snapshot().Phase == PhaseConnected
	})

	// A recoverable close parks the loop in the hour-long backoff with no
	// live transport.
	tr1.emit(Event{Type: EventClosed})
	waitFor(t, "disconnected", func() bool {
		return manager.Snapshot().Phase == PhaseDisconnected
	})

	if err := manager.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if !factory.store.wasCleared() {
		t.Error("expected credentials wiped with no live transport")
	}

	// The restarted loop pairs fresh, with no backoff carried over.
	tr2 := factory.transport(t, 3)
	tr2.emit(Event{Type: EventPairingCode, PairingCode: "fresh-code"})
	waitFor(t, "fresh pairing cycle", func() bool {
		s := manager.Snapshot()
		return s.Phase == PhasePairing && s.PairingCode == "fresh-code"
	})
}

func TestManager_MessagesDispatchedInOrder(t *testing.T) {
	factory := &fakeFactory{}
	manager := NewManager("test-session", factory.build, Config{})
	t.Cleanup(manager.Stop)

	var mu sync.Mutex
	var bodies []string
	manager.OnMessage(func(ctx context.Context, sender, body string, receivedAt time.Time) {
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
	})

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	tr := factory.transport(t, 1)
	tr.emit(Event{Type: EventConnected})

	for _, body := range []string{"one", "two", "three"} {
		tr.emit(Event{Type: EventMessage, Sender: "628111@s.whatsapp.net", Body: body, ReceivedAt: time.Now()})
	}

	waitFor(t, "all messages dispatched", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(bodies) == 3
	})

	mu.Lock()
	defer mu.Unlock()
	for i, want := range []string{"one", "two", "three"} {
		if bodies[i] != want {
			t.Errorf("message %d: expected %q, got %q", i, want, bodies[i])
		}
	}
}

func TestBackoff_Delay(t *testing.T) {
	b := Backoff{Min: time.Second, Max: 8 * time.Second}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{10, 8 * time.Second},
	}
	for _, tc := range cases {
		if got := b.Delay(tc.attempt); got != tc.want {
			t.Errorf("Delay(%d): expected %v, got %v", tc.attempt, tc.want, got)
		}
	}

	var zero Backoff
	if got := zero.Delay(5); got != 0 {
		t.Errorf("zero backoff must not delay, got %v", got)
	}
}
