package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// eventFromSeed maps a small integer seed onto one transport event, covering
// every event type the state machine reconciles.
func eventFromSeed(seed int) Event {
	switch seed % 5 {
	case 0:
		return Event{Type: EventPairingCode, PairingCode: fmt.Sprintf("code-%d", seed)}
	case 1:
		return Event{Type: EventConnected}
	case 2:
		return Event{Type: EventClosed}
	case 3:
		return Event{Type: EventClosed, LoggedOut: true}
	default:
		return Event{Type: EventMessage, Sender: "628111@s.whatsapp.net", Body: fmt.Sprintf("msg-%d", seed)}
	}
}

// For any sequence of transport events, the pairing code is published exactly
// while the session is in the pairing phase.
func TestManager_PairingCodeInvariantProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("pairing code is non-empty iff phase is pairing", prop.ForAll(
		func(seeds []int) bool {
			ctx := context.Background()
			manager := NewManager("prop-session", nil, Config{})
			tr := newFakeTransport()

			for _, seed := range seeds {
				closed, _ := manager.apply(ctx, eventFromSeed(seed), tr, nil)
				if closed {
					manager.setState(ctx, PhaseDisconnected, "", nil)
				}
				s := manager.Snapshot()
				if (s.Phase == PhasePairing) != (s.PairingCode != "") {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("a close always clears the pairing code", prop.ForAll(
		func(seeds []int) bool {
			ctx := context.Background()
			manager := NewManager("prop-session", nil, Config{})
			tr := newFakeTransport()

			for _, seed := range seeds {
				closed, _ := manager.apply(ctx, eventFromSeed(seed), tr, nil)
				if closed {
					manager.setState(ctx, PhaseDisconnected, "", nil)
					if s := manager.Snapshot(); s.PairingCode != "" || s.Phase != PhaseDisconnected {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
