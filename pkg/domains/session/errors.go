package session

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by Send when the session is not in the
// Connected phase. The caller may retry later; the manager never does.
var ErrNotConnected = errors.New("whatsapp session is not connected")

// TransportError wraps a send the transport rejected. It is surfaced to the
// caller verbatim and never retried.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
