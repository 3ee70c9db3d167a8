package mode

import (
	"errors"
	"fmt"
)

// Errors returned by Manager.
var (
	ErrUnknownMode       = errors.New("unknown mode")
	ErrInvalidTransition = errors.New("invalid mode transition")
)

// Transition records one mode change.
type Transition struct {
	From   Mode
	To     Mode
	Reason string
}

func (t Transition) String() string {
	if t.Reason == "" {
		return fmt.Sprintf("%s -> %s", t.From, t.To)
	}
	return fmt.Sprintf("%s -> %s (%s)", t.From, t.To, t.Reason)
}

// Manager owns the current mode. Select and Insert are only reachable from
// Normal and only return to Normal.
type Manager struct {
	current  Mode
	previous Mode
}

// NewManager returns a manager in Normal mode.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	return m.current
}

// Previous returns the mode active before the last transition.
func (m *Manager) Previous() Mode {
	return m.previous
}

// Is reports whether the active mode is mode.
func (m *Manager) Is(mode Mode) bool {
	return m.current == mode
}

// Allowed reports whether from -> to is a legal transition.
// Staying in the same mode is always allowed.
func Allowed(from, to Mode) bool {
	if from == to {
		return from.Valid()
	}
	switch from {
	case Normal:
		return to == Select || to == Insert
	case Select, Insert:
		return to == Normal
	default:
		return false
	}
}

// Enter switches to mode. Entering the current mode is a no-op and returns
// a Transition with From == To.
func (m *Manager) Enter(to Mode, reason string) (Transition, error) {
	if !to.Valid() {
		return Transition{}, fmt.Errorf("%w: %d", ErrUnknownMode, to)
	}
	t := Transition{From: m.current, To: to, Reason: reason}
	if !Allowed(m.current, to) {
		return t, fmt.Errorf("%w: %s", ErrInvalidTransition, t)
	}
	if m.current != to {
		m.previous = m.current
		m.current = to
	}
	return t, nil
}

// Reset forces the manager back to Normal. Used after a failed commit or a
// rollback, where any transition to Normal is legal.
func (m *Manager) Reset(reason string) Transition {
	t := Transition{From: m.current, To: Normal, Reason: reason}
	if m.current != Normal {
		m.previous = m.current
		m.current = Normal
	}
	return t
}
