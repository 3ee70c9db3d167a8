package keymap

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrConflict          = errors.New("key binding conflict")
	ErrUnknownAction     = errors.New("unknown action")
	ErrMissingArg        = errors.New("action requires an argument")
	ErrDigitBinding      = errors.New("binding starts with a count digit")
	ErrNotGlobalChord    = errors.New("global shortcut must be a single Ctrl or Meta chord")
	ErrUnknownKeymap     = errors.New("unknown keymap")
	ErrUnsupportedFormat = errors.New("unsupported keymap file format")
)

// ConflictKind distinguishes the two ways bindings can collide.
type ConflictKind uint8

const (
	// ConflictDuplicate means two actions are bound to the same keys.
	ConflictDuplicate ConflictKind = iota
	// ConflictPrefix means one binding's keys begin another's.
	ConflictPrefix
)

func (k ConflictKind) String() string {
	if k == ConflictPrefix {
		return "prefix"
	}
	return "duplicate"
}

// ConflictError reports two bindings that cannot coexist in one table.
type ConflictError struct {
	Keymap   string
	Kind     ConflictKind
	Existing Binding
	Incoming Binding
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictPrefix:
		return fmt.Sprintf("keymap %s: %q (%s) and %q (%s) overlap: one is a prefix of the other",
			e.Keymap, e.Existing.Keys, e.Existing.Action, e.Incoming.Keys, e.Incoming.Action)
	default:
		return fmt.Sprintf("keymap %s: %q bound to both %s and %s",
			e.Keymap, e.Incoming.Keys, e.Existing.Action, e.Incoming.Action)
	}
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// BindingError reports a binding that is invalid on its own.
type BindingError struct {
	Keymap string
	Keys   string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("keymap %s: binding %q: %v", e.Keymap, e.Keys, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
