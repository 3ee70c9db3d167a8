package engine

import (
	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/grid/selection"
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/mode"
)

// Effect is an action the engine does not own, forwarded to the host.
type Effect struct {
	Action command.Action
	Count  int
	Arg    string

	// Cell is the grid cursor when the effect was raised.
	Cell cursor.Position
}

// Level is a notification severity.
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a non-fatal message for the user.
type Notification struct {
	Level   Level
	Message string
	Err     error
}

// Result reports the state after one key.
type Result struct {
	Mode      mode.Mode
	Cursor    cursor.Position
	Selection *selection.Selection

	// FocusChanged is set when focus moved; Move describes the change.
	FocusChanged bool
	Move         focus.Move
	Focus        focus.Target

	// Transaction is what was applied to the source, if anything. For
	// undo this is the applied inverse.
	Transaction *history.Transaction

	Scroll       cursor.Scroll
	Effects      []Effect
	Notification *Notification

	// Pending is the buffered input for status display, e.g. "5g".
	Pending string

	// Command is the resolved command, if any.
	Command *command.Command

	// Activated is the item opened with Enter in a list region.
	Activated string

	// Forwarded is set when no region handled the key.
	Forwarded bool
}
