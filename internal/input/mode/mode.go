// Package mode defines the grid editing modes and the controller that owns
// transitions between them.
//
// The set of modes is closed: Normal, Select and Insert. Code that branches
// on a Mode switches over all three.
package mode

import (
	"fmt"
	"strings"
)

// Mode is the active editing mode of a grid.
type Mode uint8

const (
	// Normal is the initial mode: motions, row edits, history.
	Normal Mode = iota
	// Select extends a cell or row selection.
	Select
	// Insert edits a single cell's text.
	Insert
)

// Mode names as used in keymap files and configuration.
const (
	NameNormal = "normal"
	NameSelect = "select"
	NameInsert = "insert"
)

// All returns every mode in declaration order.
func All() []Mode {
	return []Mode{Normal, Select, Insert}
}

func (m Mode) String() string {
	switch m {
	case Normal:
		return NameNormal
	case Select:
		return NameSelect
	case Insert:
		return NameInsert
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// DisplayName returns the status-line label, e.g. "NORMAL".
func (m Mode) DisplayName() string {
	return strings.ToUpper(m.String())
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m <= Insert
}

// Parse returns the mode with the given name (case-insensitive).
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameNormal:
		return Normal, nil
	case NameSelect, "visual":
		return Select, nil
	case NameInsert:
		return Insert, nil
	default:
		return Normal, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// UsesCounts reports whether numeric prefixes are collected in m.
// Digits typed in Insert are text.
func (m Mode) UsesCounts() bool {
	switch m {
	case Normal, Select:
		return true
	case Insert:
		return false
	default:
		return false
	}
}
