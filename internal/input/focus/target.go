// Package focus routes keyboard focus between the regions of the editor
// window: Toolbar, TabStrip, Grid, TextEditor and Sidebar.
//
// The router holds only which region is active. Each region keeps its own
// cursor and answers whether that cursor sits on an edge. A navigation key
// arriving at an edge moves focus along the adjacency table instead of
// moving the cursor.
package focus

import (
	"fmt"
	"strings"

	"github.com/dshills/keygrid/internal/input/key"
)

// Target is a keyboard-addressable region.
type Target uint8

const (
	Toolbar Target = iota
	TabStrip
	Grid
	TextEditor
	Sidebar

	numTargets
)

// Targets returns every region.
func Targets() []Target {
	return []Target{Toolbar, TabStrip, Grid, TextEditor, Sidebar}
}

func (t Target) String() string {
	switch t {
	case Toolbar:
		return "toolbar"
	case TabStrip:
		return "tabstrip"
	case Grid:
		return "grid"
	case TextEditor:
		return "editor"
	case Sidebar:
		return "sidebar"
	default:
		return fmt.Sprintf("Target(%d)", t)
	}
}

// Valid reports whether t is a declared region.
func (t Target) Valid() bool {
	return t < numTargets
}

// ParseTarget returns the region with the given name.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toolbar":
		return Toolbar, nil
	case "tabstrip", "tabs":
		return TabStrip, nil
	case "grid":
		return Grid, nil
	case "editor", "texteditor", "sql":
		return TextEditor, nil
	case "sidebar", "tree", "sidebartree":
		return Sidebar, nil
	default:
		return Grid, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
}

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right

	numDirections
)

// Directions returns the four directions.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Vertical reports whether d is Up or Down.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// ParseDirection returns the direction with the given name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Up, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// NavDirection maps the navigation keys h/j/k/l and the arrows to a
// direction. Modified keys are not navigation.
func NavDirection(ev key.Event) (Direction, bool) {
	ev = ev.Normalize()
	if ev.Modifiers != key.ModNone {
		return 0, false
	}
	switch ev.Key {
	case key.KeyUp:
		return Up, true
	case key.KeyDown:
		return Down, true
	case key.KeyLeft:
		return Left, true
	case key.KeyRight:
		return Right, true
	case key.KeyRune:
		switch ev.Rune {
		case 'k':
			return Up, true
		case 'j':
			return Down, true
		case 'h':
			return Left, true
		case 'l':
			return Right, true
		}
	}
	return 0, false
}

// ArrowDirection is like NavDirection but only accepts arrow keys. Text
// regions use it since letters there are text.
func ArrowDirection(ev key.Event) (Direction, bool) {
	if ev.Key == key.KeyRune {
		return 0, false
	}
	return NavDirection(ev)
}
