package focus

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/keygrid/internal/input/key"
)

// Region is a focusable area with its own cursor.
type Region interface {
	// AtEdge reports whether the cursor cannot move further in d.
	AtEdge(d Direction) bool

	// Move steps the cursor once in d. Only called when !AtEdge(d).
	Move(d Direction)

	// Enter places the cursor on the edge nearest the direction of
	// travel d when focus arrives from a neighbor.
	Enter(d Direction)
}

// KeyHandler is implemented by regions that consume keys beyond
// navigation, e.g. typing into a text region.
type KeyHandler interface {
	HandleKey(ev key.Event) bool
}

// Navigator is implemented by regions that choose which keys navigate.
// Regions without it use NavDirection.
type Navigator interface {
	NavKey(ev key.Event) (Direction, bool)
}

// Activator is implemented by regions whose current item can be opened
// with Enter.
type Activator interface {
	Current() (string, bool)
}

// ListRegion is a one-dimensional list: a toolbar, tab strip or tree.
type ListRegion struct {
	items      []string
	index      int
	horizontal bool
}

// NewListRegion creates a list. Horizontal lists move with left/right,
// vertical ones with up/down; the cross axis is always an edge.
func NewListRegion(horizontal bool, items ...string) *ListRegion {
	return &ListRegion{items: append([]string(nil), items...), horizontal: horizontal}
}

// SetItems replaces the items, clamping the index.
func (l *ListRegion) SetItems(items ...string) {
	l.items = append(l.items[:0], items...)
	l.clamp()
}

// Items returns a copy of the items.
func (l *ListRegion) Items() []string {
	return append([]string(nil), l.items...)
}

// Index returns the cursor position.
func (l *ListRegion) Index() int {
	return l.index
}

// Select moves the cursor to i, clamped.
func (l *ListRegion) Select(i int) {
	l.index = i
	l.clamp()
}

// Current returns the item under the cursor.
func (l *ListRegion) Current() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[l.index], true
}

func (l *ListRegion) clamp() {
	if l.index >= len(l.items) {
		l.index = len(l.items) - 1
	}
	if l.index < 0 {
		l.index = 0
	}
}

func (l *ListRegion) alongAxis(d Direction) bool {
	return d.Vertical() != l.horizontal
}

func (l *ListRegion) backward(d Direction) bool {
	return d == Up || d == Left
}

func (l *ListRegion) AtEdge(d Direction) bool {
	if !l.alongAxis(d) || len(l.items) == 0 {
		return true
	}
	if l.backward(d) {
		return l.index == 0
	}
	return l.index == len(l.items)-1
}

func (l *ListRegion) Move(d Direction) {
	if l.AtEdge(d) {
		return
	}
	if l.backward(d) {
		l.index--
	} else {
		l.index++
	}
}

func (l *ListRegion) Enter(d Direction) {
	if !l.alongAxis(d) {
		return
	}
	if l.backward(d) {
		l.index = len(l.items) - 1
	} else {
		l.index = 0
	}
	l.clamp()
}

// TextRegion is a multi-line text area with a caret. Letters are text, so
// only the arrow keys navigate.
type TextRegion struct {
	lines []string
	row   int
	col   int // in runes
}

// NewTextRegion creates a text region holding text.
func NewTextRegion(text string) *TextRegion {
	return &TextRegion{lines: strings.Split(text, "\n")}
}

// Text returns the full contents.
func (t *TextRegion) Text() string {
	return strings.Join(t.lines, "\n")
}

// SetText replaces the contents and moves the caret to the start.
func (t *TextRegion) SetText(text string) {
	t.lines = strings.Split(text, "\n")
	t.row, t.col = 0, 0
}

// Caret returns the caret line and rune column.
func (t *TextRegion) Caret() (row, col int) {
	return t.row, t.col
}

func (t *TextRegion) lineLen(row int) int {
	return utf8.RuneCountInString(t.lines[row])
}

func (t *TextRegion) NavKey(ev key.Event) (Direction, bool) {
	return ArrowDirection(ev)
}

func (t *TextRegion) AtEdge(d Direction) bool {
	switch d {
	case Up:
		return t.row == 0
	case Down:
		return t.row == len(t.lines)-1
	case Left:
		return t.col == 0
	default:
		return t.col >= t.lineLen(t.row)
	}
}

func (t *TextRegion) Move(d Direction) {
	if t.AtEdge(d) {
		return
	}
	switch d {
	case Up:
		t.row--
	case Down:
		t.row++
	case Left:
		t.col--
	case Right:
		t.col++
	}
	if n := t.lineLen(t.row); t.col > n {
		t.col = n
	}
}

func (t *TextRegion) Enter(d Direction) {
	switch d {
	case Down:
		t.row = 0
	case Up:
		t.row = len(t.lines) - 1
	case Right:
		t.col = 0
	case Left:
		t.col = t.lineLen(t.row)
	}
	if n := t.lineLen(t.row); t.col > n {
		t.col = n
	}
}

// HandleKey types printable runes, splits lines on Enter and deletes on
// Backspace.
func (t *TextRegion) HandleKey(ev key.Event) bool {
	switch {
	case ev.IsPrintable():
		r := []rune(t.lines[t.row])
		r = append(r[:t.col], append([]rune{ev.Rune}, r[t.col:]...)...)
		t.lines[t.row] = string(r)
		t.col++
		return true
	case ev.Key == key.KeyEnter && ev.Modifiers == key.ModNone:
		r := []rune(t.lines[t.row])
		head, tail := string(r[:t.col]), string(r[t.col:])
		t.lines[t.row] = head
		t.lines = append(t.lines[:t.row+1], append([]string{tail}, t.lines[t.row+1:]...)...)
		t.row++
		t.col = 0
		return true
	case ev.Key == key.KeyBackspace && ev.Modifiers == key.ModNone:
		if t.col > 0 {
			r := []rune(t.lines[t.row])
			t.lines[t.row] = string(append(r[:t.col-1], r[t.col:]...))
			t.col--
			return true
		}
		if t.row > 0 {
			prev := t.lineLen(t.row - 1)
			t.lines[t.row-1] += t.lines[t.row]
			t.lines = append(t.lines[:t.row], t.lines[t.row+1:]...)
			t.row--
			t.col = prev
			return true
		}
		return true
	}
	return false
}
