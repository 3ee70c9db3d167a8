// Package selection models the rectangular or whole-row selection active in
// Select mode, and the read-only snapshots captured when copying.
package selection

import (
	"fmt"

	"github.com/dshills/keygrid/internal/grid/cursor"
)

// Rect is an inclusive cell rectangle. Top <= Bottom and Left <= Right.
type Rect struct {
	Top, Left     int
	Bottom, Right int
}

// Rows returns the number of rows covered.
func (r Rect) Rows() int { return r.Bottom - r.Top + 1 }

// Cols returns the number of columns covered.
func (r Rect) Cols() int { return r.Right - r.Left + 1 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p cursor.Position) bool {
	return p.Row >= r.Top && p.Row <= r.Bottom && p.Col >= r.Left && p.Col <= r.Right
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Top, r.Left, r.Bottom, r.Right)
}

// Selection is an anchored range over the grid. Anchor stays where the
// selection started; Active follows the cursor. Selection is a value type.
type Selection struct {
	Anchor cursor.Position
	Active cursor.Position

	// WholeRow selects every column of the rows between Anchor and Active.
	WholeRow bool
}

// New starts a cell selection at p.
func New(p cursor.Position) Selection {
	return Selection{Anchor: p, Active: p}
}

// NewRows starts a whole-row selection at p.
func NewRows(p cursor.Position) Selection {
	return Selection{Anchor: p, Active: p, WholeRow: true}
}

// Extend returns the selection with Active moved to p.
func (s Selection) Extend(p cursor.Position) Selection {
	s.Active = p
	return s
}

// Rows returns the selection switched to whole-row mode and collapsed onto
// its anchor row.
func (s Selection) Rows() Selection {
	return Selection{Anchor: s.Anchor, Active: s.Anchor, WholeRow: true}
}

// Range returns the covered rectangle. Whole-row selections span columns
// 0 through cols-1.
func (s Selection) Range(cols int) Rect {
	r := Rect{
		Top:    min(s.Anchor.Row, s.Active.Row),
		Bottom: max(s.Anchor.Row, s.Active.Row),
		Left:   min(s.Anchor.Col, s.Active.Col),
		Right:  max(s.Anchor.Col, s.Active.Col),
	}
	if s.WholeRow {
		r.Left, r.Right = 0, max(cols-1, 0)
	}
	return r
}

// RowIndexes returns the selected row indexes in ascending order.
func (s Selection) RowIndexes() []int {
	top := min(s.Anchor.Row, s.Active.Row)
	bottom := max(s.Anchor.Row, s.Active.Row)
	rows := make([]int, 0, bottom-top+1)
	for r := top; r <= bottom; r++ {
		rows = append(rows, r)
	}
	return rows
}

// Cells returns every selected position in row-major order.
func (s Selection) Cells(cols int) []cursor.Position {
	r := s.Range(cols)
	if cols <= 0 && s.WholeRow {
		return nil
	}
	out := make([]cursor.Position, 0, r.Rows()*r.Cols())
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			out = append(out, cursor.Position{Row: row, Col: col})
		}
	}
	return out
}

// Contains reports whether p is selected.
func (s Selection) Contains(p cursor.Position, cols int) bool {
	return s.Range(cols).Contains(p)
}

// Clamp returns the selection with both ends inside a rows x cols grid.
func (s Selection) Clamp(rows, cols int) Selection {
	s.Anchor = clampPos(s.Anchor, rows, cols)
	s.Active = clampPos(s.Active, rows, cols)
	return s
}

func clampPos(p cursor.Position, rows, cols int) cursor.Position {
	p.Row = max(min(p.Row, rows-1), 0)
	p.Col = max(min(p.Col, cols-1), 0)
	return p
}

func (s Selection) String() string {
	if s.WholeRow {
		top := min(s.Anchor.Row, s.Active.Row)
		bottom := max(s.Anchor.Row, s.Active.Row)
		return fmt.Sprintf("rows %d-%d", top, bottom)
	}
	return fmt.Sprintf("cells %s", s.Range(0))
}
