// Package cursor tracks the grid cursor and the visible window around it.
//
// All motions saturate at the data bounds. An empty grid pins the cursor
// at (0, 0).
package cursor

import "fmt"

// Position is a zero-based (row, column) cell address.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cursor is the grid cursor.
type Cursor struct {
	pos  Position
	rows int
	cols int
}

// New creates a cursor at (0, 0) over a rows x cols grid.
func New(rows, cols int) *Cursor {
	c := &Cursor{}
	c.SetBounds(rows, cols)
	return c
}

// Position returns the current cell.
func (c *Cursor) Position() Position {
	return c.pos
}

// Row returns the current row.
func (c *Cursor) Row() int { return c.pos.Row }

// Col returns the current column.
func (c *Cursor) Col() int { return c.pos.Col }

// Bounds returns the grid size the cursor is clamped to.
func (c *Cursor) Bounds() (rows, cols int) {
	return c.rows, c.cols
}

// Empty reports whether the grid has no cells.
func (c *Cursor) Empty() bool {
	return c.rows == 0 || c.cols == 0
}

// SetBounds updates the grid size and clamps the cursor into it. Called
// after every data mutation.
func (c *Cursor) SetBounds(rows, cols int) {
	c.rows = max(rows, 0)
	c.cols = max(cols, 0)
	c.pos = c.clamp(c.pos)
}

func (c *Cursor) clamp(p Position) Position {
	p.Row = clampInt(p.Row, 0, c.rows-1)
	p.Col = clampInt(p.Col, 0, c.cols-1)
	return p
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveTo jumps to p, clamped. It reports whether the position changed.
func (c *Cursor) MoveTo(p Position) bool {
	p = c.clamp(p)
	if p == c.pos {
		return false
	}
	c.pos = p
	return true
}

// Step moves by (dRow, dCol), clamped.
func (c *Cursor) Step(dRow, dCol int) bool {
	return c.MoveTo(Position{Row: c.pos.Row + dRow, Col: c.pos.Col + dCol})
}

// AtTop reports whether the cursor is on the first row.
func (c *Cursor) AtTop() bool { return c.pos.Row == 0 }

// AtBottom reports whether the cursor is on the last row.
func (c *Cursor) AtBottom() bool { return c.pos.Row >= c.rows-1 }

// AtLeft reports whether the cursor is on the first column.
func (c *Cursor) AtLeft() bool { return c.pos.Col == 0 }

// AtRight reports whether the cursor is on the last column.
func (c *Cursor) AtRight() bool { return c.pos.Col >= c.cols-1 }
