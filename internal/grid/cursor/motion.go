package cursor

// CellReader reads cell text. Word motions use it to find non-empty cells.
type CellReader interface {
	CellValue(row, col int) string
}

// Up moves n rows up.
func (c *Cursor) Up(n int) bool { return c.Step(-max(n, 1), 0) }

// Down moves n rows down.
func (c *Cursor) Down(n int) bool { return c.Step(max(n, 1), 0) }

// Left moves n columns left.
func (c *Cursor) Left(n int) bool { return c.Step(0, -max(n, 1)) }

// Right moves n columns right.
func (c *Cursor) Right(n int) bool { return c.Step(0, max(n, 1)) }

// FirstRow jumps to row 0, keeping the column.
func (c *Cursor) FirstRow() bool {
	return c.MoveTo(Position{Row: 0, Col: c.pos.Col})
}

// LastRow jumps to the last row, keeping the column.
func (c *Cursor) LastRow() bool {
	return c.MoveTo(Position{Row: c.rows - 1, Col: c.pos.Col})
}

// GotoRow jumps to the 1-based row n, clamped.
func (c *Cursor) GotoRow(n int) bool {
	return c.MoveTo(Position{Row: n - 1, Col: c.pos.Col})
}

// FirstCol jumps to column 0.
func (c *Cursor) FirstCol() bool {
	return c.MoveTo(Position{Row: c.pos.Row, Col: 0})
}

// LastCol jumps to the last column.
func (c *Cursor) LastCol() bool {
	return c.MoveTo(Position{Row: c.pos.Row, Col: c.cols - 1})
}

// WordNext moves to the n-th next non-empty cell in the row. With no such
// cell it saturates at the last column.
func (c *Cursor) WordNext(r CellReader, n int) bool {
	col := c.pos.Col
	for i := 0; i < max(n, 1); i++ {
		next := c.cols - 1
		for j := col + 1; j < c.cols; j++ {
			if r.CellValue(c.pos.Row, j) != "" {
				next = j
				break
			}
		}
		if next <= col {
			break
		}
		col = next
	}
	return c.MoveTo(Position{Row: c.pos.Row, Col: col})
}

// WordPrev moves to the n-th previous non-empty cell in the row, saturating
// at column 0.
func (c *Cursor) WordPrev(r CellReader, n int) bool {
	col := c.pos.Col
	for i := 0; i < max(n, 1); i++ {
		prev := 0
		for j := col - 1; j >= 0; j-- {
			if r.CellValue(c.pos.Row, j) != "" {
				prev = j
				break
			}
		}
		if prev >= col {
			break
		}
		col = prev
	}
	return c.MoveTo(Position{Row: c.pos.Row, Col: col})
}
