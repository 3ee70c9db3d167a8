package selection

import (
	"strings"

	"github.com/dshills/keygrid/internal/grid/cursor"
)

// Reader is the read side of a grid data source.
type Reader interface {
	RowCount() int
	ColumnCount() int
	CellValue(row, col int) string
}

// Kind says whether a snapshot holds whole rows or a cell block.
type Kind uint8

const (
	KindCells Kind = iota
	KindRows
)

func (k Kind) String() string {
	if k == KindRows {
		return "rows"
	}
	return "cells"
}

// Snapshot is a copied block of values. It owns its data and is unaffected
// by later edits to the source it was captured from.
type Snapshot struct {
	Kind   Kind
	Values [][]string
}

// Capture copies the values covered by sel.
func Capture(src Reader, sel Selection) Snapshot {
	sel = sel.Clamp(src.RowCount(), src.ColumnCount())
	if src.RowCount() == 0 || src.ColumnCount() == 0 {
		return Snapshot{Kind: kindOf(sel)}
	}
	r := sel.Range(src.ColumnCount())
	snap := Snapshot{Kind: kindOf(sel), Values: make([][]string, 0, r.Rows())}
	for row := r.Top; row <= r.Bottom; row++ {
		line := make([]string, 0, r.Cols())
		for col := r.Left; col <= r.Right; col++ {
			line = append(line, src.CellValue(row, col))
		}
		snap.Values = append(snap.Values, line)
	}
	return snap
}

// RowSnapshot copies whole rows starting at row.
func RowSnapshot(src Reader, row, count int) Snapshot {
	if src.RowCount() == 0 {
		return Snapshot{Kind: KindRows}
	}
	row = max(min(row, src.RowCount()-1), 0)
	end := min(row+max(count, 1), src.RowCount()) - 1
	return Capture(src, NewRows(cursor.Position{Row: row}).Extend(cursor.Position{Row: end}))
}

// CellSnapshot copies the cell at p.
func CellSnapshot(src Reader, p cursor.Position) Snapshot {
	return Capture(src, New(p))
}

func kindOf(sel Selection) Kind {
	if sel.WholeRow {
		return KindRows
	}
	return KindCells
}

// Empty reports whether the snapshot holds no values.
func (s Snapshot) Empty() bool { return len(s.Values) == 0 }

// Height returns the number of rows held.
func (s Snapshot) Height() int { return len(s.Values) }

// Width returns the widest row length.
func (s Snapshot) Width() int {
	w := 0
	for _, row := range s.Values {
		w = max(w, len(row))
	}
	return w
}

// Row returns a copy of row i.
func (s Snapshot) Row(i int) []string {
	return append([]string(nil), s.Values[i]...)
}

// TSV renders the snapshot as tab-separated lines. Tabs and newlines inside
// values are replaced by spaces.
func (s Snapshot) TSV() string {
	var b strings.Builder
	for i, row := range s.Values {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(tsvEscaper.Replace(v))
		}
	}
	return b.String()
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")
