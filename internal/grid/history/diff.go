package history

import (
	"fmt"
	"strings"
)

// Diff is one invertible change. The set of diff kinds is closed:
// CellDiff, RowDiff and MarkDiff.
type Diff interface {
	// Invert returns the diff that undoes this one.
	Invert() Diff
	String() string

	diff()
}

// CellDiff changes one cell's text.
type CellDiff struct {
	Row      int
	Col      int
	Previous string
	New      string
}

func (d CellDiff) Invert() Diff {
	return CellDiff{Row: d.Row, Col: d.Col, Previous: d.New, New: d.Previous}
}

func (d CellDiff) String() string {
	return fmt.Sprintf("cell(%d,%d) %q -> %q", d.Row, d.Col, d.Previous, d.New)
}

func (CellDiff) diff() {}

// RowDiff inserts, deletes or replaces a whole row. A nil Previous is an
// insert at Index; a nil New is a delete of Index.
type RowDiff struct {
	Index    int
	Previous []string
	New      []string

	// Marked is the deletion mark carried by the row that is removed
	// (delete) or restored (insert).
	Marked bool
}

// IsInsert reports whether d adds a row.
func (d RowDiff) IsInsert() bool { return d.Previous == nil && d.New != nil }

// IsDelete reports whether d removes a row.
func (d RowDiff) IsDelete() bool { return d.Previous != nil && d.New == nil }

func (d RowDiff) Invert() Diff {
	return RowDiff{Index: d.Index, Previous: d.New, New: d.Previous, Marked: d.Marked}
}

func (d RowDiff) String() string {
	switch {
	case d.IsInsert():
		return fmt.Sprintf("insert row %d [%s]", d.Index, strings.Join(d.New, ", "))
	case d.IsDelete():
		return fmt.Sprintf("delete row %d [%s]", d.Index, strings.Join(d.Previous, ", "))
	default:
		return fmt.Sprintf("replace row %d", d.Index)
	}
}

func (RowDiff) diff() {}

// MarkDiff sets or clears a row's deletion mark.
type MarkDiff struct {
	Row      int
	Previous bool
	New      bool
}

func (d MarkDiff) Invert() Diff {
	return MarkDiff{Row: d.Row, Previous: d.New, New: d.Previous}
}

func (d MarkDiff) String() string {
	return fmt.Sprintf("mark row %d %v -> %v", d.Row, d.Previous, d.New)
}

func (MarkDiff) diff() {}
