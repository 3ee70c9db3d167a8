package source

import (
	"fmt"
	"slices"

	"github.com/dshills/keygrid/internal/grid/history"
)

// Validator inspects each diff before it is applied. A non-nil error aborts
// the whole transaction.
type Validator func(d history.Diff) error

// Option configures a Table.
type Option func(*Table)

// WithValidator installs a per-diff validator, such as a column constraint.
func WithValidator(v Validator) Option {
	return func(t *Table) {
		t.validate = v
	}
}

// Table is an in-memory Source. It is not safe for concurrent use.
type Table struct {
	columns  []string
	rows     [][]string
	marks    []bool
	validate Validator
}

// NewTable creates a table with the given column names and rows. Rows are
// copied and padded or truncated to the column count.
func NewTable(columns []string, rows [][]string, opts ...Option) *Table {
	t := &Table{columns: slices.Clone(columns)}
	for _, opt := range opts {
		opt(t)
	}
	t.Load(rows)
	return t
}

// Load replaces all rows and clears every mark.
func (t *Table) Load(rows [][]string) {
	t.rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		t.rows = append(t.rows, t.fit(r))
	}
	t.marks = make([]bool, len(t.rows))
}

func (t *Table) fit(r []string) []string {
	out := make([]string, len(t.columns))
	copy(out, r)
	return out
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnNames returns a copy of the column names.
func (t *Table) ColumnNames() []string { return slices.Clone(t.columns) }

// CellValue returns the cell text, or "" outside the table.
func (t *Table) CellValue(row, col int) string {
	if !t.inRow(row) || col < 0 || col >= len(t.columns) {
		return ""
	}
	return t.rows[row][col]
}

// Row returns a copy of a row.
func (t *Table) Row(row int) []string {
	if !t.inRow(row) {
		return nil
	}
	return slices.Clone(t.rows[row])
}

// Rows returns a deep copy of all rows.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// IsMarked reports whether row is marked for deletion.
func (t *Table) IsMarked(row int) bool {
	return t.inRow(row) && t.marks[row]
}

// MarkedRows returns the marked row indexes in ascending order.
func (t *Table) MarkedRows() []int {
	var out []int
	for i, m := range t.marks {
		if m {
			out = append(out, i)
		}
	}
	return out
}

// ApplyEdit applies every diff of tx in order. If any diff fails the
// diffs already applied are reverted and an *EditError is returned.
func (t *Table) ApplyEdit(tx *history.Transaction) error {
	return t.apply(tx, true)
}

// RevertEdit applies the inverse of an already applied transaction
// without running the validator.
func (t *Table) RevertEdit(applied *history.Transaction) error {
	return t.apply(applied.Inverse(), false)
}

func (t *Table) apply(tx *history.Transaction, validate bool) error {
	for i, d := range tx.Diffs {
		err := t.check(d)
		if err == nil && validate && t.validate != nil {
			if verr := t.validate(d); verr != nil {
				err = fmt.Errorf("%w: %w", ErrRejected, verr)
			}
		}
		if err != nil {
			for j := i - 1; j >= 0; j-- {
				t.mutate(tx.Diffs[j].Invert())
			}
			return &EditError{Transaction: tx.ID, Index: i, Diff: d, Err: err}
		}
		t.mutate(d)
	}
	return nil
}

// check verifies d against the current contents.
func (t *Table) check(d history.Diff) error {
	switch d := d.(type) {
	case history.CellDiff:
		if !t.inRow(d.Row) || d.Col < 0 || d.Col >= len(t.columns) {
			return ErrOutOfRange
		}
		if t.rows[d.Row][d.Col] != d.Previous {
			return ErrStaleValue
		}
	case history.RowDiff:
		switch {
		case d.IsInsert():
			if d.Index < 0 || d.Index > len(t.rows) {
				return ErrOutOfRange
			}
			if len(d.New) != len(t.columns) {
				return ErrRowWidth
			}
		case d.IsDelete():
			if !t.inRow(d.Index) {
				return ErrOutOfRange
			}
			if !slices.Equal(t.rows[d.Index], d.Previous) {
				return ErrStaleValue
			}
		default:
			if !t.inRow(d.Index) {
				return ErrOutOfRange
			}
			if len(d.New) != len(t.columns) {
				return ErrRowWidth
			}
			if !slices.Equal(t.rows[d.Index], d.Previous) {
				return ErrStaleValue
			}
		}
	case history.MarkDiff:
		if !t.inRow(d.Row) {
			return ErrOutOfRange
		}
		if t.marks[d.Row] != d.Previous {
			return ErrStaleValue
		}
	default:
		return fmt.Errorf("unsupported diff %T", d)
	}
	return nil
}

// mutate applies a checked diff.
func (t *Table) mutate(d history.Diff) {
	switch d := d.(type) {
	case history.CellDiff:
		t.rows[d.Row][d.Col] = d.New
	case history.RowDiff:
		switch {
		case d.IsInsert():
			t.rows = slices.Insert(t.rows, d.Index, slices.Clone(d.New))
			t.marks = slices.Insert(t.marks, d.Index, d.Marked)
		case d.IsDelete():
			t.rows = slices.Delete(t.rows, d.Index, d.Index+1)
			t.marks = slices.Delete(t.marks, d.Index, d.Index+1)
		default:
			t.rows[d.Index] = slices.Clone(d.New)
		}
	case history.MarkDiff:
		t.marks[d.Row] = d.New
	}
}

func (t *Table) inRow(row int) bool {
	return row >= 0 && row < len(t.rows)
}
