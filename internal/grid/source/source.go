// Package source defines the data-source capability the grid engine edits
// through, and provides an in-memory table implementation.
//
// A Source applies a transaction atomically: either every diff takes effect
// or none does. Sources that persist asynchronously apply to their in-memory
// view first and report persistence failures later; the engine then reverts
// the failed transaction through the optional Reverter interface so the
// revert itself is not persisted again.
package source

import (
	"context"

	"github.com/dshills/keygrid/internal/grid/history"
)

// Source is the grid's data capability.
type Source interface {
	RowCount() int
	ColumnCount() int
	CellValue(row, col int) string
	ApplyEdit(tx *history.Transaction) error
}

// RowMarker is implemented by sources that track rows marked for deletion.
type RowMarker interface {
	IsMarked(row int) bool
	MarkedRows() []int
}

// Reverter is implemented by sources that can undo an applied transaction
// in their in-memory view without persisting the change.
type Reverter interface {
	RevertEdit(applied *history.Transaction) error
}

// Resumer is implemented by asynchronously persisted sources that stop
// mirroring after a failure until resumed.
type Resumer interface {
	Resume(ctx context.Context) error
}

// Columns is implemented by sources with named columns.
type Columns interface {
	ColumnNames() []string
}
