package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Errors reported through notifications.
var (
	// ErrNoTransformer indicates a transform command ran without a Transformer.
	ErrNoTransformer = errors.New("no transformer configured")

	// ErrNothingToPaste indicates the register is empty.
	ErrNothingToPaste = errors.New("nothing to paste")

	// ErrMarksUnsupported indicates the source cannot mark rows.
	ErrMarksUnsupported = errors.New("source does not support row marks")

	// ErrEmptyGrid indicates a cell command ran on a grid with no cells.
	ErrEmptyGrid = errors.New("grid has no cells")
)

// CommitError reports a transaction the source refused.
type CommitError struct {
	ID          uuid.UUID
	Description string
	Err         error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Description, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// RollbackError reports a rollback that could not be completed. The
// engine clears its history in that case since the source no longer
// matches it.
type RollbackError struct {
	ID     uuid.UUID
	Reason string
	Err    error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback %s (%s): %v", e.ID, e.Reason, e.Err)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}
