package source

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/keygrid/internal/grid/history"
)

// Errors returned by ApplyEdit.
var (
	// ErrOutOfRange indicates a diff addresses a row or column that does not exist.
	ErrOutOfRange = errors.New("position out of range")

	// ErrStaleValue indicates a diff's previous value does not match the source.
	ErrStaleValue = errors.New("stale previous value")

	// ErrRowWidth indicates a row diff carries the wrong number of columns.
	ErrRowWidth = errors.New("row width does not match column count")

	// ErrRejected indicates a validator refused the edit.
	ErrRejected = errors.New("edit rejected")
)

// EditError reports which diff of a transaction failed to apply.
type EditError struct {
	Transaction uuid.UUID
	Index       int
	Diff        history.Diff
	Err         error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("diff %d (%s): %v", e.Index, e.Diff, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}
