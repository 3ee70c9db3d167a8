// Package history records committed grid transactions for undo and redo.
//
// Undo and redo share one stack ordered by commit time; cell and row edits
// interleave freely. Every transaction applied to the data source is also
// journaled so that a late persistence failure can rewind it together with
// everything applied after it.
package history

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Errors
var (
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrNothingToRedo      = errors.New("nothing to redo")
	ErrEmptyTransaction   = errors.New("empty transaction")
	ErrUnknownTransaction = errors.New("transaction not in journal")
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 1000

// Applier applies a transaction atomically: all diffs or none.
type Applier interface {
	ApplyEdit(tx *Transaction) error
}

// EntryKind says why a transaction was applied.
type EntryKind uint8

const (
	KindCommit EntryKind = iota
	KindUndo
	KindRedo
)

func (k EntryKind) String() string {
	switch k {
	case KindUndo:
		return "undo"
	case KindRedo:
		return "redo"
	default:
		return "commit"
	}
}

// Entry is one journaled application.
type Entry struct {
	Kind EntryKind

	// Applied is what was sent to the data source.
	Applied *Transaction

	// Original is the transaction on the undo/redo stacks. For commits
	// it is Applied itself.
	Original *Transaction
}

// History is the undo/redo stack pair plus the application journal.
type History struct {
	undo []*Transaction
	redo []*Transaction

	journal    []Entry
	maxEntries int
	maxJournal int
}

// New creates a history keeping at most maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
		maxJournal: max(4*maxEntries, 64),
	}
}

// MaxEntries returns the undo depth limit.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Commit applies tx, pushes it onto the undo stack and clears redo. On
// failure nothing is recorded.
func (h *History) Commit(a Applier, tx *Transaction) error {
	if tx == nil || tx.Empty() {
		return ErrEmptyTransaction
	}
	if err := a.ApplyEdit(tx); err != nil {
		return err
	}
	h.pushUndo(tx)
	h.redo = nil
	h.record(Entry{Kind: KindCommit, Applied: tx, Original: tx})
	return nil
}

// Undo applies the inverse of the newest transaction and moves it to the
// redo stack. It returns the applied inverse.
func (h *History) Undo(a Applier) (*Transaction, error) {
	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	tx := h.undo[len(h.undo)-1]
	inv := tx.Inverse()
	if err := a.ApplyEdit(inv); err != nil {
		return nil, fmt.Errorf("undo %s: %w", tx.Description, err)
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, tx)
	h.record(Entry{Kind: KindUndo, Applied: inv, Original: tx})
	return inv, nil
}

// Redo reapplies the newest undone transaction and moves it back to the
// undo stack. It returns the applied copy.
func (h *History) Redo(a Applier) (*Transaction, error) {
	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	tx := h.redo[len(h.redo)-1]
	again := tx.Reapply()
	if err := a.ApplyEdit(again); err != nil {
		return nil, fmt.Errorf("redo %s: %w", tx.Description, err)
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.pushUndo(tx)
	h.record(Entry{Kind: KindRedo, Applied: again, Original: tx})
	return again, nil
}

// Rewind reverts the journaled application with the given ID and every
// application after it, newest first, restoring the stacks to their state
// before that application. The redo stack is then cleared. revert must undo
// one applied transaction without persisting it.
func (h *History) Rewind(id uuid.UUID, revert func(applied *Transaction) error) ([]*Transaction, error) {
	at := -1
	for i := len(h.journal) - 1; i >= 0; i-- {
		if h.journal[i].Applied.ID == id {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, id)
	}

	var reverted []*Transaction
	for i := len(h.journal) - 1; i >= at; i-- {
		e := h.journal[i]
		if err := revert(e.Applied); err != nil {
			h.journal = h.journal[:i+1]
			h.redo = nil
			return reverted, fmt.Errorf("rewinding %s: %w", e.Applied.Description, err)
		}
		reverted = append(reverted, e.Applied)
		switch e.Kind {
		case KindCommit, KindRedo:
			h.removeUndo(e.Original)
		case KindUndo:
			h.pushUndo(e.Original)
		}
	}
	h.journal = h.journal[:at]
	h.redo = nil
	return reverted, nil
}

// removeUndo drops tx from the undo stack. It is normally the top entry.
func (h *History) removeUndo(tx *Transaction) {
	for i := len(h.undo) - 1; i >= 0; i-- {
		if h.undo[i] == tx {
			h.undo = append(h.undo[:i], h.undo[i+1:]...)
			return
		}
	}
}

func (h *History) pushUndo(tx *Transaction) {
	h.undo = append(h.undo, tx)
	if excess := len(h.undo) - h.maxEntries; excess > 0 {
		h.undo = append([]*Transaction(nil), h.undo[excess:]...)
	}
}

func (h *History) record(e Entry) {
	h.journal = append(h.journal, e)
	if excess := len(h.journal) - h.maxJournal; excess > 0 {
		h.journal = append([]Entry(nil), h.journal[excess:]...)
	}
}

// CanUndo reports whether Undo has work.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has work.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLen returns the undo stack depth.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the redo stack depth.
func (h *History) RedoLen() int { return len(h.redo) }

// PeekUndo returns the newest undoable transaction.
func (h *History) PeekUndo() (*Transaction, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	return h.undo[len(h.undo)-1], true
}

// PeekRedo returns the newest redoable transaction.
func (h *History) PeekRedo() (*Transaction, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	return h.redo[len(h.redo)-1], true
}

// Journal returns a copy of the application journal, oldest first.
func (h *History) Journal() []Entry {
	return append([]Entry(nil), h.journal...)
}

// Clear empties both stacks and the journal.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.journal = nil
}
