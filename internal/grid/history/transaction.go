package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transaction is an atomic, invertible group of diffs. Diffs apply in
// order; the inverse applies the inverted diffs in reverse order.
type Transaction struct {
	// ID correlates the transaction with asynchronous persistence.
	ID uuid.UUID

	// Description is a short label such as "delete 3 rows".
	Description string

	Diffs []Diff

	// Time is when the transaction was created.
	Time time.Time
}

// NewTransaction creates a transaction with a fresh ID.
func NewTransaction(description string, diffs ...Diff) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Description: description,
		Diffs:       append([]Diff(nil), diffs...),
		Time:        time.Now(),
	}
}

// Add appends diffs.
func (t *Transaction) Add(diffs ...Diff) {
	t.Diffs = append(t.Diffs, diffs...)
}

// Empty reports whether t has no diffs.
func (t *Transaction) Empty() bool {
	return len(t.Diffs) == 0
}

// Len returns the number of diffs.
func (t *Transaction) Len() int {
	return len(t.Diffs)
}

// Inverse returns a new transaction that undoes t.
func (t *Transaction) Inverse() *Transaction {
	inv := &Transaction{
		ID:          uuid.New(),
		Description: "undo " + t.Description,
		Diffs:       make([]Diff, len(t.Diffs)),
		Time:        time.Now(),
	}
	for i, d := range t.Diffs {
		inv.Diffs[len(t.Diffs)-1-i] = d.Invert()
	}
	return inv
}

// Reapply returns a copy of t with a fresh ID, used when redoing.
func (t *Transaction) Reapply() *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Description: t.Description,
		Diffs:       append([]Diff(nil), t.Diffs...),
		Time:        time.Now(),
	}
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %q (%d diffs)", t.ID.String()[:8], t.Description, len(t.Diffs))
}
