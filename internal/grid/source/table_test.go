package source

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/keygrid/internal/grid/history"
)

func sample(opts ...Option) *Table {
	return NewTable([]string{"id", "name"}, [][]string{
		{"1", "ann"},
		{"2", "bob"},
		{"3"},
	}, opts...)
}

func TestNewTablePadsRows(t *testing.T) {
	tbl := sample()
	if tbl.RowCount() != 3 || tbl.ColumnCount() != 2 {
		t.Fatalf("size = %dx%d", tbl.RowCount(), tbl.ColumnCount())
	}
	if got := tbl.Row(2); !reflect.DeepEqual(got, []string{"3", ""}) {
		t.Errorf("Row(2) = %v", got)
	}
	if tbl.CellValue(9, 0) != "" || tbl.CellValue(0, -1) != "" {
		t.Error("out of range CellValue not empty")
	}
}

func TestApplyEdit(t *testing.T) {
	tests := []struct {
		name    string
		diffs   []history.Diff
		want    [][]string
		wantErr error
	}{
		{
			name:  "cell",
			diffs: []history.Diff{history.CellDiff{Row: 1, Col: 1, Previous: "bob", New: "bo"}},
			want:  [][]string{{"1", "ann"}, {"2", "bo"}, {"3", ""}},
		},
		{
			name: "insert and delete",
			diffs: []history.Diff{
				history.RowDiff{Index: 0, New: []string{"0", "zed"}},
				history.RowDiff{Index: 3, Previous: []string{"3", ""}},
			},
			want: [][]string{{"0", "zed"}, {"1", "ann"}, {"2", "bob"}},
		},
		{
			name:    "stale cell",
			diffs:   []history.Diff{history.CellDiff{Row: 0, Col: 1, Previous: "nope", New: "x"}},
			wantErr: ErrStaleValue,
		},
		{
			name:    "out of range",
			diffs:   []history.Diff{history.CellDiff{Row: 5, Col: 0, New: "x"}},
			wantErr: ErrOutOfRange,
		},
		{
			name:    "wrong width",
			diffs:   []history.Diff{history.RowDiff{Index: 0, New: []string{"only"}}},
			wantErr: ErrRowWidth,
		},
		{
			name: "partial failure rolls back",
			diffs: []history.Diff{
				history.CellDiff{Row: 0, Col: 1, Previous: "ann", New: "ANN"},
				history.RowDiff{Index: 1, Previous: []string{"2", "bob"}},
				history.CellDiff{Row: 7, Col: 0, New: "x"},
			},
			wantErr: ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := sample()
			before := tbl.Rows()
			err := tbl.ApplyEdit(history.NewTransaction(tt.name, tt.diffs...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				var ee *EditError
				if !errors.As(err, &ee) {
					t.Errorf("error %T is not *EditError", err)
				}
				if got := tbl.Rows(); !reflect.DeepEqual(got, before) {
					t.Errorf("rows changed after failure: %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEdit: %v", err)
			}
			if got := tbl.Rows(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarks(t *testing.T) {
	tbl := sample()
	mark := history.NewTransaction("mark", history.MarkDiff{Row: 1, New: true})
	if err := tbl.ApplyEdit(mark); err != nil {
		t.Fatal(err)
	}
	if !tbl.IsMarked(1) || !reflect.DeepEqual(tbl.MarkedRows(), []int{1}) {
		t.Fatalf("marks = %v", tbl.MarkedRows())
	}

	// Inserting above shifts the mark with its row.
	ins := history.NewTransaction("ins", history.RowDiff{Index: 0, New: []string{"", ""}})
	if err := tbl.ApplyEdit(ins); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.MarkedRows(), []int{2}) {
		t.Errorf("marks after insert = %v", tbl.MarkedRows())
	}

	// Deleting a marked row and undoing restores the mark.
	del := history.NewTransaction("del", history.RowDiff{Index: 2, Previous: []string{"2", "bob"}, Marked: true})
	if err := tbl.ApplyEdit(del); err != nil {
		t.Fatal(err)
	}
	if err := tbl.ApplyEdit(del.Inverse()); err != nil {
		t.Fatal(err)
	}
	if !tbl.IsMarked(2) {
		t.Error("mark not restored by inverse")
	}
}

func TestValidatorRejects(t *testing.T) {
	refuse := errors.New("name required")
	tbl := sample(WithValidator(func(d history.Diff) error {
		if c, ok := d.(history.CellDiff); ok && c.Col == 1 && c.New == "" {
			return refuse
		}
		return nil
	}))

	tx := history.NewTransaction("clear", history.CellDiff{Row: 0, Col: 1, Previous: "ann", New: ""})
	err := tbl.ApplyEdit(tx)
	if !errors.Is(err, ErrRejected) || !errors.Is(err, refuse) {
		t.Fatalf("error = %v", err)
	}
	if tbl.CellValue(0, 1) != "ann" {
		t.Error("rejected edit was applied")
	}
}

func TestRevertEditSkipsValidator(t *testing.T) {
	tbl := sample()
	tx := history.NewTransaction("clear", history.CellDiff{Row: 0, Col: 1, Previous: "ann", New: ""})
	if err := tbl.ApplyEdit(tx); err != nil {
		t.Fatal(err)
	}
	tbl.validate = func(history.Diff) error { return errors.New("always") }
	if err := tbl.RevertEdit(tx); err != nil {
		t.Fatalf("RevertEdit: %v", err)
	}
	if tbl.CellValue(0, 1) != "ann" {
		t.Errorf("cell = %q", tbl.CellValue(0, 1))
	}
}

var (
	_ Source    = (*Table)(nil)
	_ RowMarker = (*Table)(nil)
	_ Reverter  = (*Table)(nil)
	_ Columns   = (*Table)(nil)
)
