package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/grid/selection"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/key"
	"github.com/dshills/keygrid/internal/input/mode"
)

func newTable(rows, cols int, opts ...source.Option) *source.Table {
	names := make([]string, cols)
	for c := range names {
		names[c] = fmt.Sprintf("c%d", c)
	}
	data := make([][]string, rows)
	for r := range data {
		data[r] = make([]string, cols)
		for c := range data[r] {
			data[r][c] = fmt.Sprintf("r%dc%d", r, c)
		}
	}
	return source.NewTable(names, data, opts...)
}

// feed sends every key of spec and returns the last result.
func feed(e *Engine, spec string) Result {
	var res Result
	for _, ev := range key.MustParseSequence(spec) {
		res = e.HandleKey(ev)
	}
	return res
}

type countingSource struct {
	*source.Table
	applied int
}

func (c *countingSource) ApplyEdit(tx *history.Transaction) error {
	c.applied++
	return c.Table.ApplyEdit(tx)
}

type memClipboard struct{ text string }

func (m *memClipboard) WriteText(s string) error {
	m.text = s
	return nil
}

func TestCountedMotions(t *testing.T) {
	tests := []struct {
		keys string
		want cursor.Position
	}{
		{"5j", cursor.Position{Row: 5}},
		{"20j", cursor.Position{Row: 9}},
		{"5jgg", cursor.Position{Row: 0}},
		{"G", cursor.Position{Row: 9}},
		{"3G", cursor.Position{Row: 2}},
		{"4gg", cursor.Position{Row: 3}},
		{"ge", cursor.Position{Row: 9}},
		{"$", cursor.Position{Col: 3}},
		{"$0", cursor.Position{Col: 0}},
		{"gl2h", cursor.Position{Col: 1}},
		{"12<BS>j", cursor.Position{Row: 1}},
		{"3l3h", cursor.Position{}},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			e := New(newTable(10, 4))
			if got := feed(e, tt.keys).Cursor; got != tt.want {
				t.Errorf("cursor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountEqualsRepeatedStep(t *testing.T) {
	for n := 1; n <= 9; n++ {
		counted := New(newTable(10, 4))
		repeated := New(newTable(10, 4))
		feed(counted, fmt.Sprintf("%dj", n))
		for i := 0; i < n; i++ {
			feed(repeated, "j")
		}
		if counted.Cursor() != repeated.Cursor() {
			t.Errorf("%dj = %v, %d x j = %v", n, counted.Cursor(), n, repeated.Cursor())
		}
	}
}

func TestViewportScroll(t *testing.T) {
	e := New(newTable(30, 4), WithViewport(5, 4))
	res := feed(e, "7j")
	if res.Scroll != cursor.ScrollDown || e.Viewport().Top() != 3 {
		t.Errorf("scroll = %v, top = %d", res.Scroll, e.Viewport().Top())
	}
	res = feed(e, "<C-d>")
	if res.Cursor.Row != 9 {
		t.Errorf("half page down row = %d, want 9", res.Cursor.Row)
	}
	if res = feed(e, "gg"); res.Scroll != cursor.ScrollUp || e.Viewport().Top() != 0 {
		t.Errorf("gg scroll = %v, top = %d", res.Scroll, e.Viewport().Top())
	}
}

func TestPendingDisplay(t *testing.T) {
	e := New(newTable(5, 2))
	if res := feed(e, "5g"); res.Pending != "5g" {
		t.Errorf("Pending = %q, want 5g", res.Pending)
	}
	if res := feed(e, "<Esc>"); res.Pending != "" || res.Cursor != (cursor.Position{}) {
		t.Errorf("after Esc: pending %q cursor %v", res.Pending, res.Cursor)
	}
	if res := feed(e, "gx"); res.Pending != "" || res.Command != nil {
		t.Errorf("invalid continuation left %q / %v", res.Pending, res.Command)
	}
}

func TestChangeUndoRedo(t *testing.T) {
	tbl := source.NewTable([]string{"name"}, [][]string{{"foo"}})
	e := New(tbl)

	res := feed(e, "c")
	if res.Mode != mode.Insert {
		t.Fatalf("mode after c = %v", res.Mode)
	}
	if text, _, _ := e.InsertText(); text != "" {
		t.Errorf("change buffer = %q, want empty", text)
	}

	res = feed(e, "bar<CR>")
	if res.Mode != mode.Normal || res.Transaction == nil {
		t.Fatalf("confirm: mode %v tx %v", res.Mode, res.Transaction)
	}
	if tbl.CellValue(0, 0) != "bar" {
		t.Fatalf("cell = %q, want bar", tbl.CellValue(0, 0))
	}

	feed(e, "u")
	if tbl.CellValue(0, 0) != "foo" {
		t.Errorf("after u = %q, want foo", tbl.CellValue(0, 0))
	}
	feed(e, "U")
	if tbl.CellValue(0, 0) != "bar" {
		t.Errorf("after U = %q, want bar", tbl.CellValue(0, 0))
	}
}

func TestInsertEditing(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"a!<CR>", "r0c0!"},
		{"iX<CR>", "Xr0c0"},
		{"i<Del><CR>", "0c0"},
		{"a<BS><BS><CR>", "r0"},
		{"rZZ<CR>", "ZZc0"},
		{"a<Home>_<End>_<CR>", "_r0c0_"},
		{"i<Right><Right>-<Left>+<CR>", "r0+-c0"},
		{"c<Space>x<CR>", " x"},
		{"c12<CR>", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			tbl := newTable(2, 2)
			e := New(tbl)
			feed(e, tt.keys)
			if got := tbl.CellValue(0, 0); got != tt.want {
				t.Errorf("cell = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfirmRight(t *testing.T) {
	tbl := newTable(2, 3)
	e := New(tbl)
	res := feed(e, "cq<Tab>")
	if tbl.CellValue(0, 0) != "q" || res.Cursor != (cursor.Position{Col: 1}) {
		t.Errorf("cell %q cursor %v", tbl.CellValue(0, 0), res.Cursor)
	}
}

func TestUnchangedConfirmCommitsNothing(t *testing.T) {
	src := &countingSource{Table: newTable(2, 2)}
	e := New(src)
	res := feed(e, "i<CR>")
	if src.applied != 0 || res.Transaction != nil || e.History().CanUndo() {
		t.Errorf("unchanged confirm applied %d", src.applied)
	}
}

func TestEscapeFromInsertNeverTouchesSource(t *testing.T) {
	for _, keys := range []string{"i<Esc>", "cxyz<Esc>", "a<BS><BS><Esc>", "rQ<Esc>"} {
		t.Run(keys, func(t *testing.T) {
			src := &countingSource{Table: newTable(2, 2)}
			e := New(src)
			res := feed(e, keys)
			if src.applied != 0 {
				t.Errorf("ApplyEdit called %d times", src.applied)
			}
			if res.Mode != mode.Normal || src.CellValue(0, 0) != "r0c0" {
				t.Errorf("mode %v cell %q", res.Mode, src.CellValue(0, 0))
			}
			if e.History().CanUndo() {
				t.Error("cancelled edit reached the undo stack")
			}
		})
	}
}

func TestWholeRowBulkDeleteSingleUndo(t *testing.T) {
	tbl := newTable(5, 3)
	before := tbl.Rows()
	e := New(tbl)

	res := feed(e, "jx")
	if res.Mode != mode.Select || res.Selection == nil || !res.Selection.WholeRow {
		t.Fatalf("after x: mode %v selection %+v", res.Mode, res.Selection)
	}
	feed(e, "jj")
	res = feed(e, "d")
	if res.Mode != mode.Normal || res.Selection != nil {
		t.Errorf("after d: mode %v selection %v", res.Mode, res.Selection)
	}
	if res.Transaction == nil || res.Transaction.Len() != 3 {
		t.Fatalf("transaction = %v, want 3 diffs", res.Transaction)
	}
	if tbl.RowCount() != 2 || tbl.CellValue(1, 0) != "r4c0" {
		t.Fatalf("rows after delete = %v", tbl.Rows())
	}

	feed(e, "u")
	if got := tbl.Rows(); !reflect.DeepEqual(got, before) {
		t.Errorf("after one undo = %v, want %v", got, before)
	}
	if e.History().CanUndo() || e.History().RedoLen() != 1 {
		t.Errorf("stacks = %d/%d", e.History().UndoLen(), e.History().RedoLen())
	}
}

func TestSelectionRowsCollapse(t *testing.T) {
	e := New(newTable(5, 3))
	res := feed(e, "vjlx")
	if !res.Selection.WholeRow || res.Selection.Active != res.Selection.Anchor {
		t.Errorf("selection = %+v", res.Selection)
	}
	if res.Cursor != (cursor.Position{}) {
		t.Errorf("cursor = %v, want anchor", res.Cursor)
	}
}

func TestSelectionClearCells(t *testing.T) {
	tbl := newTable(3, 3)
	e := New(tbl)
	res := feed(e, "vjld")
	if res.Transaction == nil || res.Transaction.Len() != 4 {
		t.Fatalf("transaction = %v", res.Transaction)
	}
	for _, p := range []cursor.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}} {
		if v := tbl.CellValue(p.Row, p.Col); v != "" {
			t.Errorf("cell %v = %q, want empty", p, v)
		}
	}
	if tbl.CellValue(2, 2) != "r2c2" {
		t.Error("cell outside selection changed")
	}
}

func TestSelectEscapeDiscards(t *testing.T) {
	src := &countingSource{Table: newTable(3, 3)}
	e := New(src)
	res := feed(e, "vjj<Esc>")
	if res.Mode != mode.Normal || res.Selection != nil || src.applied != 0 {
		t.Errorf("mode %v selection %v applied %d", res.Mode, res.Selection, src.applied)
	}
	if res.Cursor.Row != 2 {
		t.Errorf("cursor = %v", res.Cursor)
	}
}

func TestSelectionChange(t *testing.T) {
	tbl := newTable(3, 3)
	e := New(tbl)
	res := feed(e, "vjlc")
	if res.Mode != mode.Insert || res.Selection != nil {
		t.Fatalf("mode %v selection %v", res.Mode, res.Selection)
	}
	if res.Transaction == nil || res.Transaction.Len() != 4 {
		t.Fatalf("transaction = %v", res.Transaction)
	}
	if tbl.CellValue(0, 0) != "" || tbl.CellValue(2, 2) != "r2c2" {
		t.Errorf("rows = %v", tbl.Rows())
	}

	feed(e, "zz<CR>")
	if tbl.CellValue(1, 1) != "zz" {
		t.Errorf("edited cell = %q", tbl.CellValue(1, 1))
	}
	feed(e, "uu")
	if tbl.CellValue(0, 0) != "r0c0" || tbl.CellValue(1, 1) != "r1c1" {
		t.Errorf("after undo rows = %v", tbl.Rows())
	}
}

func TestCountBackspaceKeepsSelection(t *testing.T) {
	e := New(newTable(6, 3))
	feed(e, "vj3")
	res := feed(e, "<BS>")
	if res.Mode != mode.Select || res.Selection == nil {
		t.Fatalf("mode %v selection %v", res.Mode, res.Selection)
	}
	if r := res.Selection.Range(3); r.Bottom != 1 {
		t.Errorf("selection = %+v", r)
	}
	if res.Pending != "" {
		t.Errorf("pending = %q", res.Pending)
	}
	res = feed(e, "j")
	if res.Mode != mode.Select || res.Cursor.Row != 2 {
		t.Errorf("mode %v cursor %v", res.Mode, res.Cursor)
	}
}

func TestCopyPasteCells(t *testing.T) {
	tbl := newTable(3, 3)
	clip := &memClipboard{}
	e := New(tbl, WithClipboard(clip))

	res := feed(e, "vly")
	if res.Mode != mode.Normal {
		t.Fatalf("mode after y = %v", res.Mode)
	}
	if clip.text != "r0c0\tr0c1" {
		t.Errorf("clipboard = %q", clip.text)
	}
	if e.Register().Kind != selection.KindCells {
		t.Errorf("register kind = %v", e.Register().Kind)
	}

	// y leaves the cursor on the active end of the selection.
	if e.Cursor() != (cursor.Position{Row: 0, Col: 1}) {
		t.Errorf("cursor after y = %v", e.Cursor())
	}
	feed(e, "hjp")
	if tbl.CellValue(1, 0) != "r0c0" || tbl.CellValue(1, 1) != "r0c1" || tbl.CellValue(1, 2) != "r1c2" {
		t.Errorf("row 1 after paste = %v", tbl.Row(1))
	}
	feed(e, "u")
	if tbl.CellValue(1, 0) != "r1c0" {
		t.Errorf("undo paste left %v", tbl.Row(1))
	}
}

func TestCopyPasteRows(t *testing.T) {
	tbl := newTable(3, 2)
	e := New(tbl)
	feed(e, "yyGp")
	if tbl.RowCount() != 4 || !reflect.DeepEqual(tbl.Row(3), []string{"r0c0", "r0c1"}) {
		t.Errorf("rows = %v", tbl.Rows())
	}
	if e.Cursor().Row != 3 {
		t.Errorf("cursor = %v, want pasted row", e.Cursor())
	}

	feed(e, "gg2yy")
	if e.Register().Height() != 2 {
		t.Errorf("2yy copied %d rows", e.Register().Height())
	}
}

func TestPasteEmptyRegister(t *testing.T) {
	e := New(newTable(2, 2))
	res := feed(e, "p")
	if res.Notification == nil || !errors.Is(res.Notification.Err, ErrNothingToPaste) {
		t.Errorf("notification = %+v", res.Notification)
	}
}

func TestRowOps(t *testing.T) {
	tbl := newTable(3, 2)
	e := New(tbl)

	res := feed(e, "o")
	if tbl.RowCount() != 4 || res.Cursor.Row != 1 || !reflect.DeepEqual(tbl.Row(1), []string{"", ""}) {
		t.Fatalf("o: rows %v cursor %v", tbl.Rows(), res.Cursor)
	}
	res = feed(e, "2O")
	if tbl.RowCount() != 6 || res.Cursor.Row != 1 {
		t.Fatalf("2O: rows %d cursor %v", tbl.RowCount(), res.Cursor)
	}
	feed(e, "gg2dd")
	if tbl.RowCount() != 4 || tbl.CellValue(0, 0) != "" {
		t.Fatalf("2dd: rows %v", tbl.Rows())
	}
	feed(e, "G")
	feed(e, "5dd")
	if tbl.RowCount() != 3 || e.Cursor().Row != 2 {
		t.Errorf("5dd at last row: rows %d cursor %v", tbl.RowCount(), e.Cursor())
	}
}

func TestInsertIntoEmptyGrid(t *testing.T) {
	tbl := source.NewTable([]string{"a", "b"}, nil)
	e := New(tbl)

	if res := feed(e, "i"); res.Mode != mode.Normal || res.Notification == nil {
		t.Errorf("i on empty grid: mode %v notification %v", res.Mode, res.Notification)
	}
	res := feed(e, "o")
	if tbl.RowCount() != 1 || res.Cursor != (cursor.Position{}) {
		t.Errorf("o on empty grid: rows %d cursor %v", tbl.RowCount(), res.Cursor)
	}
	feed(e, "dd")
	if tbl.RowCount() != 0 || e.Cursor() != (cursor.Position{}) {
		t.Errorf("cursor not pinned at origin: %v", e.Cursor())
	}
}

func TestClearCell(t *testing.T) {
	tbl := newTable(2, 2)
	e := New(tbl)
	feed(e, "lD")
	if tbl.CellValue(0, 1) != "" {
		t.Errorf("cell = %q", tbl.CellValue(0, 1))
	}
	if res := feed(e, "D"); res.Transaction != nil {
		t.Error("clearing an empty cell committed a transaction")
	}
}

func TestToggleMark(t *testing.T) {
	tbl := newTable(4, 2)
	e := New(tbl)
	feed(e, "2<Space>d")
	if !reflect.DeepEqual(tbl.MarkedRows(), []int{0, 1}) {
		t.Fatalf("marked = %v", tbl.MarkedRows())
	}
	feed(e, "<Space>d")
	if !reflect.DeepEqual(tbl.MarkedRows(), []int{1}) {
		t.Errorf("after toggle = %v", tbl.MarkedRows())
	}
	feed(e, "uu")
	if len(tbl.MarkedRows()) != 0 {
		t.Errorf("after undo = %v", tbl.MarkedRows())
	}
}

func TestTransform(t *testing.T) {
	upper := TransformFunc(func(name, value string, _ cursor.Position) (string, error) {
		switch name {
		case "upper":
			return strings.ToUpper(value), nil
		case "lower":
			return strings.ToLower(value), nil
		}
		return "", fmt.Errorf("unknown function %q", name)
	})

	t.Run("cell", func(t *testing.T) {
		tbl := newTable(2, 2)
		e := New(tbl, WithTransformer(upper))
		feed(e, "gU")
		if tbl.CellValue(0, 0) != "R0C0" {
			t.Errorf("cell = %q", tbl.CellValue(0, 0))
		}
	})

	t.Run("selection is one transaction", func(t *testing.T) {
		tbl := newTable(3, 2)
		e := New(tbl, WithTransformer(upper))
		res := feed(e, "vjU")
		if res.Mode != mode.Normal || res.Transaction == nil || res.Transaction.Len() != 2 {
			t.Fatalf("mode %v tx %v", res.Mode, res.Transaction)
		}
		if tbl.CellValue(1, 0) != "R1C0" || tbl.CellValue(1, 1) != "r1c1" {
			t.Errorf("rows = %v", tbl.Rows())
		}
	})

	t.Run("error aborts", func(t *testing.T) {
		src := &countingSource{Table: newTable(2, 2)}
		e := New(src, WithTransformer(upper))
		res := feed(e, "gt")
		if res.Notification == nil || res.Notification.Level != LevelError || src.applied != 0 {
			t.Errorf("notification %+v applied %d", res.Notification, src.applied)
		}
	})

	t.Run("no transformer", func(t *testing.T) {
		e := New(newTable(2, 2))
		res := feed(e, "gU")
		if res.Notification == nil || !errors.Is(res.Notification.Err, ErrNoTransformer) {
			t.Errorf("notification = %+v", res.Notification)
		}
	})
}

func TestApplyEditFailure(t *testing.T) {
	refuse := errors.New("value not allowed")
	tbl := newTable(2, 2, source.WithValidator(func(d history.Diff) error {
		if c, ok := d.(history.CellDiff); ok && c.New == "bad" {
			return refuse
		}
		return nil
	}))
	e := New(tbl)

	res := feed(e, "cbad<CR>")
	if res.Mode != mode.Normal {
		t.Errorf("mode = %v", res.Mode)
	}
	if res.Notification == nil || res.Notification.Level != LevelError {
		t.Fatalf("notification = %+v", res.Notification)
	}
	var cerr *CommitError
	if !errors.As(res.Notification.Err, &cerr) || !errors.Is(cerr, refuse) {
		t.Errorf("error = %v", res.Notification.Err)
	}
	if tbl.CellValue(0, 0) != "r0c0" || e.History().CanUndo() {
		t.Errorf("failed edit left cell %q undo %d", tbl.CellValue(0, 0), e.History().UndoLen())
	}
}

func TestRedoClearedOnDivergence(t *testing.T) {
	tbl := newTable(2, 2)
	e := New(tbl)
	feed(e, "ca<CR>u")
	if !e.History().CanRedo() {
		t.Fatal("nothing to redo after undo")
	}
	feed(e, "cb<CR>")
	if e.History().CanRedo() {
		t.Error("redo survived a new edit")
	}
	if res := feed(e, "U"); res.Transaction != nil {
		t.Error("U on empty redo stack applied something")
	}
}

func TestUndoOnEmptyStackIsNoop(t *testing.T) {
	e := New(newTable(2, 2))
	res := feed(e, "5u")
	if res.Transaction != nil || res.Notification != nil {
		t.Errorf("result = %+v", res)
	}
}

func TestFocusCrossing(t *testing.T) {
	e := New(newTable(5, 3))
	feed(e, "2j")

	res := feed(e, "h")
	if !res.FocusChanged || res.Focus != focus.Sidebar || res.Move != (focus.Move{From: focus.Grid, To: focus.Sidebar}) {
		t.Fatalf("h at left edge: %+v", res)
	}
	if res.Cursor != (cursor.Position{Row: 2}) {
		t.Errorf("grid cursor moved: %v", res.Cursor)
	}

	res = feed(e, "l")
	if !res.FocusChanged || res.Focus != focus.Grid || res.Cursor != (cursor.Position{Row: 2, Col: 0}) {
		t.Errorf("l from sidebar: %+v", res)
	}

	res = feed(e, "l")
	if res.FocusChanged || res.Cursor.Col != 1 {
		t.Errorf("l inside grid: %+v", res)
	}

	res = feed(e, "ggk")
	if res.Focus != focus.TabStrip {
		t.Errorf("k at top: focus %v", res.Focus)
	}
	res = feed(e, "j")
	if res.Focus != focus.Grid || res.Cursor.Row != 0 {
		t.Errorf("j from tab strip: focus %v cursor %v", res.Focus, res.Cursor)
	}
}

func TestFocusNoNeighborIsNoop(t *testing.T) {
	e := New(newTable(3, 3))
	res := feed(e, "$l")
	if res.FocusChanged || res.Focus != focus.Grid || res.Cursor.Col != 2 {
		t.Errorf("l at right edge: %+v", res)
	}
}

func TestFocusDeterministic(t *testing.T) {
	run := func() []focus.Target {
		e := New(newTable(3, 3))
		var trail []focus.Target
		for _, ev := range key.MustParseSequence("hlkjjjhlk") {
			trail = append(trail, e.HandleKey(ev).Focus)
		}
		return trail
	}
	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("trails differ: %v vs %v", a, b)
	}
}

func TestPendingCountBlocksCrossing(t *testing.T) {
	e := New(newTable(3, 3))
	res := feed(e, "2h")
	if res.FocusChanged || res.Focus != focus.Grid {
		t.Errorf("counted h crossed focus: %+v", res)
	}
}

func TestEscapeReturnsToGrid(t *testing.T) {
	e := New(newTable(3, 3))
	feed(e, "h")
	res := feed(e, "<Esc>")
	if !res.FocusChanged || res.Focus != focus.Grid {
		t.Errorf("Esc in sidebar: %+v", res)
	}
}

func TestGlobalShortcuts(t *testing.T) {
	e := New(newTable(3, 3))

	res := feed(e, "l<C-s>")
	if len(res.Effects) != 1 || res.Effects[0].Action != command.AppSave {
		t.Fatalf("effects = %+v", res.Effects)
	}

	res = feed(e, "i<C-b>")
	if res.Mode != mode.Normal || res.Focus != focus.Sidebar || !res.FocusChanged {
		t.Errorf("Ctrl+B in insert: mode %v focus %v", res.Mode, res.Focus)
	}
	if _, _, ok := e.InsertText(); ok {
		t.Error("insert buffer survived focus change")
	}

	res = feed(e, "<C-b>")
	if res.Focus != focus.Grid {
		t.Errorf("second Ctrl+B: focus %v", res.Focus)
	}

	res = feed(e, "<C-j>")
	if res.Focus != focus.TextEditor {
		t.Errorf("Ctrl+J: focus %v", res.Focus)
	}
	res = feed(e, "<C-s>")
	if len(res.Effects) != 1 || res.Focus != focus.TextEditor {
		t.Errorf("global from editor: %+v", res)
	}
}

func TestFilterEffects(t *testing.T) {
	e := New(newTable(3, 3))
	res := feed(e, "jlf")
	want := Effect{Action: command.FilterAdd, Cell: cursor.Position{Row: 1, Col: 1}}
	if len(res.Effects) != 1 || res.Effects[0] != want {
		t.Errorf("effects = %+v, want %+v", res.Effects, want)
	}
	if res = feed(e, "/"); res.Effects[0].Action != command.FilterQuick {
		t.Errorf("effects = %+v", res.Effects)
	}
}

func TestRollback(t *testing.T) {
	tbl := newTable(3, 1)
	e := New(tbl)

	feed(e, "cA<CR>")
	second := feed(e, "jcB<CR>").Transaction
	feed(e, "jcC<CR>")
	feed(e, "vk")

	res := e.Rollback(context.Background(), second.ID, "constraint failed")
	if res.Mode != mode.Normal || res.Selection != nil {
		t.Errorf("mode %v selection %v", res.Mode, res.Selection)
	}
	want := []string{"A", "r1c0", "r2c0"}
	for r, w := range want {
		if got := tbl.CellValue(r, 0); got != w {
			t.Errorf("row %d = %q, want %q", r, got, w)
		}
	}
	if e.History().UndoLen() != 1 || e.History().CanRedo() {
		t.Errorf("stacks = %d/%d", e.History().UndoLen(), e.History().RedoLen())
	}
	if res.Notification == nil || res.Notification.Level != LevelWarn {
		t.Errorf("notification = %+v", res.Notification)
	}
}

func TestRollbackUnknownClearsHistory(t *testing.T) {
	e := New(newTable(2, 1))
	feed(e, "cA<CR>")
	res := e.Rollback(context.Background(), history.NewTransaction("x").ID, "gone")
	var rerr *RollbackError
	if res.Notification == nil || !errors.As(res.Notification.Err, &rerr) {
		t.Fatalf("notification = %+v", res.Notification)
	}
	if e.History().CanUndo() {
		t.Error("history kept after failed rollback")
	}
}

func TestSetKeymapsResetsPending(t *testing.T) {
	e := New(newTable(3, 3))
	feed(e, "5g")
	e.SetKeymaps(e.Keymaps())
	if e.Pending() != "" {
		t.Errorf("Pending = %q", e.Pending())
	}
}
