package engine

import (
	"errors"
	"fmt"

	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/grid/selection"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/mode"
)

func (e *Engine) editCommand(cmd command.Command) {
	n := cmd.Repeat()
	switch cmd.Action {
	case command.RowInsertBelow:
		e.insertRows(true, n)
	case command.RowInsertAbove:
		e.insertRows(false, n)
	case command.RowDelete:
		e.deleteRows(e.cursor.Row(), n)
	case command.RowToggleMark:
		e.toggleMarks(n)
	case command.CellClear:
		e.clearCells([]cursor.Position{e.cursor.Position()}, "clear cell")
	case command.CellTransform:
		e.transformCells([]cursor.Position{e.cursor.Position()}, cmd.Arg)
	case command.EditPaste:
		e.paste(n)
	}
}

func (e *Engine) emptyRow() []string {
	return make([]string, e.src.ColumnCount())
}

func (e *Engine) rowValues(row int) []string {
	out := make([]string, e.src.ColumnCount())
	for c := range out {
		out[c] = e.src.CellValue(row, c)
	}
	return out
}

func (e *Engine) marked(row int) bool {
	if m, ok := e.src.(source.RowMarker); ok {
		return m.IsMarked(row)
	}
	return false
}

func plural(n int, what string) string {
	if n == 1 {
		return what
	}
	return fmt.Sprintf("%d %ss", n, what)
}

// insertRows adds n empty rows below or above the cursor row and moves
// the cursor to the first of them.
func (e *Engine) insertRows(below bool, n int) {
	if e.src.ColumnCount() == 0 {
		e.notify(LevelInfo, "", ErrEmptyGrid)
		return
	}
	at := e.cursor.Row()
	if below && e.src.RowCount() > 0 {
		at++
	}
	tx := history.NewTransaction("insert " + plural(n, "row"))
	for i := 0; i < n; i++ {
		tx.Add(history.RowDiff{Index: at + i, New: e.emptyRow()})
	}
	if e.commit(tx) {
		e.cursor.MoveTo(cursor.Position{Row: at, Col: e.cursor.Col()})
		e.res.Scroll = e.viewport.Follow(e.cursor.Position())
	}
}

// deleteRows removes n rows starting at from as one transaction.
func (e *Engine) deleteRows(from, n int) {
	if e.src.RowCount() == 0 {
		return
	}
	n = min(n, e.src.RowCount()-from)
	tx := history.NewTransaction("delete " + plural(n, "row"))
	for i := 0; i < n; i++ {
		tx.Add(history.RowDiff{
			Index:    from,
			Previous: e.rowValues(from + i),
			Marked:   e.marked(from + i),
		})
	}
	e.commit(tx)
}

func (e *Engine) toggleMarks(n int) {
	m, ok := e.src.(source.RowMarker)
	if !ok {
		e.notify(LevelWarn, "", ErrMarksUnsupported)
		return
	}
	if e.src.RowCount() == 0 {
		return
	}
	from := e.cursor.Row()
	n = min(n, e.src.RowCount()-from)
	tx := history.NewTransaction("toggle " + plural(n, "mark"))
	for i := 0; i < n; i++ {
		was := m.IsMarked(from + i)
		tx.Add(history.MarkDiff{Row: from + i, Previous: was, New: !was})
	}
	e.commit(tx)
}

func (e *Engine) clearCells(cells []cursor.Position, desc string) bool {
	tx := history.NewTransaction(desc)
	for _, p := range cells {
		if v := e.src.CellValue(p.Row, p.Col); v != "" {
			tx.Add(history.CellDiff{Row: p.Row, Col: p.Col, Previous: v})
		}
	}
	if tx.Empty() {
		return true
	}
	return e.commit(tx)
}

// transformCells rewrites each cell with the named transform as one
// transaction. Any transform error aborts without touching the source.
func (e *Engine) transformCells(cells []cursor.Position, name string) bool {
	if e.cursor.Empty() {
		e.notify(LevelInfo, "", ErrEmptyGrid)
		return false
	}
	if e.transformer == nil {
		e.notify(LevelWarn, "", ErrNoTransformer)
		return false
	}
	tx := history.NewTransaction(name)
	for _, p := range cells {
		old := e.src.CellValue(p.Row, p.Col)
		v, err := e.transformer.Transform(name, old, p)
		if err != nil {
			e.logger.Warn("transform failed", "function", name, "cell", p, "error", err)
			e.leave("transform failed")
			e.notify(LevelError, "", fmt.Errorf("transform %s at %s: %w", name, p, err))
			return false
		}
		if v != old {
			tx.Add(history.CellDiff{Row: p.Row, Col: p.Col, Previous: old, New: v})
		}
	}
	if tx.Empty() {
		return true
	}
	return e.commit(tx)
}

// paste writes the register at the cursor. Row snapshots are inserted
// below the cursor row n times; cell blocks overwrite from the cursor,
// clipped to the grid.
func (e *Engine) paste(n int) {
	snap := e.register
	if snap.Empty() {
		e.notify(LevelInfo, "", ErrNothingToPaste)
		return
	}
	if e.src.ColumnCount() == 0 {
		e.notify(LevelInfo, "", ErrEmptyGrid)
		return
	}

	if snap.Kind == selection.KindRows {
		at := e.cursor.Row()
		if e.src.RowCount() > 0 {
			at++
		}
		tx := history.NewTransaction("paste " + plural(snap.Height()*n, "row"))
		for i := 0; i < n; i++ {
			for r := 0; r < snap.Height(); r++ {
				row := e.emptyRow()
				copy(row, snap.Values[r])
				tx.Add(history.RowDiff{Index: at + i*snap.Height() + r, New: row})
			}
		}
		if e.commit(tx) {
			e.cursor.MoveTo(cursor.Position{Row: at, Col: e.cursor.Col()})
			e.res.Scroll = e.viewport.Follow(e.cursor.Position())
		}
		return
	}

	if e.cursor.Empty() {
		e.notify(LevelInfo, "", ErrEmptyGrid)
		return
	}
	origin := e.cursor.Position()
	tx := history.NewTransaction("paste " + plural(snap.Height()*snap.Width(), "cell"))
	for r, line := range snap.Values {
		for c, v := range line {
			p := cursor.Position{Row: origin.Row + r, Col: origin.Col + c}
			if p.Row >= e.src.RowCount() || p.Col >= e.src.ColumnCount() {
				continue
			}
			if old := e.src.CellValue(p.Row, p.Col); old != v {
				tx.Add(history.CellDiff{Row: p.Row, Col: p.Col, Previous: old, New: v})
			}
		}
	}
	e.commit(tx)
}

func (e *Engine) copyCommand(cmd command.Command) {
	if e.cursor.Empty() {
		return
	}
	switch cmd.Action {
	case command.CopyRow:
		e.yank(selection.RowSnapshot(e.src, e.cursor.Row(), cmd.Repeat()))
	case command.CopyCell:
		e.yank(selection.CellSnapshot(e.src, e.cursor.Position()))
	}
}

// yank stores snap in the register and mirrors it to the clipboard.
func (e *Engine) yank(snap selection.Snapshot) {
	e.register = snap
	msg := fmt.Sprintf("copied %s", plural(snap.Height(), "row"))
	if snap.Kind == selection.KindCells {
		msg = fmt.Sprintf("copied %s", plural(snap.Height()*snap.Width(), "cell"))
	}
	if e.clipboard != nil {
		if err := e.clipboard.WriteText(snap.TSV()); err != nil {
			e.logger.Warn("clipboard write failed", "error", err)
			e.notify(LevelWarn, msg+"; clipboard unavailable", err)
			return
		}
	}
	e.notify(LevelInfo, msg, nil)
}

func (e *Engine) historyCommand(cmd command.Command) {
	for i := 0; i < cmd.Repeat(); i++ {
		var (
			tx  *history.Transaction
			err error
		)
		if cmd.Action == command.EditUndo {
			tx, err = e.history.Undo(e.src)
		} else {
			tx, err = e.history.Redo(e.src)
		}
		if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
			break
		}
		if err != nil {
			e.logger.Warn("history apply failed", "action", string(cmd.Action), "error", err)
			e.notify(LevelError, "", err)
			break
		}
		e.res.Transaction = tx
		e.resync()
		e.revealDiff(tx)
	}
}

// revealDiff moves the cursor to the first location tx touched.
func (e *Engine) revealDiff(tx *history.Transaction) {
	if tx.Empty() {
		return
	}
	switch d := tx.Diffs[0].(type) {
	case history.CellDiff:
		e.cursor.MoveTo(cursor.Position{Row: d.Row, Col: d.Col})
	case history.RowDiff:
		e.cursor.MoveTo(cursor.Position{Row: d.Index, Col: e.cursor.Col()})
	case history.MarkDiff:
		e.cursor.MoveTo(cursor.Position{Row: d.Row, Col: e.cursor.Col()})
	}
	e.res.Scroll = e.viewport.Follow(e.cursor.Position())
}

func (e *Engine) selectCommand(cmd command.Command) {
	if e.sel == nil || !e.modes.Is(mode.Select) {
		return
	}
	sel := *e.sel
	cols := e.src.ColumnCount()
	rect := sel.Range(cols)

	switch cmd.Action {
	case command.SelectionWholeRow:
		s := sel.Rows()
		e.sel = &s
		e.cursor.MoveTo(s.Anchor)
		e.res.Scroll = e.viewport.Follow(e.cursor.Position())
		return
	case command.SelectionCopy:
		e.yank(selection.Capture(e.src, sel))
	case command.SelectionDelete:
		e.exitSelect("delete")
		if sel.WholeRow {
			e.deleteRows(rect.Top, rect.Rows())
		} else {
			e.clearCells(sel.Cells(cols), "clear "+plural(rect.Rows()*rect.Cols(), "cell"))
		}
		e.cursor.MoveTo(cursor.Position{Row: rect.Top, Col: rect.Left})
		e.res.Scroll = e.viewport.Follow(e.cursor.Position())
		return
	case command.SelectionChange:
		e.exitSelect("change")
		if e.clearCells(sel.Cells(cols), "clear "+plural(rect.Rows()*rect.Cols(), "cell")) {
			e.enterInsert(command.ModeChange)
		}
		return
	case command.SelectionTransform:
		e.exitSelect("transform")
		e.transformCells(sel.Cells(cols), cmd.Arg)
		return
	}
	e.exitSelect(string(cmd.Action))
}
