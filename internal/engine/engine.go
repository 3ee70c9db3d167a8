package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/grid/selection"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/key"
	"github.com/dshills/keygrid/internal/input/keymap"
	"github.com/dshills/keygrid/internal/input/mode"
	"github.com/dshills/keygrid/internal/input/sequence"
	"github.com/dshills/keygrid/internal/logging"
)

// Engine is the keyboard state of one grid.
type Engine struct {
	src source.Source

	keys      *keymap.Set
	modes     *mode.Manager
	parser    *sequence.Parser
	router    *focus.Router
	adjacency focus.Adjacency

	cursor   *cursor.Cursor
	viewport *cursor.Viewport
	sel      *selection.Selection
	insert   *insertBuffer
	register selection.Snapshot
	history  *history.History

	transformer Transformer
	clipboard   Clipboard
	logger      *logging.Logger

	maxUndo  int
	maxCount int

	// res collects the outcome of the key being handled.
	res Result
}

// New creates an engine editing src.
func New(src source.Source, opts ...Option) *Engine {
	e := &Engine{src: src, modes: mode.NewManager()}
	defaults(e)
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("engine")
	e.history = history.New(e.maxUndo)
	e.parser = sequence.NewParser(e.keys.For(mode.Normal), sequence.WithMaxCount(e.maxCount))
	e.router = focus.NewRouter(e.adjacency)
	e.router.SetRegion(focus.Grid, gridRegion{e})
	e.cursor = cursor.New(src.RowCount(), src.ColumnCount())
	e.viewport.Clamp(src.RowCount(), src.ColumnCount())
	return e
}

// Source returns the grid data source.
func (e *Engine) Source() source.Source { return e.src }

// Mode returns the active mode.
func (e *Engine) Mode() mode.Mode { return e.modes.Current() }

// Cursor returns the grid cursor position.
func (e *Engine) Cursor() cursor.Position { return e.cursor.Position() }

// Viewport returns the visible window.
func (e *Engine) Viewport() *cursor.Viewport { return e.viewport }

// Selection returns a copy of the active selection, or nil.
func (e *Engine) Selection() *selection.Selection {
	if e.sel == nil {
		return nil
	}
	s := *e.sel
	return &s
}

// Focus returns the focused region.
func (e *Engine) Focus() focus.Target { return e.router.Active() }

// Router returns the focus router so hosts can install region models.
func (e *Engine) Router() *focus.Router { return e.router }

// History returns the undo history.
func (e *Engine) History() *history.History { return e.history }

// Keymaps returns the active binding tables.
func (e *Engine) Keymaps() *keymap.Set { return e.keys }

// Register returns the last copied snapshot.
func (e *Engine) Register() selection.Snapshot { return e.register }

// Pending returns the buffered input for status display.
func (e *Engine) Pending() string { return e.parser.Pending() }

// InsertText returns the edit buffer and caret while in Insert mode.
func (e *Engine) InsertText() (text string, caret int, ok bool) {
	if e.insert == nil {
		return "", 0, false
	}
	return e.insert.String(), e.insert.caret, true
}

// SetKeymaps swaps the binding tables, discarding any pending input.
func (e *Engine) SetKeymaps(s *keymap.Set) {
	if s == nil {
		return
	}
	e.keys = s
	e.parser.SetTable(s.For(e.modes.Current()))
	e.logger.Info("keymaps replaced")
}

// SetSource switches to a new data source. History, selection and any
// edit in progress are discarded.
func (e *Engine) SetSource(src source.Source) {
	e.src = src
	e.history.Clear()
	e.leave("source replaced")
	e.cursor = cursor.New(src.RowCount(), src.ColumnCount())
	e.viewport.Clamp(src.RowCount(), src.ColumnCount())
}

// Resize changes the viewport size.
func (e *Engine) Resize(height, width int) cursor.Scroll {
	e.viewport.Resize(height, width)
	e.viewport.Clamp(e.src.RowCount(), e.src.ColumnCount())
	return e.viewport.Follow(e.cursor.Position())
}

// HandleKey resolves one key event.
func (e *Engine) HandleKey(ev key.Event) Result {
	e.res = Result{}
	ev = ev.Normalize()

	switch {
	case e.handleGlobal(ev):
	case e.router.Active() != focus.Grid:
		e.handleRegion(ev)
	default:
		e.handleGrid(ev)
	}
	return e.finish()
}

func (e *Engine) finish() Result {
	res := e.res
	e.res = Result{}
	res.Mode = e.modes.Current()
	res.Cursor = e.cursor.Position()
	res.Selection = e.Selection()
	res.Focus = e.router.Active()
	res.Pending = e.parser.Pending()
	return res
}

func (e *Engine) handleGlobal(ev key.Event) bool {
	b, ok := e.keys.GlobalFor(ev)
	if !ok {
		return false
	}
	cmd := b.Command(0, key.Sequence{ev})
	e.res.Command = &cmd
	e.logger.Debug("global", "command", cmd.String())

	switch cmd.Action.Kind() {
	case command.KindFocus:
		e.leave("focus change")
		e.focusToggle(cmd.Action)
	case command.KindEffect:
		e.emit(cmd)
	default:
		if e.router.Active() == focus.Grid {
			e.parser.Reset()
			e.execute(cmd)
		}
	}
	return true
}

// focusToggle focuses the target of a, or returns to the grid when it
// already has focus.
func (e *Engine) focusToggle(a command.Action) {
	target := focus.Grid
	switch a {
	case command.FocusSidebar:
		target = focus.Sidebar
	case command.FocusEditor:
		target = focus.TextEditor
	}
	if target == e.router.Active() {
		target = focus.Grid
	}
	if m, ok := e.router.Focus(target); ok {
		e.res.FocusChanged = true
		e.res.Move = m
	}
}

func (e *Engine) handleRegion(ev key.Event) {
	out := e.router.HandleKey(ev)
	e.res.FocusChanged = out.Changed
	e.res.Move = out.Move
	e.res.Activated = out.Activated
	e.res.Forwarded = out.Forward
	if out.Changed && out.Move.To == focus.Grid {
		e.res.Scroll = e.viewport.Follow(e.cursor.Position())
	}
}

func (e *Engine) handleGrid(ev key.Event) {
	if e.modes.Is(mode.Insert) {
		e.handleInsertKey(ev)
		return
	}

	if e.modes.Is(mode.Normal) && e.parser.Idle() {
		if d, ok := focus.NavDirection(ev); ok {
			if m, res := e.router.Cross(d); res == focus.Crossed {
				e.res.FocusChanged = true
				e.res.Move = m
				return
			}
		}
	}

	r := e.parser.Feed(ev)
	switch r.Status {
	case sequence.StatusComplete:
		e.res.Command = &r.Command
		e.execute(r.Command)
	case sequence.StatusCancelled:
		if e.modes.Is(mode.Select) {
			e.exitSelect("cancel")
		}
	case sequence.StatusInvalid:
		e.logger.Debug("discarded", "keys", r.Discarded.String())
	}
}

func (e *Engine) execute(cmd command.Command) {
	e.logger.Debug("command", "command", cmd.String(), "mode", e.modes.Current().String())

	switch cmd.Action.Kind() {
	case command.KindMotion:
		e.motion(cmd)
	case command.KindMode:
		e.modeCommand(cmd)
	case command.KindEdit:
		e.editCommand(cmd)
	case command.KindCopy:
		e.copyCommand(cmd)
	case command.KindHistory:
		e.historyCommand(cmd)
	case command.KindSelect:
		e.selectCommand(cmd)
	case command.KindInsert:
		e.insertCommand(cmd)
	case command.KindFocus:
		e.leave("focus change")
		e.focusToggle(cmd.Action)
	case command.KindEffect:
		e.emit(cmd)
	}
}

func (e *Engine) emit(cmd command.Command) {
	e.res.Effects = append(e.res.Effects, Effect{
		Action: cmd.Action,
		Count:  cmd.Count,
		Arg:    cmd.Arg,
		Cell:   e.cursor.Position(),
	})
}

func (e *Engine) motion(cmd command.Command) {
	n := cmd.Repeat()
	switch cmd.Action {
	case command.CursorLeft:
		e.cursor.Left(n)
	case command.CursorRight:
		e.cursor.Right(n)
	case command.CursorUp:
		e.cursor.Up(n)
	case command.CursorDown:
		e.cursor.Down(n)
	case command.CursorWordNext:
		e.cursor.WordNext(e.src, n)
	case command.CursorWordPrev:
		e.cursor.WordPrev(e.src, n)
	case command.CursorFirstRow:
		if cmd.HasCount() {
			e.cursor.GotoRow(cmd.Count)
		} else {
			e.cursor.FirstRow()
		}
	case command.CursorLastRow:
		if cmd.HasCount() {
			e.cursor.GotoRow(cmd.Count)
		} else {
			e.cursor.LastRow()
		}
	case command.CursorFirstCol:
		e.cursor.FirstCol()
	case command.CursorLastCol:
		e.cursor.LastCol()
	case command.CursorHalfPageUp:
		e.cursor.Up(e.viewport.HalfPage() * n)
	case command.CursorHalfPageDown:
		e.cursor.Down(e.viewport.HalfPage() * n)
	case command.CursorPageUp:
		e.cursor.Up(e.viewport.Page() * n)
	case command.CursorPageDown:
		e.cursor.Down(e.viewport.Page() * n)
	}
	if e.sel != nil {
		s := e.sel.Extend(e.cursor.Position())
		if s.WholeRow {
			s.Active.Col = s.Anchor.Col
		}
		e.sel = &s
	}
	e.res.Scroll = e.viewport.Follow(e.cursor.Position())
}

func (e *Engine) modeCommand(cmd command.Command) {
	switch cmd.Action {
	case command.ModeInsertBefore, command.ModeInsertAfter, command.ModeChange, command.ModeReplace:
		e.enterInsert(cmd.Action)
	case command.ModeSelect, command.ModeSelectRow:
		e.enterSelect(cmd.Action == command.ModeSelectRow)
	case command.ModeNormal:
		if e.modes.Is(mode.Select) {
			e.exitSelect("cancel")
		}
	}
}

func (e *Engine) setMode(m mode.Mode, reason string) bool {
	t, err := e.modes.Enter(m, reason)
	if err != nil {
		e.logger.Warn("mode transition refused", "error", err)
		return false
	}
	e.parser.SetTable(e.keys.For(m))
	e.logger.Debug("mode", "transition", t.String())
	return true
}

// leave discards any selection or edit in progress and returns to Normal.
func (e *Engine) leave(reason string) {
	e.sel = nil
	e.insert = nil
	if !e.modes.Is(mode.Normal) {
		e.modes.Reset(reason)
	}
	e.parser.SetTable(e.keys.For(mode.Normal))
}

func (e *Engine) enterSelect(wholeRow bool) {
	if e.cursor.Empty() {
		e.notify(LevelInfo, "", ErrEmptyGrid)
		return
	}
	if !e.setMode(mode.Select, "select") {
		return
	}
	s := selection.New(e.cursor.Position())
	if wholeRow {
		s = selection.NewRows(e.cursor.Position())
	}
	e.sel = &s
}

func (e *Engine) exitSelect(reason string) {
	e.sel = nil
	e.setMode(mode.Normal, reason)
}

func (e *Engine) notify(level Level, msg string, err error) {
	if msg == "" && err != nil {
		msg = err.Error()
	}
	e.res.Notification = &Notification{Level: level, Message: msg, Err: err}
}

// commit applies tx and records it. On failure nothing is recorded, the
// engine returns to Normal and a notification is raised.
func (e *Engine) commit(tx *history.Transaction) bool {
	if tx.Empty() {
		return false
	}
	if err := e.history.Commit(e.src, tx); err != nil {
		cerr := &CommitError{ID: tx.ID, Description: tx.Description, Err: err}
		e.logger.Warn("commit failed", "tx", tx.ID, "description", tx.Description, "error", err)
		e.leave("commit failed")
		e.notify(LevelError, "", cerr)
		return false
	}
	e.logger.Debug("committed", "tx", tx.ID, "description", tx.Description, "diffs", tx.Len())
	e.res.Transaction = tx
	e.resync()
	return true
}

// resync clamps cursor, viewport and selection to the source size.
func (e *Engine) resync() {
	rows, cols := e.src.RowCount(), e.src.ColumnCount()
	e.cursor.SetBounds(rows, cols)
	e.viewport.Clamp(rows, cols)
	if e.sel != nil {
		s := e.sel.Clamp(rows, cols)
		e.sel = &s
	}
	e.res.Scroll = e.viewport.Follow(e.cursor.Position())
}

// Rollback reverts the transaction with the given ID and every
// transaction applied after it, after the source reported that it could
// not persist it. Sources implementing source.Resumer are resumed
// afterwards.
func (e *Engine) Rollback(ctx context.Context, id uuid.UUID, reason string) Result {
	e.res = Result{}
	e.leave("rollback")

	revert := func(applied *history.Transaction) error {
		if r, ok := e.src.(source.Reverter); ok {
			return r.RevertEdit(applied)
		}
		return e.src.ApplyEdit(applied.Inverse())
	}
	reverted, err := e.history.Rewind(id, revert)
	if err != nil {
		e.history.Clear()
		rerr := &RollbackError{ID: id, Reason: reason, Err: err}
		e.logger.Error("rollback incomplete", "tx", id, "reason", reason, "error", err)
		e.notify(LevelError, "", rerr)
	} else {
		e.logger.Warn("rolled back", "tx", id, "reason", reason, "reverted", len(reverted))
		e.notify(LevelWarn, "rolled back: "+reason, nil)
	}

	if r, ok := e.src.(source.Resumer); ok {
		if rerr := r.Resume(ctx); rerr != nil {
			e.logger.Error("resume failed", "error", rerr)
			e.notify(LevelError, "", errors.Join(err, rerr))
		}
	}
	e.resync()
	return e.finish()
}

// gridRegion lets the focus router query and place the grid cursor.
type gridRegion struct{ e *Engine }

func (g gridRegion) AtEdge(d focus.Direction) bool {
	c := g.e.cursor
	switch d {
	case focus.Up:
		return c.AtTop()
	case focus.Down:
		return c.AtBottom()
	case focus.Left:
		return c.AtLeft()
	default:
		return c.AtRight()
	}
}

func (g gridRegion) Move(d focus.Direction) {
	switch d {
	case focus.Up:
		g.e.cursor.Up(1)
	case focus.Down:
		g.e.cursor.Down(1)
	case focus.Left:
		g.e.cursor.Left(1)
	default:
		g.e.cursor.Right(1)
	}
}

// Enter places the cursor on the edge facing the region focus came from.
func (g gridRegion) Enter(d focus.Direction) {
	c := g.e.cursor
	switch d {
	case focus.Down:
		c.FirstRow()
	case focus.Up:
		c.LastRow()
	case focus.Right:
		c.FirstCol()
	case focus.Left:
		c.LastCol()
	}
}
