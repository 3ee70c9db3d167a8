package engine

import (
	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/key"
	"github.com/dshills/keygrid/internal/input/mode"
	"github.com/dshills/keygrid/internal/input/sequence"
)

// insertBuffer is the text being typed into one cell.
type insertBuffer struct {
	at       cursor.Position
	original string
	text     []rune
	caret    int

	// overwrite replaces the rune under the caret instead of inserting.
	overwrite bool
}

func (b *insertBuffer) String() string { return string(b.text) }

func (b *insertBuffer) put(r rune) {
	if b.overwrite && b.caret < len(b.text) {
		b.text[b.caret] = r
	} else {
		b.text = append(b.text[:b.caret], append([]rune{r}, b.text[b.caret:]...)...)
	}
	b.caret++
}

func (b *insertBuffer) backspace() {
	if b.caret == 0 {
		return
	}
	b.text = append(b.text[:b.caret-1], b.text[b.caret:]...)
	b.caret--
}

func (b *insertBuffer) del() {
	if b.caret >= len(b.text) {
		return
	}
	b.text = append(b.text[:b.caret], b.text[b.caret+1:]...)
}

func (b *insertBuffer) move(delta int) {
	b.caret = max(0, min(len(b.text), b.caret+delta))
}

func (e *Engine) enterInsert(a command.Action) {
	if e.cursor.Empty() {
		e.notify(LevelInfo, "", ErrEmptyGrid)
		return
	}
	p := e.cursor.Position()
	value := e.src.CellValue(p.Row, p.Col)
	buf := &insertBuffer{at: p, original: value, text: []rune(value)}
	switch a {
	case command.ModeInsertAfter:
		buf.caret = len(buf.text)
	case command.ModeChange:
		buf.text = nil
	case command.ModeReplace:
		buf.overwrite = true
	}
	if !e.setMode(mode.Insert, string(a)) {
		return
	}
	e.insert = buf
}

func (e *Engine) handleInsertKey(ev key.Event) {
	r := e.parser.Feed(ev)
	switch r.Status {
	case sequence.StatusComplete:
		e.res.Command = &r.Command
		e.execute(r.Command)
	case sequence.StatusCancelled:
		e.cancelInsert()
	case sequence.StatusInvalid:
		for _, k := range r.Discarded {
			if k.IsPrintable() && e.insert != nil {
				e.insert.put(k.Rune)
			}
		}
	}
}

func (e *Engine) insertCommand(cmd command.Command) {
	if e.insert == nil {
		return
	}
	switch cmd.Action {
	case command.InsertConfirm:
		e.confirmInsert(false)
	case command.InsertConfirmRight:
		e.confirmInsert(true)
	case command.InsertCancel:
		e.cancelInsert()
	case command.InsertBackspace:
		e.insert.backspace()
	case command.InsertDelete:
		e.insert.del()
	case command.InsertLeft:
		e.insert.move(-1)
	case command.InsertRight:
		e.insert.move(1)
	case command.InsertHome:
		e.insert.caret = 0
	case command.InsertEnd:
		e.insert.caret = len(e.insert.text)
	}
}

// confirmInsert commits the buffer when it differs from the snapshot taken
// on entry, then returns to Normal.
func (e *Engine) confirmInsert(stepRight bool) {
	buf := e.insert
	e.insert = nil
	e.setMode(mode.Normal, "confirm")

	value := buf.String()
	if value != buf.original {
		tx := history.NewTransaction("edit cell", history.CellDiff{
			Row:      buf.at.Row,
			Col:      buf.at.Col,
			Previous: buf.original,
			New:      value,
		})
		if !e.commit(tx) {
			return
		}
	}
	if stepRight {
		e.cursor.Right(1)
		e.res.Scroll = e.viewport.Follow(e.cursor.Position())
	}
}

// cancelInsert discards the buffer without touching the source.
func (e *Engine) cancelInsert() {
	e.insert = nil
	e.setMode(mode.Normal, "cancel")
}
