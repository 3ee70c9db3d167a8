package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keygrid/internal/engine"
	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/input/focus"
)

const (
	sidebarWidth = 18
	editorHeight = 3
	colWidth     = 14
	gutterWidth  = 6
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleFocused  = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	styleItem     = tcell.StyleDefault.Reverse(true)
	styleHeader   = tcell.StyleDefault.Bold(true).Underline(true)
	styleCursor   = tcell.StyleDefault.Reverse(true)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleMarked   = tcell.StyleDefault.Foreground(tcell.ColorRed).StrikeThrough(true)
	styleGutter   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Reverse(true)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Rect is a screen area.
type Rect struct {
	X, Y, W, H int
}

// Layout places the regions on a screen of the given size.
type Layout struct {
	Toolbar Rect
	Tabs    Rect
	Sidebar Rect
	Grid    Rect
	Editor  Rect
	Status  Rect
}

// NewLayout computes the region rectangles:
//
//	toolbar
//	sidebar | tabs
//	        | grid
//	        | editor
//	status
func NewLayout(w, h int) Layout {
	sb := min(sidebarWidth, w/4)
	body := max(h-2, 0)
	ed := min(editorHeight, body/3)
	var l Layout
	l.Toolbar = Rect{0, 0, w, 1}
	l.Status = Rect{0, h - 1, w, 1}
	l.Sidebar = Rect{0, 1, sb, body}
	l.Tabs = Rect{sb + 1, 1, w - sb - 1, 1}
	l.Editor = Rect{sb + 1, 1 + body - ed, w - sb - 1, ed}
	l.Grid = Rect{sb + 1, 2, w - sb - 1, max(body-ed-1, 0)}
	return l
}

// Viewport returns the data rows and columns the grid area shows, below the
// header line and right of the row-number gutter.
func (l Layout) Viewport() (rows, cols int) {
	return max(l.Grid.H-1, 1), max((l.Grid.W-gutterWidth)/colWidth, 1)
}

func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) int {
	n := 0
	for _, r := range text {
		if n >= width {
			break
		}
		s.SetContent(x+n, y, r, nil, style)
		n++
	}
	return n
}

func fill(s tcell.Screen, r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

func pad(text string, width int) string {
	r := []rune(text)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return text + strings.Repeat(" ", width-len(r))
}

// columnName labels column c: source names when known, otherwise A, B, ...
func columnName(src source.Source, c int) string {
	if cs, ok := src.(source.Columns); ok {
		if names := cs.ColumnNames(); c < len(names) {
			return names[c]
		}
	}
	name := ""
	for c++; c > 0; c = (c - 1) / 26 {
		name = string(rune('A'+(c-1)%26)) + name
	}
	return name
}

// View draws the engine state.
type View struct {
	Layout  Layout
	Toolbar *focus.ListRegion
	Tabs    *focus.ListRegion
	Sidebar *focus.ListRegion
	Editor  *focus.TextRegion
}

// Draw renders every region and the status line.
func (v *View) Draw(s tcell.Screen, e *engine.Engine, status string, level engine.Level) {
	s.Clear()
	s.HideCursor()
	active := e.Focus()
	v.drawList(s, v.Layout.Toolbar, v.Toolbar, active == focus.Toolbar, true)
	v.drawList(s, v.Layout.Tabs, v.Tabs, active == focus.TabStrip, true)
	v.drawList(s, v.Layout.Sidebar, v.Sidebar, active == focus.Sidebar, false)
	v.drawEditor(s, active == focus.TextEditor)
	v.drawGrid(s, e, active == focus.Grid)
	v.drawStatus(s, e, status, level)
	s.Show()
}

func (v *View) drawList(s tcell.Screen, r Rect, l *focus.ListRegion, focused, horizontal bool) {
	if l == nil || r.W <= 0 || r.H <= 0 {
		return
	}
	x, y := r.X, r.Y
	for i, item := range l.Items() {
		style := styleDefault
		if i == l.Index() {
			style = styleTitle
			if focused {
				style = styleItem
			}
		}
		if horizontal {
			if x >= r.X+r.W {
				break
			}
			x += drawText(s, x, y, r.X+r.W-x, style, " "+item+" ")
			continue
		}
		if y >= r.Y+r.H {
			break
		}
		drawText(s, x, y, r.W, style, pad(item, r.W))
		y++
	}
}

func (v *View) drawEditor(s tcell.Screen, focused bool) {
	r := v.Layout.Editor
	if v.Editor == nil || r.H <= 0 {
		return
	}
	title := styleTitle
	if focused {
		title = styleFocused
	}
	drawText(s, r.X, r.Y, r.W, title, pad("SQL", r.W))
	lines := strings.Split(v.Editor.Text(), "\n")
	row, col := v.Editor.Caret()
	for i := 0; i < r.H-1 && i < len(lines); i++ {
		drawText(s, r.X, r.Y+1+i, r.W, styleDefault, lines[i])
	}
	if focused && row < r.H-1 {
		s.ShowCursor(r.X+col, r.Y+1+row)
	}
}

func (v *View) drawGrid(s tcell.Screen, e *engine.Engine, focused bool) {
	r := v.Layout.Grid
	if r.H <= 0 || r.W <= gutterWidth {
		return
	}
	src := e.Source()
	vp := e.Viewport()
	cur := e.Cursor()
	sel := e.Selection()
	cols := src.ColumnCount()
	marker, _ := src.(source.RowMarker)
	text, caret, inserting := e.InsertText()

	header := styleHeader
	if focused {
		header = header.Foreground(tcell.ColorYellow)
	}
	x := r.X + gutterWidth
	for c := vp.Left(); c <= vp.Right() && c < cols; c++ {
		drawText(s, x, r.Y, colWidth, header, pad(columnName(src, c), colWidth-1))
		x += colWidth
	}

	y := r.Y + 1
	for row := vp.Top(); row <= vp.Bottom() && row < src.RowCount(); row++ {
		drawText(s, r.X, y, gutterWidth, styleGutter, fmt.Sprintf("%*d ", gutterWidth-1, row+1))
		x := r.X + gutterWidth
		for c := vp.Left(); c <= vp.Right() && c < cols; c++ {
			p := cursor.Position{Row: row, Col: c}
			value := src.CellValue(row, c)
			style := styleDefault
			switch {
			case marker != nil && marker.IsMarked(row):
				style = styleMarked
			case sel != nil && sel.Contains(p, cols):
				style = styleSelected
			}
			if p == cur && focused {
				style = styleCursor
				if inserting {
					value = text
					s.ShowCursor(x+min(caret, colWidth-2), y)
				}
			}
			drawText(s, x, y, colWidth, style, pad(value, colWidth-1))
			x += colWidth
		}
		y++
	}
	if src.RowCount() == 0 {
		drawText(s, r.X+gutterWidth, y, r.W-gutterWidth, styleGutter, "(no rows, press o to add one)")
	}
}

func (v *View) drawStatus(s tcell.Screen, e *engine.Engine, msg string, level engine.Level) {
	r := v.Layout.Status
	fill(s, r, styleStatus)
	cur := e.Cursor()
	left := fmt.Sprintf(" %s  %s  R%d C%d", e.Mode().DisplayName(), e.Focus(), cur.Row+1, cur.Col+1)
	if p := e.Pending(); p != "" {
		left += "  " + p
	}
	n := drawText(s, r.X, r.Y, r.W, styleStatus, left)

	if msg == "" {
		return
	}
	style := styleStatus
	switch level {
	case engine.LevelWarn:
		style = styleWarn
	case engine.LevelError:
		style = styleError
	}
	drawText(s, r.X+n+2, r.Y, r.W-n-2, style, msg)
}
