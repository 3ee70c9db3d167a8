package cursor

// Scroll is the direction a viewport shifted to follow the cursor.
type Scroll uint8

const (
	ScrollNone Scroll = iota
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
)

func (s Scroll) String() string {
	switch s {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "none"
	}
}

// Viewport is the visible window of rows and columns.
type Viewport struct {
	top    int
	left   int
	height int
	width  int
}

// NewViewport creates a viewport showing height rows and width columns.
// Sizes are clamped to at least 1.
func NewViewport(height, width int) *Viewport {
	v := &Viewport{}
	v.Resize(height, width)
	return v
}

// Resize changes the window size.
func (v *Viewport) Resize(height, width int) {
	v.height = max(height, 1)
	v.width = max(width, 1)
}

// Top returns the first visible row.
func (v *Viewport) Top() int { return v.top }

// Left returns the first visible column.
func (v *Viewport) Left() int { return v.left }

// Height returns the number of visible rows.
func (v *Viewport) Height() int { return v.height }

// Width returns the number of visible columns.
func (v *Viewport) Width() int { return v.width }

// Bottom returns the last visible row.
func (v *Viewport) Bottom() int { return v.top + v.height - 1 }

// Right returns the last visible column.
func (v *Viewport) Right() int { return v.left + v.width - 1 }

// HalfPage returns the half-page motion size, at least 1.
func (v *Viewport) HalfPage() int {
	return max(v.height/2, 1)
}

// Page returns the full-page motion size.
func (v *Viewport) Page() int {
	return v.height
}

// Visible reports whether p is inside the window.
func (v *Viewport) Visible(p Position) bool {
	return p.Row >= v.top && p.Row <= v.Bottom() && p.Col >= v.left && p.Col <= v.Right()
}

// Follow shifts the window by the minimum amount that brings p into view.
// No centering. A vertical shift is reported in preference to a
// horizontal one when both happen.
func (v *Viewport) Follow(p Position) Scroll {
	var vertical, horizontal Scroll
	switch {
	case p.Row < v.top:
		v.top = p.Row
		vertical = ScrollUp
	case p.Row > v.Bottom():
		v.top = p.Row - v.height + 1
		vertical = ScrollDown
	}
	switch {
	case p.Col < v.left:
		v.left = p.Col
		horizontal = ScrollLeft
	case p.Col > v.Right():
		v.left = p.Col - v.width + 1
		horizontal = ScrollRight
	}
	if vertical != ScrollNone {
		return vertical
	}
	return horizontal
}

// Clamp keeps the window inside a rows x cols grid after data shrinks.
func (v *Viewport) Clamp(rows, cols int) {
	v.top = clampInt(v.top, 0, max(rows-v.height, 0))
	v.left = clampInt(v.left, 0, max(cols-v.width, 0))
}
