package focus

import "github.com/dshills/keygrid/internal/input/key"

// Move describes a focus change.
type Move struct {
	From Target
	To   Target
}

// CrossResult is the outcome of a navigation key at the router level.
type CrossResult uint8

const (
	// Inside means the region's cursor can still move; the region keeps
	// the key.
	Inside CrossResult = iota
	// Blocked means the cursor is at the edge and there is no neighbor.
	Blocked
	// Crossed means focus moved to the neighbor.
	Crossed
)

func (c CrossResult) String() string {
	switch c {
	case Blocked:
		return "blocked"
	case Crossed:
		return "crossed"
	default:
		return "inside"
	}
}

// Outcome reports how the router handled a key in a non-grid region.
type Outcome struct {
	// Consumed is true when the key moved a cursor, changed focus, or
	// was handled by the region.
	Consumed bool

	// Changed is set with the focus move, if any.
	Changed bool
	Move    Move

	// Activated holds the item opened with Enter in a list region.
	Activated string

	// Forward is true when nothing handled the key and the host should.
	Forward bool
}

type edgeless struct{}

func (edgeless) AtEdge(Direction) bool { return true }
func (edgeless) Move(Direction)        {}
func (edgeless) Enter(Direction)       {}

// Router tracks the active region. It does not own region state beyond
// holding the Region values.
type Router struct {
	adj     Adjacency
	active  Target
	regions [numTargets]Region
}

// NewRouter creates a router focused on the grid. Toolbar, TabStrip and
// Sidebar start as empty lists and TextEditor as an empty text region.
func NewRouter(adj Adjacency) *Router {
	r := &Router{adj: adj, active: Grid}
	r.regions[Toolbar] = NewListRegion(true)
	r.regions[TabStrip] = NewListRegion(true)
	r.regions[Sidebar] = NewListRegion(false)
	r.regions[TextEditor] = NewTextRegion("")
	r.regions[Grid] = edgeless{}
	return r
}

// SetRegion installs the region model for t.
func (r *Router) SetRegion(t Target, reg Region) {
	if !t.Valid() {
		return
	}
	if reg == nil {
		reg = edgeless{}
	}
	r.regions[t] = reg
}

// Region returns the model of t.
func (r *Router) Region(t Target) Region {
	if !t.Valid() {
		return edgeless{}
	}
	return r.regions[t]
}

// Active returns the focused region.
func (r *Router) Active() Target {
	return r.active
}

// Adjacency returns the neighbor table.
func (r *Router) Adjacency() Adjacency {
	return r.adj
}

// SetAdjacency replaces the neighbor table.
func (r *Router) SetAdjacency(adj Adjacency) {
	r.adj = adj
}

// Cross moves focus to the neighbor in d if the active region's cursor is
// on that edge. The new region is entered at the edge facing the old one.
func (r *Router) Cross(d Direction) (Move, CrossResult) {
	if !r.regions[r.active].AtEdge(d) {
		return Move{}, Inside
	}
	to, ok := r.adj.Neighbor(r.active, d)
	if !ok {
		return Move{}, Blocked
	}
	m := Move{From: r.active, To: to}
	r.active = to
	r.regions[to].Enter(d)
	return m, Crossed
}

// Focus activates t directly, keeping its cursor where it was.
func (r *Router) Focus(t Target) (Move, bool) {
	if !t.Valid() || t == r.active {
		return Move{}, false
	}
	m := Move{From: r.active, To: t}
	r.active = t
	return m, true
}

// Escape returns focus to the grid when the grid is reachable from the
// active region.
func (r *Router) Escape() (Move, bool) {
	if r.active == Grid || !r.adj.Reachable(r.active, Grid) {
		return Move{}, false
	}
	return r.Focus(Grid)
}

// HandleKey processes a key for the active non-grid region. Grid keys are
// handled by the engine, which only asks the router to Cross.
func (r *Router) HandleKey(ev key.Event) Outcome {
	ev = ev.Normalize()
	reg := r.regions[r.active]

	if ev.IsEscape() {
		if m, ok := r.Escape(); ok {
			return Outcome{Consumed: true, Changed: true, Move: m}
		}
		return Outcome{Forward: true}
	}

	var d Direction
	var nav bool
	if n, ok := reg.(Navigator); ok {
		d, nav = n.NavKey(ev)
	} else {
		d, nav = NavDirection(ev)
	}
	if nav {
		m, res := r.Cross(d)
		switch res {
		case Crossed:
			return Outcome{Consumed: true, Changed: true, Move: m}
		case Blocked:
			return Outcome{Consumed: true}
		default:
			reg.Move(d)
			return Outcome{Consumed: true}
		}
	}

	if ev.Key == key.KeyEnter && ev.Modifiers == key.ModNone {
		if a, ok := reg.(Activator); ok {
			if item, ok := a.Current(); ok {
				return Outcome{Consumed: true, Activated: item}
			}
		}
	}

	if h, ok := reg.(KeyHandler); ok && h.HandleKey(ev) {
		return Outcome{Consumed: true}
	}
	return Outcome{Forward: true}
}
