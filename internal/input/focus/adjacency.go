package focus

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrUnknownTarget    = errors.New("unknown focus target")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrSelfLoop         = errors.New("region cannot neighbor itself")
)

// Adjacency is the directed neighbor table: Target x Direction -> Target.
// The zero value has no edges.
type Adjacency struct {
	next [numTargets][numDirections]Target
	has  [numTargets][numDirections]bool
}

// DefaultAdjacency returns the standard window layout:
//
//	Toolbar
//	Sidebar | TabStrip
//	        | Grid
//	        | TextEditor
func DefaultAdjacency() Adjacency {
	var a Adjacency
	a.mustSet(Toolbar, Down, TabStrip)
	a.mustSet(TabStrip, Up, Toolbar)
	a.mustSet(TabStrip, Down, Grid)
	a.mustSet(TabStrip, Left, Sidebar)
	a.mustSet(Grid, Up, TabStrip)
	a.mustSet(Grid, Down, TextEditor)
	a.mustSet(Grid, Left, Sidebar)
	a.mustSet(TextEditor, Up, Grid)
	a.mustSet(TextEditor, Left, Sidebar)
	a.mustSet(Sidebar, Up, Toolbar)
	a.mustSet(Sidebar, Right, Grid)
	return a
}

func (a *Adjacency) mustSet(from Target, d Direction, to Target) {
	if err := a.Set(from, d, to); err != nil {
		panic(err)
	}
}

// Set adds or replaces the edge from -> to in direction d.
func (a *Adjacency) Set(from Target, d Direction, to Target) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %v -> %v", ErrUnknownTarget, from, to)
	}
	if d >= numDirections {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, d)
	}
	if from == to {
		return fmt.Errorf("%w: %v", ErrSelfLoop, from)
	}
	a.next[from][d] = to
	a.has[from][d] = true
	return nil
}

// Remove deletes the edge from t in direction d.
func (a *Adjacency) Remove(t Target, d Direction) {
	if t.Valid() && d < numDirections {
		a.has[t][d] = false
	}
}

// Neighbor returns the region reached from t moving in d.
func (a Adjacency) Neighbor(t Target, d Direction) (Target, bool) {
	if !t.Valid() || d >= numDirections || !a.has[t][d] {
		return t, false
	}
	return a.next[t][d], true
}

// Reachable reports whether to can be reached from from by following
// edges.
func (a Adjacency) Reachable(from, to Target) bool {
	if from == to {
		return true
	}
	var seen [numTargets]bool
	queue := []Target{from}
	seen[from] = true
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, d := range Directions() {
			n, ok := a.Neighbor(t, d)
			if !ok || seen[n] {
				continue
			}
			if n == to {
				return true
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return false
}

// Edge is one adjacency entry, the unit of configuration files.
type Edge struct {
	From      string `toml:"from" json:"from" mapstructure:"from"`
	Direction string `toml:"direction" json:"direction" mapstructure:"direction"`
	To        string `toml:"to" json:"to" mapstructure:"to"`
}

// Edges lists the table in Targets x Directions order.
func (a Adjacency) Edges() []Edge {
	var out []Edge
	for _, t := range Targets() {
		for _, d := range Directions() {
			if n, ok := a.Neighbor(t, d); ok {
				out = append(out, Edge{From: t.String(), Direction: d.String(), To: n.String()})
			}
		}
	}
	return out
}

// AdjacencyFromEdges builds a table from configuration entries.
func AdjacencyFromEdges(edges []Edge) (Adjacency, error) {
	var a Adjacency
	for _, e := range edges {
		from, err := ParseTarget(e.From)
		if err != nil {
			return Adjacency{}, err
		}
		d, err := ParseDirection(e.Direction)
		if err != nil {
			return Adjacency{}, err
		}
		to, err := ParseTarget(e.To)
		if err != nil {
			return Adjacency{}, err
		}
		if err := a.Set(from, d, to); err != nil {
			return Adjacency{}, err
		}
	}
	return a, nil
}
