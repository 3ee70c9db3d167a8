package focus

import (
	"errors"
	"testing"
)

func TestDefaultAdjacency(t *testing.T) {
	a := DefaultAdjacency()

	tests := []struct {
		from Target
		d    Direction
		to   Target
		ok   bool
	}{
		{Toolbar, Down, TabStrip, true},
		{Toolbar, Up, Toolbar, false},
		{Toolbar, Left, Toolbar, false},
		{TabStrip, Up, Toolbar, true},
		{TabStrip, Down, Grid, true},
		{TabStrip, Left, Sidebar, true},
		{TabStrip, Right, TabStrip, false},
		{Grid, Up, TabStrip, true},
		{Grid, Down, TextEditor, true},
		{Grid, Left, Sidebar, true},
		{Grid, Right, Grid, false},
		{TextEditor, Up, Grid, true},
		{TextEditor, Down, TextEditor, false},
		{TextEditor, Left, Sidebar, true},
		{Sidebar, Up, Toolbar, true},
		{Sidebar, Right, Grid, true},
		{Sidebar, Down, Sidebar, false},
		{Sidebar, Left, Sidebar, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.d.String(), func(t *testing.T) {
			got, ok := a.Neighbor(tt.from, tt.d)
			if ok != tt.ok || (ok && got != tt.to) {
				t.Errorf("Neighbor(%v, %v) = (%v, %v), want (%v, %v)", tt.from, tt.d, got, ok, tt.to, tt.ok)
			}
		})
	}
}

func TestNeighborDeterministic(t *testing.T) {
	a := DefaultAdjacency()
	for _, from := range Targets() {
		for _, d := range Directions() {
			first, ok1 := a.Neighbor(from, d)
			for i := 0; i < 10; i++ {
				again, ok2 := a.Neighbor(from, d)
				if again != first || ok1 != ok2 {
					t.Fatalf("Neighbor(%v, %v) not deterministic", from, d)
				}
			}
		}
	}
}

func TestAdjacencySetErrors(t *testing.T) {
	var a Adjacency
	if err := a.Set(Grid, Left, Grid); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("self loop error = %v", err)
	}
	if err := a.Set(Target(42), Left, Grid); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("unknown target error = %v", err)
	}
	if err := a.Set(Grid, Direction(9), Sidebar); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("unknown direction error = %v", err)
	}
}

func TestEdgesRoundTrip(t *testing.T) {
	a := DefaultAdjacency()
	b, err := AdjacencyFromEdges(a.Edges())
	if err != nil {
		t.Fatalf("AdjacencyFromEdges() error: %v", err)
	}
	if a != b {
		t.Error("edge round trip changed the table")
	}
	if len(a.Edges()) != 11 {
		t.Errorf("default has %d edges, want 11", len(a.Edges()))
	}
}

func TestAdjacencyFromEdgesRejectsUnknown(t *testing.T) {
	_, err := AdjacencyFromEdges([]Edge{{From: "grid", Direction: "sideways", To: "sidebar"}})
	if !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("error = %v, want ErrUnknownDirection", err)
	}
	_, err = AdjacencyFromEdges([]Edge{{From: "statusbar", Direction: "up", To: "grid"}})
	if !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("error = %v, want ErrUnknownTarget", err)
	}
}

func TestReachable(t *testing.T) {
	a := DefaultAdjacency()
	for _, tgt := range Targets() {
		if !a.Reachable(tgt, Grid) {
			t.Errorf("grid not reachable from %v", tgt)
		}
	}

	var island Adjacency
	_ = island.Set(Toolbar, Down, TabStrip)
	if island.Reachable(Toolbar, Grid) {
		t.Error("grid reachable in a table without grid edges")
	}
}
