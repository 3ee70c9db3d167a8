package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/key"
	"github.com/dshills/keygrid/internal/input/mode"
)

func TestDefaultSetCompiles(t *testing.T) {
	s, err := NewSet(DefaultNormal(), DefaultSelect(), DefaultInsert(), DefaultGlobal())
	if err != nil {
		t.Fatalf("default bindings: %v", err)
	}
	for _, m := range mode.All() {
		if s.For(m).Len() == 0 {
			t.Errorf("mode %v has no bindings", m)
		}
	}
	if s.Global().Len() != len(DefaultGlobal().Bindings) {
		t.Errorf("global Len() = %d, want %d", s.Global().Len(), len(DefaultGlobal().Bindings))
	}
}

func TestTrieLookup(t *testing.T) {
	tr := DefaultSet().For(mode.Normal)

	tests := []struct {
		keys   string
		match  Match
		action command.Action
	}{
		{"j", ExactMatch, command.CursorDown},
		{"g", PrefixMatch, ""},
		{"gg", ExactMatch, command.CursorFirstRow},
		{"ge", ExactMatch, command.CursorLastRow},
		{"gz", NoMatch, ""},
		{"d", PrefixMatch, ""},
		{"dd", ExactMatch, command.RowDelete},
		{"<Space>", PrefixMatch, ""},
		{"<Space>d", ExactMatch, command.RowToggleMark},
		{"<C-d>", ExactMatch, command.CursorHalfPageDown},
		{"0", ExactMatch, command.CursorFirstCol},
		{"q", NoMatch, ""},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			m, b := tr.Lookup(key.MustParseSequence(tt.keys))
			if m != tt.match {
				t.Fatalf("Lookup(%q) match = %v, want %v", tt.keys, m, tt.match)
			}
			if tt.match == ExactMatch && b.Action != tt.action {
				t.Errorf("Lookup(%q) action = %q, want %q", tt.keys, b.Action, tt.action)
			}
			if tt.match != ExactMatch && b != nil {
				t.Errorf("Lookup(%q) returned binding for %v", tt.keys, m)
			}
		})
	}
}

func TestBindingsReparse(t *testing.T) {
	k := NewKeymap("normal")
	k.Bindings = []Binding{
		NewBinding("E n d", command.CellClear),
		NewBinding("g t", command.CursorLastRow),
		NewBinding("End", command.CursorLastCol),
	}
	tr, err := Compile(k)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	for _, b := range tr.Bindings() {
		seq := key.MustParseSequence(b.Keys)
		if _, got := tr.Lookup(seq); got == nil || got.Action != b.Action {
			t.Errorf("%q reparses to %+v, want %s", b.Keys, got, b.Action)
		}
	}
}

func TestCompileRejectsPrefixConflicts(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		kind     ConflictKind
	}{
		{
			name: "complete then longer",
			bindings: []Binding{
				NewBinding("g", command.CursorFirstRow),
				NewBinding("g g", command.CursorLastRow),
			},
			kind: ConflictPrefix,
		},
		{
			name: "longer then complete",
			bindings: []Binding{
				NewBinding("d d", command.RowDelete),
				NewBinding("d", command.CellClear),
			},
			kind: ConflictPrefix,
		},
		{
			name: "duplicate",
			bindings: []Binding{
				NewBinding("x", command.CellClear),
				NewBinding("x", command.RowDelete),
			},
			kind: ConflictDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeymap("normal")
			k.Bindings = tt.bindings
			_, err := Compile(k)
			if !errors.Is(err, ErrConflict) {
				t.Fatalf("Compile() error = %v, want ErrConflict", err)
			}
			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("error %v is not a *ConflictError", err)
			}
			if ce.Kind != tt.kind {
				t.Errorf("conflict kind = %v, want %v", ce.Kind, tt.kind)
			}
		})
	}
}

func TestCompileAllowsIdenticalRebind(t *testing.T) {
	k := NewKeymap("normal")
	k.Add("j", command.CursorDown).Add("j", command.CursorDown)
	tr, err := Compile(k)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestCompileBindingErrors(t *testing.T) {
	tests := []struct {
		name   string
		keymap string
		counts bool
		b      Binding
		want   error
	}{
		{"unknown action", "normal", true, NewBinding("q", "macro.record"), ErrUnknownAction},
		{"missing arg", "normal", true, NewBinding("t", command.CellTransform), ErrMissingArg},
		{"count digit", "normal", true, NewBinding("5", command.CursorDown), ErrDigitBinding},
		{"unmodified global", GlobalName, false, NewBinding("s", command.AppSave), ErrNotGlobalChord},
		{"multi-key global", GlobalName, false, NewBinding("<C-s> <C-s>", command.AppSave), ErrNotGlobalChord},
		{"bad keys", "normal", true, NewBinding("<Z-q>", command.AppSave), key.ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeymap(tt.keymap)
			k.Counts = tt.counts
			k.AddBinding(tt.b)
			_, err := Compile(k)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDigitBindingAllowedWithoutCounts(t *testing.T) {
	k := NewKeymap("insert")
	k.Add("5", command.InsertEnd)
	if _, err := Compile(k); err != nil {
		t.Errorf("Compile() error = %v, want nil", err)
	}
}

func TestNewSetReportsAllErrors(t *testing.T) {
	normal := NewKeymap("normal").Add("q", "bogus.one")
	global := NewKeymap(GlobalName).Add("z", command.AppSave)
	_, err := NewSet(normal, nil, nil, global)
	if !errors.Is(err, ErrUnknownAction) || !errors.Is(err, ErrNotGlobalChord) {
		t.Errorf("NewSet() error = %v, want both problems", err)
	}
}

func TestGlobalFor(t *testing.T) {
	s := DefaultSet()

	tests := []struct {
		ev     key.Event
		action command.Action
		ok     bool
	}{
		{key.NewRuneEvent('s', key.ModCtrl), command.AppSave, true},
		{key.NewRuneEvent('S', key.ModCtrl), "", false},
		{key.NewRuneEvent('n', key.ModCtrl|key.ModShift), command.AppNewTable, true},
		{key.NewRuneEvent('N', key.ModCtrl), command.AppNewTable, true},
		{key.NewSpecialEvent(key.KeyTab, key.ModCtrl), command.TabNext, true},
		{key.NewSpecialEvent(key.KeyTab, key.ModCtrl|key.ModShift), command.TabPrev, true},
		{key.NewRuneEvent('s', key.ModNone), "", false},
		{key.NewRuneEvent('d', key.ModCtrl), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			b, ok := s.GlobalFor(tt.ev)
			if ok != tt.ok {
				t.Fatalf("GlobalFor(%v) ok = %v, want %v", tt.ev, ok, tt.ok)
			}
			if ok && b.Action != tt.action {
				t.Errorf("GlobalFor(%v) = %q, want %q", tt.ev, b.Action, tt.action)
			}
		})
	}
}

func TestMergeOverridesAndUnbinds(t *testing.T) {
	base := DefaultNormal()
	merged := base.Merge([]Binding{
		{Keys: "j", Action: command.CursorUp},
		{Keys: "g g", Action: ""},
		{Keys: "q", Action: command.AppSave},
	}, "user.toml")

	if merged.Source != "user.toml" {
		t.Errorf("Source = %q", merged.Source)
	}
	tr, err := Compile(merged)
	if err != nil {
		t.Fatalf("Compile(merged) error: %v", err)
	}
	if _, b := tr.Lookup(key.MustParseSequence("j")); b == nil || b.Action != command.CursorUp {
		t.Errorf("j not overridden: %+v", b)
	}
	if m, _ := tr.Lookup(key.MustParseSequence("gg")); m != NoMatch {
		t.Errorf("gg still bound: %v", m)
	}
	if _, b := tr.Lookup(key.MustParseSequence("q")); b == nil || b.Action != command.AppSave {
		t.Errorf("q not added: %+v", b)
	}
	if len(base.Bindings) != len(DefaultNormal().Bindings) {
		t.Error("Merge modified the base keymap")
	}
}

func TestListingGroupsByKeymap(t *testing.T) {
	entries := DefaultSet().Listing()
	if len(entries) == 0 {
		t.Fatal("empty listing")
	}
	if entries[0].Keymap != GlobalName {
		t.Errorf("first entry keymap = %q, want global", entries[0].Keymap)
	}
	seen := map[string]bool{}
	last := ""
	for _, e := range entries {
		if e.Keymap != last {
			if seen[e.Keymap] {
				t.Fatalf("keymap %q listed in two runs", e.Keymap)
			}
			seen[e.Keymap] = true
			last = e.Keymap
		}
		if e.Description == "" {
			t.Errorf("%s %s has no description", e.Keymap, e.Keys)
		}
	}
}

func TestKeysFor(t *testing.T) {
	got := DefaultSet().For(mode.Normal).KeysFor(command.CursorFirstCol)
	want := map[string]bool{"0": true, "<Home>": true, "gh": true}
	if len(got) != len(want) {
		t.Fatalf("KeysFor() = %v", got)
	}
	for _, k := range got {
		if !want[k] {
			t.Errorf("unexpected key %q", k)
		}
	}
}
