package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/keygrid/internal/input/key"
	"github.com/dshills/keygrid/internal/input/mode"
)

// Set is the complete compiled binding configuration: one trie per mode plus
// the global shortcuts.
type Set struct {
	normal *Trie
	sel    *Trie
	insert *Trie
	global *Trie

	keymaps map[string]*Keymap
}

// NewSet compiles the four keymaps. Every keymap is compiled even if an
// earlier one fails, so the returned error lists all problems.
func NewSet(normal, sel, insert, global *Keymap) (*Set, error) {
	s := &Set{keymaps: make(map[string]*Keymap, 4)}
	var errs []error
	compile := func(k *Keymap, name string, counts bool) *Trie {
		if k == nil {
			k = NewKeymap(name)
		}
		k = k.Clone()
		k.Name = name
		k.Counts = counts
		s.keymaps[name] = k
		t, err := Compile(k)
		if err != nil {
			errs = append(errs, err)
		}
		return t
	}

	s.normal = compile(normal, mode.NameNormal, mode.Normal.UsesCounts())
	s.sel = compile(sel, mode.NameSelect, mode.Select.UsesCounts())
	s.insert = compile(insert, mode.NameInsert, mode.Insert.UsesCounts())
	s.global = compile(global, GlobalName, false)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// DefaultSet returns the built-in bindings. It panics if they do not
// compile, which tests guard against.
func DefaultSet() *Set {
	s, err := NewSet(DefaultNormal(), DefaultSelect(), DefaultInsert(), DefaultGlobal())
	if err != nil {
		panic(fmt.Sprintf("keymap: default bindings invalid: %v", err))
	}
	return s
}

// For returns the trie of mode m.
func (s *Set) For(m mode.Mode) *Trie {
	switch m {
	case mode.Normal:
		return s.normal
	case mode.Select:
		return s.sel
	case mode.Insert:
		return s.insert
	default:
		return s.normal
	}
}

// Global returns the trie of global shortcuts.
func (s *Set) Global() *Trie {
	return s.global
}

// GlobalFor returns the global shortcut bound to ev, if any. Only Ctrl and
// Meta chords can match.
func (s *Set) GlobalFor(ev key.Event) (*Binding, bool) {
	if !ev.IsCommand() {
		return nil, false
	}
	m, b := s.global.Lookup(key.Sequence{ev.Normalize()})
	if m != ExactMatch {
		return nil, false
	}
	return b, true
}

// Keymap returns a copy of the uncompiled keymap with the given name.
func (s *Set) Keymap(name string) (*Keymap, error) {
	k, ok := s.keymaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeymap, name)
	}
	return k.Clone(), nil
}

// Entry is one row of a binding listing.
type Entry struct {
	Keymap      string
	Keys        string
	Action      string
	Arg         string
	Description string
	Category    string
}

// Listing returns every binding grouped by keymap then category, for help
// screens and the keys command.
func (s *Set) Listing() []Entry {
	order := []*Trie{s.global, s.normal, s.sel, s.insert}
	var out []Entry
	for _, t := range order {
		entries := make([]Entry, 0, t.Len())
		for _, b := range t.Bindings() {
			entries = append(entries, Entry{
				Keymap:      t.Name(),
				Keys:        b.Keys,
				Action:      string(b.Action),
				Arg:         b.Arg,
				Description: b.Describe(),
				Category:    b.Group(),
			})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Category < entries[j].Category
		})
		out = append(out, entries...)
	}
	return out
}
