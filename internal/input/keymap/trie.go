package keymap

import (
	"errors"
	"sort"
	"strings"

	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/key"
)

// Match is the outcome of looking up a key buffer.
type Match uint8

const (
	// NoMatch means no binding starts with the buffer.
	NoMatch Match = iota
	// PrefixMatch means the buffer is a strict prefix of at least one
	// binding and matches none exactly.
	PrefixMatch
	// ExactMatch means the buffer is a complete binding.
	ExactMatch
)

func (m Match) String() string {
	switch m {
	case PrefixMatch:
		return "prefix"
	case ExactMatch:
		return "exact"
	default:
		return "none"
	}
}

// Trie is a compiled keymap. A node carries either a binding or children,
// never both.
type Trie struct {
	name   string
	counts bool
	root   *trieNode
	size   int
}

type trieNode struct {
	children map[string]*trieNode
	binding  *Binding
	seq      key.Sequence
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// Compile validates k and builds its trie. All problems are reported
// together, joined with errors.Join.
func Compile(k *Keymap) (*Trie, error) {
	t := &Trie{name: k.Name, counts: k.Counts, root: newTrieNode()}
	var errs []error
	for _, b := range k.Bindings {
		if err := t.insert(b, k.Name == GlobalName); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

func (t *Trie) insert(b Binding, global bool) error {
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return &BindingError{Keymap: t.name, Keys: b.Keys, Err: err}
	}
	info, ok := command.Lookup(b.Action)
	if !ok {
		return &BindingError{Keymap: t.name, Keys: b.Keys, Err: ErrUnknownAction}
	}
	if info.NeedsArg && b.Arg == "" {
		return &BindingError{Keymap: t.name, Keys: b.Keys, Err: ErrMissingArg}
	}
	if global && (len(seq) != 1 || !seq[0].IsCommand()) {
		return &BindingError{Keymap: t.name, Keys: b.Keys, Err: ErrNotGlobalChord}
	}
	if t.counts {
		if d, ok := seq[0].Digit(); ok && d != 0 {
			return &BindingError{Keymap: t.name, Keys: b.Keys, Err: ErrDigitBinding}
		}
	}

	node := t.root
	for i, ev := range seq {
		if node.binding != nil {
			return &ConflictError{Keymap: t.name, Kind: ConflictPrefix, Existing: *node.binding, Incoming: b}
		}
		k := ev.String()
		child, ok := node.children[k]
		if !ok {
			child = newTrieNode()
			child.seq = seq[:i+1]
			node.children[k] = child
		}
		node = child
	}

	if node.binding != nil {
		if node.binding.Action == b.Action && node.binding.Arg == b.Arg {
			return nil
		}
		return &ConflictError{Keymap: t.name, Kind: ConflictDuplicate, Existing: *node.binding, Incoming: b}
	}
	if len(node.children) > 0 {
		return &ConflictError{Keymap: t.name, Kind: ConflictPrefix, Existing: *firstBinding(node), Incoming: b}
	}

	bb := b
	node.binding = &bb
	node.seq = seq
	t.size++
	return nil
}

func firstBinding(n *trieNode) *Binding {
	if n.binding != nil {
		return n.binding
	}
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if b := firstBinding(n.children[k]); b != nil {
			return b
		}
	}
	return nil
}

// Name returns the keymap name the trie was compiled from.
func (t *Trie) Name() string {
	return t.name
}

// Counts reports whether the table accepts count prefixes.
func (t *Trie) Counts() bool {
	return t.counts
}

// Len returns the number of bindings.
func (t *Trie) Len() int {
	return t.size
}

// Lookup matches a key buffer against the table.
func (t *Trie) Lookup(seq key.Sequence) (Match, *Binding) {
	if len(seq) == 0 {
		return NoMatch, nil
	}
	node := t.root
	for _, ev := range seq {
		child, ok := node.children[ev.String()]
		if !ok {
			return NoMatch, nil
		}
		node = child
	}
	if node.binding != nil {
		return ExactMatch, node.binding
	}
	return PrefixMatch, nil
}

// Bindings returns every binding, ordered by canonical keys.
func (t *Trie) Bindings() []Binding {
	var out []Binding
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		if n.binding != nil {
			b := *n.binding
			b.Keys = specFor(n.seq)
			out = append(out, b)
			return
		}
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(n.children[k])
		}
	}
	walk(t.root)
	return out
}

// KeysFor returns the canonical key sequences bound to action.
func (t *Trie) KeysFor(action command.Action) []string {
	var out []string
	for _, b := range t.Bindings() {
		if b.Action == action {
			out = append(out, b.Keys)
		}
	}
	return out
}

// specFor writes seq in a form ParseSequence reads back as seq. Runs of
// runes that spell a capitalized key name ("End") are space separated.
func specFor(seq key.Sequence) string {
	s := seq.String()
	if back, err := key.ParseSequence(s); err == nil && back.Equals(seq) {
		return s
	}
	return strings.Join(seq.Keys(), " ")
}
