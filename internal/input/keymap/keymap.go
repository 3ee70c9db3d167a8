package keymap

import (
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/key"
)

// GlobalName is the name of the global shortcut keymap.
const GlobalName = "global"

// Keymap is an uncompiled list of bindings for one mode, or the global
// shortcut table.
type Keymap struct {
	// Name is "normal", "select", "insert" or "global".
	Name string

	// Counts reports whether digits form a count prefix in this table.
	// Bindings may then not start with 1-9.
	Counts bool

	// Bindings in declaration order.
	Bindings []Binding

	// Source records where the bindings came from: "default" or a path.
	Source string
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name, Source: "default"}
}

// Add appends a binding.
func (k *Keymap) Add(keys string, action command.Action) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding appends a fully configured binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Bindings = append([]Binding(nil), k.Bindings...)
	return &c
}

// Merge returns a copy of k with overlay applied. An overlay binding
// replaces the base binding with the same keys; an overlay binding with an
// empty action removes it.
func (k *Keymap) Merge(overlay []Binding, source string) *Keymap {
	out := k.Clone()
	if source != "" && len(overlay) > 0 {
		out.Source = source
	}
	for _, ob := range overlay {
		norm := normalizeKeys(ob.Keys)
		kept := out.Bindings[:0]
		for _, b := range out.Bindings {
			if normalizeKeys(b.Keys) != norm {
				kept = append(kept, b)
			}
		}
		out.Bindings = kept
		if !ob.isUnbind() {
			out.Bindings = append(out.Bindings, ob)
		}
	}
	return out
}

// normalizeKeys returns the canonical form of a sequence spec, or the spec
// itself if it does not parse.
func normalizeKeys(spec string) string {
	seq, err := key.ParseSequence(spec)
	if err != nil {
		return spec
	}
	return seq.String()
}
