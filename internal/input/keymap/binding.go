package keymap

import (
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/key"
)

// Binding maps a key sequence to an action.
type Binding struct {
	// Keys is the key sequence spec: "j", "g g", "<Space>d", "Ctrl+S".
	Keys string `toml:"keys" json:"keys" yaml:"keys"`

	// Action is the command to execute. In an override file an empty
	// action (or "none") removes the default binding for Keys.
	Action command.Action `toml:"action" json:"action" yaml:"action"`

	// Arg is passed to actions that need one, e.g. a transform name.
	Arg string `toml:"arg,omitempty" json:"arg,omitempty" yaml:"arg,omitempty"`

	// Description is shown in binding listings. Defaults to the action's.
	Description string `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`

	// Category groups bindings for display. Defaults to the action's.
	Category string `toml:"category,omitempty" json:"category,omitempty" yaml:"category,omitempty"`
}

// NewBinding creates a binding for keys and action.
func NewBinding(keys string, action command.Action) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithArg returns b with its argument set.
func (b Binding) WithArg(arg string) Binding {
	b.Arg = arg
	return b
}

// WithDescription returns b with its description set.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Describe returns the binding's description, falling back to the action's.
func (b Binding) Describe() string {
	if b.Description != "" {
		return b.Description
	}
	if info, ok := command.Lookup(b.Action); ok {
		return info.Description
	}
	return string(b.Action)
}

// Group returns the binding's category, falling back to the action's.
func (b Binding) Group() string {
	if b.Category != "" {
		return b.Category
	}
	if info, ok := command.Lookup(b.Action); ok {
		return info.Category
	}
	return "Other"
}

// Command builds the resolved command for this binding.
func (b Binding) Command(count int, keys key.Sequence) command.Command {
	return command.Command{
		Action: b.Action,
		Count:  count,
		Arg:    b.Arg,
		Keys:   keys,
	}
}

// isUnbind reports whether b removes a binding in an override file.
func (b Binding) isUnbind() bool {
	return b.Action == "" || b.Action == "none"
}
