package key

import (
	"strings"
	"unicode"
)

// Event is a single key press as seen by the engine.
type Event struct {
	// Key is the pressed key. KeyRune for characters.
	Key Key

	// Rune is the character for KeyRune events, zero otherwise.
	Rune rune

	// Modifiers held during the press.
	Modifiers Modifier
}

// NewRuneEvent returns a normalized character event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize()
}

// NewSpecialEvent returns an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Normalize folds equivalent character events into one form so that they
// compare equal and share one trie key.
//
// Without Ctrl, Alt or Meta the character already encodes Shift, so Shift is
// dropped. With one of them held, letters are lowercased and an uppercase
// letter turns into an explicit Shift.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	if !e.Modifiers.Has(ModCtrl) && !e.Modifiers.Has(ModAlt) && !e.Modifiers.Has(ModMeta) {
		e.Modifiers = e.Modifiers.Without(ModShift)
		return e
	}
	if unicode.IsUpper(e.Rune) {
		e.Rune = unicode.ToLower(e.Rune)
		e.Modifiers = e.Modifiers.With(ModShift)
	}
	return e
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsPrintable reports whether e types a visible character into a text field.
func (e Event) IsPrintable() bool {
	if !e.IsRune() {
		return false
	}
	if e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) || e.Modifiers.Has(ModMeta) {
		return false
	}
	return unicode.IsPrint(e.Rune)
}

// Is reports whether e is the unmodified character r.
func (e Event) Is(r rune) bool {
	n := e.Normalize()
	return n.Key == KeyRune && n.Rune == r && n.Modifiers == ModNone
}

// Digit returns the value of an unmodified decimal digit key.
func (e Event) Digit() (int, bool) {
	n := e.Normalize()
	if n.Key != KeyRune || n.Modifiers != ModNone {
		return 0, false
	}
	if n.Rune < '0' || n.Rune > '9' {
		return 0, false
	}
	return int(n.Rune - '0'), true
}

// IsCommand reports whether Ctrl or Meta is held.
func (e Event) IsCommand() bool {
	return e.Modifiers.IsCommand()
}

// IsEscape reports whether e is a plain Escape.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// Equals compares two events after normalization.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// String returns the canonical spec for e, e.g. "j", "G", "<Space>",
// "<C-d>", "<C-S-Tab>". Parse(e.String()) yields e again.
func (e Event) String() string {
	n := e.Normalize()
	var name string
	bracket := n.Modifiers != ModNone
	switch {
	case n.Key == KeyRune:
		switch n.Rune {
		case ' ':
			name, bracket = "Space", true
		case '<':
			name, bracket = "lt", true
		case 0:
			name, bracket = "Nul", true
		default:
			name = string(n.Rune)
		}
	default:
		name, bracket = n.Key.String(), true
	}
	if !bracket {
		return name
	}
	var sb strings.Builder
	sb.WriteByte('<')
	if n.Modifiers != ModNone {
		sb.WriteString(n.Modifiers.String())
		sb.WriteByte('-')
	}
	sb.WriteString(name)
	sb.WriteByte('>')
	return sb.String()
}
