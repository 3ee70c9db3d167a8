package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a key specification into an Event.
//
// Supported formats:
//   - Single character: "a", "G", "$", "/"
//   - Key names: "Enter", "Esc", "Tab", "PageDown", "Space"
//   - Chords: "Ctrl+S", "Ctrl+Shift+Tab"
//   - Vim-style: "<C-d>", "<CR>", "<C-S-n>", "<Space>", "<lt>"
//
// Letters in a chord are case-insensitive; Shift must be explicit.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseChord(spec)
	}
	return parseSingle(spec)
}

// MustParse is like Parse but panics on error. For static tables.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key.MustParse(%q): %v", spec, err))
	}
	return e
}

func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	// "<C-->" binds Ctrl+minus.
	var keyPart string
	var modParts []string
	if strings.HasSuffix(inner, "--") {
		keyPart = "-"
		modParts = strings.Split(strings.TrimSuffix(inner, "--"), "-")
	} else {
		parts := strings.Split(inner, "-")
		keyPart = parts[len(parts)-1]
		modParts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range modParts {
		if p == "" {
			continue
		}
		m, ok := ModifierFromName(p)
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(m)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

func parseChord(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	// "Ctrl++" binds Ctrl+plus.
	if keyPart == "" && len(parts) > 2 && parts[len(parts)-2] == "" {
		keyPart = "+"
		modParts = parts[:len(parts)-2]
	}

	var mods Modifier
	for _, p := range modParts {
		m, ok := ModifierFromName(p)
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(m)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

func parseSingle(spec string) (Event, error) {
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneEvent(r, ModNone), nil
	}
	return parseKeyWithModifiers(spec, ModNone)
}

func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		if mods != ModNone && mods != ModShift {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	lower := strings.ToLower(keyPart)
	if k, ok := keyAliases[lower]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeAliases[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseSequence parses a whitespace separated or continuous sequence spec.
//
//	"g g"       -> [g, g]
//	"gg"        -> [g, g]
//	"<Space>d"  -> [Space, d]
//	"Ctrl+S"    -> [Ctrl+S]
//
// A field that is a capitalized key name ("Enter", "End", "PageDown") is
// one key. Lowercase fields are always split, so "end" is e, n, d.
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	var seq Sequence
	for _, f := range fields {
		if isSingleKeySpec(f) {
			e, err := Parse(f)
			if err != nil {
				return nil, err
			}
			seq = append(seq, e)
			continue
		}
		events, err := parseContinuous(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, events...)
	}
	return seq, nil
}

// MustParseSequence is like ParseSequence but panics on error.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic(fmt.Sprintf("key.MustParseSequence(%q): %v", spec, err))
	}
	return seq
}

func isSingleKeySpec(f string) bool {
	if utf8.RuneCountInString(f) == 1 {
		return true
	}
	if strings.Contains(f, "+") && !strings.Contains(f, "<") {
		return true
	}
	// Bare names must be capitalized; "gt" is g then t, "Gt" is '>'.
	r, _ := utf8.DecodeRuneInString(f)
	if !unicode.IsUpper(r) {
		return false
	}
	lower := strings.ToLower(f)
	if _, ok := keyAliases[lower]; ok {
		return true
	}
	_, ok := runeAliases[lower]
	return ok
}

func parseContinuous(f string) (Sequence, error) {
	var seq Sequence
	for len(f) > 0 {
		if f[0] == '<' && len(f) > 1 {
			end := strings.IndexByte(f, '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, f)
			}
			if end == 1 {
				// "<>" is a literal '<' followed by '>'.
				seq = append(seq, NewRuneEvent('<', ModNone))
				f = f[1:]
				continue
			}
			e, err := parseVimStyle(f[1:end])
			if err != nil {
				return nil, err
			}
			seq = append(seq, e)
			f = f[end+1:]
			continue
		}
		r, size := utf8.DecodeRuneInString(f)
		seq = append(seq, NewRuneEvent(r, ModNone))
		f = f[size:]
	}
	return seq, nil
}
