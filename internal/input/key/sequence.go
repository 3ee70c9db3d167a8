package key

import "strings"

// Sequence is an ordered run of key events.
type Sequence []Event

// String returns the continuous form of the sequence, e.g. "gg" or
// "<Space>d". ParseSequence accepts it back.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, e := range s {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Keys returns the canonical string of each event, the form keymap tries
// are keyed by.
func (s Sequence) Keys() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.String()
	}
	return out
}

// Equals reports whether s and other contain the same events.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a prefix of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equals(prefix)
}

// Append returns a new sequence with e appended. s is not modified.
func (s Sequence) Append(e Event) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, e)
}
