// Package key provides the raw key event types consumed by the grid engine.
//
// The types are deliberately small:
//
//   - Key: a special key (Escape, Enter, arrows, ...) or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta as a bit set
//   - Event: one key press
//   - Sequence: an ordered run of events, the unit keymaps are keyed by
//
// # Key Specifications
//
// Bindings are written as specs and parsed with Parse and ParseSequence:
//
//   - Simple keys: "j", "G", "$", "Enter", "Esc"
//   - Readable chords: "Ctrl+S", "Ctrl+Shift+Tab"
//   - Vim notation: "<C-d>", "<CR>", "<Space>", "<BS>"
//
// A sequence is either space separated ("g g", "<Space> d") or written
// continuously ("gg", "<Space>d").
//
// Character events ignore Shift: "G" is the rune 'G' with no modifiers, the
// same event a terminal reports for Shift+g once normalized.
package key
