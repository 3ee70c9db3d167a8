// Package keymap holds the key binding tables of the grid engine.
//
// Each mode has its own Keymap. A Keymap is compiled into a Trie keyed by
// canonical key strings; compilation rejects tables where one binding is a
// strict prefix of another, so the sequence parser can resolve on the first
// exact match without timeouts.
//
// Global shortcuts live in a separate keymap of single chords that require
// Ctrl or Meta. They are checked before any mode table.
//
// A Set bundles the four compiled tables. Loader reads user overrides from
// TOML or JSON and merges them onto the defaults:
//
//	[[normal]]
//	keys = "g g"
//	action = "cursor.firstRow"
//
//	[[global]]
//	keys = "Ctrl+S"
//	action = "app.save"
package keymap
