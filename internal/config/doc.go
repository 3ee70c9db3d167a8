// Package config loads keygrid settings.
//
// Settings come from, in increasing priority: built-in defaults, a TOML
// config file, KEYGRID_* environment variables and command-line flags bound
// by the CLI. Nested keys map to environment variables by replacing dots
// with underscores, so editor.max_undo is KEYGRID_EDITOR_MAX_UNDO.
//
// Keymap files are separate from the config file; keymap.file names one and
// the watcher subpackage reloads it when it changes on disk.
package config
