// Package term runs the grid engine in a terminal.
//
// It owns the tcell screen: it translates key events for the engine, draws
// the window regions and the grid around the engine's cursor and viewport,
// and feeds asynchronous inputs (mirror failures, keymap file changes) into
// the engine between key presses so the engine stays single-threaded.
//
// Ctrl+C and Ctrl+Q quit; every other key goes to the engine.
package term
