// Package engine turns key events into navigation, selection and edits on
// a tabular grid.
//
// An Engine is the single state value for one grid: the active mode, the
// cursor and viewport, the pending key sequence, the selection, the undo
// history and the focus router. Each call to HandleKey fully resolves one
// key and reports what happened as a Result; nothing is broadcast.
//
// # Dispatch
//
// Keys are routed in a fixed order:
//
//   - Ctrl and Meta chords with a global binding run first, whatever the
//     focus. Global focus changes cancel Insert and Select.
//   - When a region other than the grid has focus, the focus router
//     handles the key.
//   - In the grid, a navigation key at the cursor's edge crosses to the
//     neighboring region when nothing is pending.
//   - Everything else is fed to the sequence parser for the active mode.
//
// # Editing
//
// Every data change is a history.Transaction applied through the grid's
// source.Source. A failed apply leaves the source untouched, records
// nothing and reports a Notification. Sources that persist asynchronously
// report late failures to the host, which calls Rollback on the engine's
// goroutine.
//
// # Thread Safety
//
// An Engine is not safe for concurrent use. The host owns the goroutine
// that calls HandleKey and Rollback.
//
// # Basic Usage
//
//	tbl := source.NewTable([]string{"id", "name"}, rows)
//	e := engine.New(tbl)
//
//	res := e.HandleKey(key.NewRuneEvent('j', key.ModNone))
//	fmt.Println(res.Cursor) // (1,0)
package engine
