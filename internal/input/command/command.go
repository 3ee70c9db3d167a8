// Package command defines the closed vocabulary of actions the grid engine
// understands and the resolved Command value the sequence parser produces.
package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/keygrid/internal/input/key"
)

// Action names one engine operation, e.g. "cursor.down".
type Action string

// Kind groups actions by how the engine executes them.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindMotion moves the grid cursor (or extends a selection).
	KindMotion
	// KindMode changes the editing mode.
	KindMode
	// KindEdit commits a transaction.
	KindEdit
	// KindCopy captures a snapshot without touching data.
	KindCopy
	// KindHistory walks the undo/redo stacks.
	KindHistory
	// KindInsert edits the insert-mode buffer.
	KindInsert
	// KindSelect operates on the active selection.
	KindSelect
	// KindFocus moves keyboard focus to another region.
	KindFocus
	// KindEffect is forwarded to the host application untouched.
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindMotion:
		return "motion"
	case KindMode:
		return "mode"
	case KindEdit:
		return "edit"
	case KindCopy:
		return "copy"
	case KindHistory:
		return "history"
	case KindInsert:
		return "insert"
	case KindSelect:
		return "select"
	case KindFocus:
		return "focus"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Motions
const (
	CursorLeft         Action = "cursor.left"
	CursorRight        Action = "cursor.right"
	CursorUp           Action = "cursor.up"
	CursorDown         Action = "cursor.down"
	CursorWordNext     Action = "cursor.wordNext"
	CursorWordPrev     Action = "cursor.wordPrev"
	CursorFirstRow     Action = "cursor.firstRow"
	CursorLastRow      Action = "cursor.lastRow"
	CursorFirstCol     Action = "cursor.firstCol"
	CursorLastCol      Action = "cursor.lastCol"
	CursorHalfPageUp   Action = "cursor.halfPageUp"
	CursorHalfPageDown Action = "cursor.halfPageDown"
	CursorPageUp       Action = "cursor.pageUp"
	CursorPageDown     Action = "cursor.pageDown"
)

// Mode transitions
const (
	ModeInsertBefore Action = "mode.insertBefore"
	ModeInsertAfter  Action = "mode.insertAfter"
	ModeChange       Action = "mode.change"
	ModeReplace      Action = "mode.replace"
	ModeSelect       Action = "mode.select"
	ModeSelectRow    Action = "mode.selectRow"
	ModeNormal       Action = "mode.normal"
)

// Normal mode edits, copies and history
const (
	RowInsertBelow Action = "row.insertBelow"
	RowInsertAbove Action = "row.insertAbove"
	RowDelete      Action = "row.delete"
	RowToggleMark  Action = "row.toggleMark"
	CellClear      Action = "cell.clear"
	CellTransform  Action = "cell.transform"
	EditPaste      Action = "edit.paste"
	CopyRow        Action = "copy.row"
	CopyCell       Action = "copy.cell"
	EditUndo       Action = "edit.undo"
	EditRedo       Action = "edit.redo"
)

// Select mode
const (
	SelectionDelete    Action = "selection.delete"
	SelectionCopy      Action = "selection.copy"
	SelectionChange    Action = "selection.change"
	SelectionWholeRow  Action = "selection.wholeRow"
	SelectionTransform Action = "selection.transform"
)

// Insert mode buffer editing
const (
	InsertConfirm      Action = "insert.confirm"
	InsertConfirmRight Action = "insert.confirmRight"
	InsertCancel       Action = "insert.cancel"
	InsertBackspace    Action = "insert.backspace"
	InsertDelete       Action = "insert.delete"
	InsertLeft         Action = "insert.left"
	InsertRight        Action = "insert.right"
	InsertHome         Action = "insert.home"
	InsertEnd          Action = "insert.end"
)

// Focus changes
const (
	FocusSidebar Action = "focus.sidebar"
	FocusEditor  Action = "focus.editor"
	FocusGrid    Action = "focus.grid"
)

// Effects forwarded to the host
const (
	AppSave          Action = "app.save"
	AppRefresh       Action = "app.refresh"
	AppNewConnection Action = "app.newConnection"
	AppNewTable      Action = "app.newTable"
	AppExport        Action = "app.export"
	AppImport        Action = "app.import"
	AppHistory       Action = "app.history"
	AppClearCommand  Action = "app.clearCommandLine"
	AppClearSearch   Action = "app.clearSearch"
	TabClose         Action = "tab.close"
	TabNext          Action = "tab.next"
	TabPrev          Action = "tab.prev"
	FilterQuick      Action = "filter.quick"
	FilterAdd        Action = "filter.add"
	FilterClear      Action = "filter.clear"
	GridGotoRow      Action = "grid.gotoRow"
)

// Info describes an action.
type Info struct {
	Kind        Kind
	Category    string
	Description string

	// Repeatable actions multiply by the pending count.
	Repeatable bool

	// NeedsArg actions require a binding argument.
	NeedsArg bool
}

var registry = map[Action]Info{
	CursorLeft:         {KindMotion, "Movement", "Move left one column", true, false},
	CursorRight:        {KindMotion, "Movement", "Move right one column", true, false},
	CursorUp:           {KindMotion, "Movement", "Move up one row", true, false},
	CursorDown:         {KindMotion, "Movement", "Move down one row", true, false},
	CursorWordNext:     {KindMotion, "Movement", "Next non-empty cell in row", true, false},
	CursorWordPrev:     {KindMotion, "Movement", "Previous non-empty cell in row", true, false},
	CursorFirstRow:     {KindMotion, "Movement", "First row, or row N with a count", false, false},
	CursorLastRow:      {KindMotion, "Movement", "Last row, or row N with a count", false, false},
	CursorFirstCol:     {KindMotion, "Movement", "First column", false, false},
	CursorLastCol:      {KindMotion, "Movement", "Last column", false, false},
	CursorHalfPageUp:   {KindMotion, "Movement", "Half page up", true, false},
	CursorHalfPageDown: {KindMotion, "Movement", "Half page down", true, false},
	CursorPageUp:       {KindMotion, "Movement", "Page up", true, false},
	CursorPageDown:     {KindMotion, "Movement", "Page down", true, false},

	ModeInsertBefore: {KindMode, "Editing", "Edit cell, caret at start", false, false},
	ModeInsertAfter:  {KindMode, "Editing", "Edit cell, caret at end", false, false},
	ModeChange:       {KindMode, "Editing", "Replace cell contents", false, false},
	ModeReplace:      {KindMode, "Editing", "Overwrite cell from the start", false, false},
	ModeSelect:       {KindMode, "Selection", "Select cells", false, false},
	ModeSelectRow:    {KindMode, "Selection", "Select whole rows", false, false},
	ModeNormal:       {KindMode, "Selection", "Leave selection", false, false},

	RowInsertBelow: {KindEdit, "Rows", "Insert row below", true, false},
	RowInsertAbove: {KindEdit, "Rows", "Insert row above", true, false},
	RowDelete:      {KindEdit, "Rows", "Delete row", true, false},
	RowToggleMark:  {KindEdit, "Rows", "Toggle row deletion mark", true, false},
	CellClear:      {KindEdit, "Editing", "Clear cell", false, false},
	CellTransform:  {KindEdit, "Editing", "Run a transform script on the cell", false, true},
	EditPaste:      {KindEdit, "Clipboard", "Paste copied cells or rows", true, false},
	CopyRow:        {KindCopy, "Clipboard", "Copy row", true, false},
	CopyCell:       {KindCopy, "Clipboard", "Copy cell", false, false},
	EditUndo:       {KindHistory, "History", "Undo", true, false},
	EditRedo:       {KindHistory, "History", "Redo", true, false},

	SelectionDelete:    {KindSelect, "Selection", "Delete selected rows or clear cells", false, false},
	SelectionCopy:      {KindSelect, "Selection", "Copy selection", false, false},
	SelectionChange:    {KindSelect, "Selection", "Clear selection and edit the cursor cell", false, false},
	SelectionWholeRow:  {KindSelect, "Selection", "Extend selection to whole rows", false, false},
	SelectionTransform: {KindSelect, "Selection", "Run a transform script on the selection", false, true},

	InsertConfirm:      {KindInsert, "Insert", "Confirm edit", false, false},
	InsertConfirmRight: {KindInsert, "Insert", "Confirm edit and move right", false, false},
	InsertCancel:       {KindInsert, "Insert", "Cancel edit", false, false},
	InsertBackspace:    {KindInsert, "Insert", "Delete before caret", false, false},
	InsertDelete:       {KindInsert, "Insert", "Delete at caret", false, false},
	InsertLeft:         {KindInsert, "Insert", "Caret left", false, false},
	InsertRight:        {KindInsert, "Insert", "Caret right", false, false},
	InsertHome:         {KindInsert, "Insert", "Caret to start", false, false},
	InsertEnd:          {KindInsert, "Insert", "Caret to end", false, false},

	FocusSidebar: {KindFocus, "Navigation", "Toggle sidebar", false, false},
	FocusEditor:  {KindFocus, "Navigation", "Toggle SQL editor", false, false},
	FocusGrid:    {KindFocus, "Navigation", "Focus the grid", false, false},

	AppSave:          {KindEffect, "Data", "Save changes", false, false},
	AppRefresh:       {KindEffect, "Data", "Refresh data", false, false},
	AppNewConnection: {KindEffect, "Connection", "New connection", false, false},
	AppNewTable:      {KindEffect, "Data", "New table", false, false},
	AppExport:        {KindEffect, "Data", "Export", false, false},
	AppImport:        {KindEffect, "Data", "Import", false, false},
	AppHistory:       {KindEffect, "View", "Query history", false, false},
	AppClearCommand:  {KindEffect, "View", "Clear command line", false, false},
	AppClearSearch:   {KindEffect, "View", "Clear search", false, false},
	TabClose:         {KindEffect, "Tabs", "Close tab", false, false},
	TabNext:          {KindEffect, "Tabs", "Next tab", false, false},
	TabPrev:          {KindEffect, "Tabs", "Previous tab", false, false},
	FilterQuick:      {KindEffect, "Filter", "Quick filter", false, false},
	FilterAdd:        {KindEffect, "Filter", "Add filter for column", false, false},
	FilterClear:      {KindEffect, "Filter", "Clear filters", false, false},
	GridGotoRow:      {KindEffect, "Navigation", "Go to row", false, false},
}

// Lookup returns the description of a.
func Lookup(a Action) (Info, bool) {
	info, ok := registry[a]
	return info, ok
}

// Valid reports whether a is part of the vocabulary.
func (a Action) Valid() bool {
	_, ok := registry[a]
	return ok
}

// Kind returns the kind of a, KindUnknown if it is not registered.
func (a Action) Kind() Kind {
	return registry[a].Kind
}

// Namespace returns the part of the action name before the first dot.
func (a Action) Namespace() string {
	ns, _, _ := strings.Cut(string(a), ".")
	return ns
}

// All returns every registered action, sorted by name.
func All() []Action {
	out := make([]Action, 0, len(registry))
	for a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Command is a fully resolved action ready for execution.
type Command struct {
	Action Action

	// Count is the numeric prefix. Zero when none was typed.
	Count int

	// Arg is the binding argument, e.g. a transform function name.
	Arg string

	// Keys are the keys that resolved to this command, count excluded.
	Keys key.Sequence
}

// Repeat returns the effective repeat count, at least 1.
func (c Command) Repeat() int {
	if c.Count < 1 {
		return 1
	}
	return c.Count
}

// HasCount reports whether a count was typed.
func (c Command) HasCount() bool {
	return c.Count > 0
}

func (c Command) String() string {
	var sb strings.Builder
	if c.Count > 0 {
		fmt.Fprintf(&sb, "%d", c.Count)
	}
	sb.WriteString(string(c.Action))
	if c.Arg != "" {
		sb.WriteByte('(')
		sb.WriteString(c.Arg)
		sb.WriteByte(')')
	}
	return sb.String()
}
