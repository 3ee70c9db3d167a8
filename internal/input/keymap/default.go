package keymap

import (
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/mode"
)

// motionBindings are shared by Normal and Select; in Select they extend the
// selection.
func motionBindings() []Binding {
	return []Binding{
		{Keys: "h", Action: command.CursorLeft},
		{Keys: "Left", Action: command.CursorLeft},
		{Keys: "l", Action: command.CursorRight},
		{Keys: "Right", Action: command.CursorRight},
		{Keys: "k", Action: command.CursorUp},
		{Keys: "Up", Action: command.CursorUp},
		{Keys: "j", Action: command.CursorDown},
		{Keys: "Down", Action: command.CursorDown},
		{Keys: "w", Action: command.CursorWordNext},
		{Keys: "b", Action: command.CursorWordPrev},
		{Keys: "g g", Action: command.CursorFirstRow},
		{Keys: "G", Action: command.CursorLastRow},
		{Keys: "g e", Action: command.CursorLastRow},
		{Keys: "g h", Action: command.CursorFirstCol},
		{Keys: "0", Action: command.CursorFirstCol},
		{Keys: "Home", Action: command.CursorFirstCol},
		{Keys: "g l", Action: command.CursorLastCol},
		{Keys: "$", Action: command.CursorLastCol},
		{Keys: "End", Action: command.CursorLastCol},
		{Keys: "<C-u>", Action: command.CursorHalfPageUp},
		{Keys: "<C-d>", Action: command.CursorHalfPageDown},
		{Keys: "PageUp", Action: command.CursorPageUp},
		{Keys: "PageDown", Action: command.CursorPageDown},
	}
}

// DefaultNormal returns the default Normal mode keymap.
func DefaultNormal() *Keymap {
	k := NewKeymap(mode.NameNormal)
	k.Counts = true
	k.Bindings = append(k.Bindings, motionBindings()...)
	k.Bindings = append(k.Bindings,
		// Editing
		Binding{Keys: "i", Action: command.ModeInsertBefore},
		Binding{Keys: "a", Action: command.ModeInsertAfter},
		Binding{Keys: "c", Action: command.ModeChange},
		Binding{Keys: "r", Action: command.ModeReplace},
		Binding{Keys: "D", Action: command.CellClear},
		Binding{Keys: "g t", Action: command.CellTransform, Arg: "trim"},
		Binding{Keys: "g U", Action: command.CellTransform, Arg: "upper"},
		Binding{Keys: "g u", Action: command.CellTransform, Arg: "lower"},

		// Selection
		Binding{Keys: "v", Action: command.ModeSelect},
		Binding{Keys: "x", Action: command.ModeSelectRow},

		// Rows
		Binding{Keys: "o", Action: command.RowInsertBelow},
		Binding{Keys: "O", Action: command.RowInsertAbove},
		Binding{Keys: "d d", Action: command.RowDelete},
		Binding{Keys: "<Space> d", Action: command.RowToggleMark},

		// Clipboard
		Binding{Keys: "y y", Action: command.CopyRow},
		Binding{Keys: "y l", Action: command.CopyCell},
		Binding{Keys: "p", Action: command.EditPaste},

		// History
		Binding{Keys: "u", Action: command.EditUndo},
		Binding{Keys: "U", Action: command.EditRedo},

		// Filters
		Binding{Keys: "/", Action: command.FilterQuick},
		Binding{Keys: "f", Action: command.FilterAdd},
	)
	return k
}

// DefaultSelect returns the default Select mode keymap.
func DefaultSelect() *Keymap {
	k := NewKeymap(mode.NameSelect)
	k.Counts = true
	k.Bindings = append(k.Bindings, motionBindings()...)
	k.Bindings = append(k.Bindings,
		Binding{Keys: "d", Action: command.SelectionDelete},
		Binding{Keys: "Delete", Action: command.SelectionDelete},
		Binding{Keys: "y", Action: command.SelectionCopy},
		Binding{Keys: "c", Action: command.SelectionChange},
		Binding{Keys: "x", Action: command.SelectionWholeRow},
		Binding{Keys: "t", Action: command.SelectionTransform, Arg: "trim"},
		Binding{Keys: "U", Action: command.SelectionTransform, Arg: "upper"},
		Binding{Keys: "u", Action: command.SelectionTransform, Arg: "lower"},
		Binding{Keys: "v", Action: command.ModeNormal},
		Binding{Keys: "Esc", Action: command.ModeNormal},
	)
	return k
}

// DefaultInsert returns the default Insert mode keymap. Printable keys
// without a binding are typed into the cell.
func DefaultInsert() *Keymap {
	k := NewKeymap(mode.NameInsert)
	k.Bindings = append(k.Bindings,
		Binding{Keys: "Enter", Action: command.InsertConfirm},
		Binding{Keys: "Tab", Action: command.InsertConfirmRight},
		Binding{Keys: "Esc", Action: command.InsertCancel},
		Binding{Keys: "Backspace", Action: command.InsertBackspace},
		Binding{Keys: "Delete", Action: command.InsertDelete},
		Binding{Keys: "Left", Action: command.InsertLeft},
		Binding{Keys: "Right", Action: command.InsertRight},
		Binding{Keys: "Home", Action: command.InsertHome},
		Binding{Keys: "End", Action: command.InsertEnd},
	)
	return k
}

// DefaultGlobal returns the default global shortcuts.
func DefaultGlobal() *Keymap {
	k := NewKeymap(GlobalName)
	k.Bindings = append(k.Bindings,
		Binding{Keys: "Ctrl+S", Action: command.AppSave},
		Binding{Keys: "Ctrl+R", Action: command.AppRefresh},
		Binding{Keys: "Ctrl+B", Action: command.FocusSidebar},
		Binding{Keys: "Ctrl+J", Action: command.FocusEditor},
		Binding{Keys: "Ctrl+N", Action: command.AppNewConnection},
		Binding{Keys: "Ctrl+Shift+N", Action: command.AppNewTable},
		Binding{Keys: "Ctrl+E", Action: command.AppExport},
		Binding{Keys: "Ctrl+I", Action: command.AppImport},
		Binding{Keys: "Ctrl+H", Action: command.AppHistory},
		Binding{Keys: "Ctrl+W", Action: command.TabClose},
		Binding{Keys: "Ctrl+Tab", Action: command.TabNext},
		Binding{Keys: "Ctrl+Shift+Tab", Action: command.TabPrev},
		Binding{Keys: "Ctrl+F", Action: command.FilterAdd},
		Binding{Keys: "Ctrl+Shift+F", Action: command.FilterClear},
		Binding{Keys: "Ctrl+G", Action: command.GridGotoRow},
		Binding{Keys: "Ctrl+L", Action: command.AppClearCommand},
		Binding{Keys: "Ctrl+K", Action: command.AppClearSearch},
	)
	return k
}
