package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keygrid/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// Translate converts a tcell key event. Terminals send Ctrl+letter as a
// control code; those become the letter with Ctrl held. Ctrl+H and Ctrl+I
// share codes with Backspace and Tab and arrive as those keys unless the
// terminal reports the Ctrl modifier.
func Translate(ev *tcell.EventKey) (key.Event, bool) {
	k := ev.Key()
	mods := convertMod(ev.Modifiers())

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r > 0 && r <= 26 && mods.Has(key.ModCtrl) {
			r += 'a' - 1
		}
		return key.NewRuneEvent(r, mods), true

	case k == tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true

	case (k == tcell.KeyBackspace || k == tcell.KeyTab) && mods.Has(key.ModCtrl):
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods), true

	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	}

	if sk, ok := specialKeys[k]; ok {
		if k == tcell.KeyEnter || k == tcell.KeyBackspace || k == tcell.KeyTab || k == tcell.KeyEscape {
			mods = mods.Without(key.ModCtrl)
		}
		return key.NewSpecialEvent(sk, mods), true
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

var quitKeys = []key.Event{
	key.NewRuneEvent('c', key.ModCtrl),
	key.NewRuneEvent('q', key.ModCtrl),
}

// quitKey reports whether ev asks the terminal host to exit.
func quitKey(ev *tcell.EventKey) bool {
	kev, ok := Translate(ev)
	if !ok {
		return false
	}
	for _, q := range quitKeys {
		if kev.Equals(q) {
			return true
		}
	}
	return false
}
