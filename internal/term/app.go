package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keygrid/internal/config/watcher"
	"github.com/dshills/keygrid/internal/engine"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/grid/source/sqlite"
	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/keymap"
	"github.com/dshills/keygrid/internal/logging"
)

// syncTimeout bounds a save.
const syncTimeout = 5 * time.Second

// Syncer flushes pending writes.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithKeymapReload reloads the keymap file at path through loader whenever
// w reports a change to it.
func WithKeymapReload(w *watcher.Watcher, loader *keymap.Loader, path string) Option {
	return func(a *App) {
		a.watcher = w
		a.loader = loader
		a.keymapPath = path
	}
}

// WithMirror connects a mirrored store: failures roll the engine back and
// saves wait for the mirror to drain.
func WithMirror(s *sqlite.Store) Option {
	return func(a *App) {
		a.failures = s.Failures()
		a.syncer = s
	}
}

// WithTables lists table names in the sidebar and tab strip.
func WithTables(names ...string) Option {
	return func(a *App) {
		a.view.Sidebar.SetItems(names...)
		if len(names) > 0 {
			a.view.Tabs.SetItems(names[0])
		}
	}
}

// App runs an engine on a tcell screen.
type App struct {
	screen tcell.Screen
	engine *engine.Engine
	view   View
	logger *logging.Logger

	watcher    *watcher.Watcher
	loader     *keymap.Loader
	keymapPath string

	failures <-chan sqlite.Failure
	syncer   Syncer

	status string
	level  engine.Level
	quit   bool
}

// New creates an app. The screen is initialized by Run.
func New(screen tcell.Screen, e *engine.Engine, opts ...Option) *App {
	a := &App{
		screen: screen,
		engine: e,
		logger: logging.Nop(),
		view: View{
			Toolbar: focus.NewListRegion(true, "Connect", "Refresh", "Save", "Export", "Import", "History"),
			Tabs:    focus.NewListRegion(true),
			Sidebar: focus.NewListRegion(false),
			Editor:  focus.NewTextRegion(""),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("term")

	r := e.Router()
	r.SetRegion(focus.Toolbar, a.view.Toolbar)
	r.SetRegion(focus.TabStrip, a.view.Tabs)
	r.SetRegion(focus.Sidebar, a.view.Sidebar)
	r.SetRegion(focus.TextEditor, a.view.Editor)
	return a
}

// Status returns the last message shown.
func (a *App) Status() (string, engine.Level) {
	return a.status, a.level
}

// Run initializes the screen and processes events until the user quits or
// ctx ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var (
		fileEvents <-chan watcher.Event
		fileErrors <-chan error
	)
	if a.watcher != nil {
		fileEvents = a.watcher.Events()
		fileErrors = a.watcher.Errors()
	}

	a.resize()
	a.setStatus(engine.LevelInfo, "Ctrl+Q quits")
	a.draw()

	for !a.quit {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			a.HandleEvent(ctx, ev)
		case f := <-a.failures:
			a.Rollback(ctx, f)
		case ev, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			a.ReloadKeymap(ev)
		case err, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			a.setStatus(engine.LevelWarn, "watching keymap: "+err.Error())
		}
		a.draw()
	}
	return nil
}

func (a *App) draw() {
	a.view.Draw(a.screen, a.engine, a.status, a.level)
}

func (a *App) resize() {
	w, h := a.screen.Size()
	a.view.Layout = NewLayout(w, h)
	rows, cols := a.view.Layout.Viewport()
	a.engine.Resize(rows, cols)
}

// HandleEvent processes one screen event.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventKey:
		if quitKey(ev) {
			a.quit = true
			return
		}
		kev, ok := Translate(ev)
		if !ok {
			return
		}
		a.apply(ctx, a.engine.HandleKey(kev))
	}
}

// Quit reports whether a quit key was pressed.
func (a *App) Quit() bool {
	return a.quit
}

// Rollback reverts a transaction the mirror could not write.
func (a *App) Rollback(ctx context.Context, f sqlite.Failure) {
	a.logger.Warn("mirror write failed", "transaction", f.ID.String(), "error", f.Err)
	a.apply(ctx, a.engine.Rollback(ctx, f.ID, f.Err.Error()))
}

// drainFailures rolls back every failure already delivered by the mirror
// and returns how many there were.
func (a *App) drainFailures(ctx context.Context) int {
	n := 0
	for {
		select {
		case f := <-a.failures:
			a.Rollback(ctx, f)
			n++
		default:
			return n
		}
	}
}

// ReloadKeymap swaps in the changed keymap file. An invalid file keeps the
// current bindings.
func (a *App) ReloadKeymap(ev watcher.Event) {
	if a.loader == nil || ev.Removed() {
		return
	}
	set, err := a.loader.LoadSet(a.keymapPath)
	if err != nil {
		a.logger.Warn("keymap reload rejected", "path", ev.Path, "error", err)
		a.setStatus(engine.LevelError, "keymap not reloaded: "+err.Error())
		return
	}
	a.engine.SetKeymaps(set)
	a.logger.Info("keymap reloaded", "path", ev.Path)
	a.setStatus(engine.LevelInfo, "keymap reloaded")
}

func (a *App) setStatus(level engine.Level, msg string) {
	a.status, a.level = msg, level
}

func (a *App) apply(ctx context.Context, res engine.Result) {
	if res.Notification != nil {
		a.setStatus(res.Notification.Level, res.Notification.Message)
	} else if res.Transaction != nil {
		a.setStatus(engine.LevelInfo, res.Transaction.Description)
	}
	if res.Activated != "" {
		a.activate(res.Focus, res.Activated)
	}
	for _, eff := range res.Effects {
		a.effect(ctx, eff)
	}
}

func (a *App) activate(t focus.Target, item string) {
	if t == focus.Sidebar {
		a.view.Tabs.SetItems(item)
	}
	a.setStatus(engine.LevelInfo, "opened "+item)
}

func (a *App) effect(ctx context.Context, eff engine.Effect) {
	switch eff.Action {
	case command.AppSave:
		if a.syncer == nil {
			a.setStatus(engine.LevelInfo, "nothing to save")
			return
		}
		ctx, cancel := context.WithTimeout(ctx, syncTimeout)
		defer cancel()
		if err := a.syncer.Sync(ctx); err != nil {
			a.setStatus(engine.LevelError, "save failed: "+err.Error())
			return
		}
		if n := a.drainFailures(ctx); n > 0 {
			a.setStatus(engine.LevelError, fmt.Sprintf("save failed: %d write(s) rolled back", n))
			return
		}
		a.setStatus(engine.LevelInfo, "saved")

	case command.AppRefresh:
		r, ok := a.engine.Source().(source.Resumer)
		if !ok {
			a.setStatus(engine.LevelInfo, "nothing to refresh")
			return
		}
		if err := r.Resume(ctx); err != nil {
			a.setStatus(engine.LevelError, "refresh failed: "+err.Error())
			return
		}
		a.engine.SetSource(a.engine.Source())
		a.setStatus(engine.LevelInfo, "refreshed")

	case command.AppClearCommand:
		a.view.Editor.SetText("")
		a.setStatus(engine.LevelInfo, "")

	case command.TabClose:
		a.view.Tabs.SetItems()

	default:
		info, _ := command.Lookup(eff.Action)
		msg := fmt.Sprintf("%s: not available here", info.Description)
		if eff.Arg != "" {
			msg += " (" + eff.Arg + ")"
		}
		a.setStatus(engine.LevelInfo, msg)
	}
}
