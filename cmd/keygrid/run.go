package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keygrid/internal/config/watcher"
	"github.com/dshills/keygrid/internal/engine"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/grid/source/sqlite"
	"github.com/dshills/keygrid/internal/integration/clipboard"
	"github.com/dshills/keygrid/internal/logging"
	"github.com/dshills/keygrid/internal/plugin/lua"
	"github.com/dshills/keygrid/internal/term"
)

var (
	sampleColumns = []string{"name", "email", "city", "role"}
	sampleRows    = [][]string{
		{"Ada Lovelace", "ada@example.com", "London", "analyst"},
		{"Grace Hopper", "grace@example.com", "Arlington", "admiral"},
		{"Edsger Dijkstra", "edsger@example.com", "Austin", "professor"},
		{"Barbara Liskov", "barbara@example.com", "Cambridge", "professor"},
		{"Ken Thompson", "ken@example.com", "Murray Hill", "engineer"},
		{"Frances Allen", "fran@example.com", "Yorktown", "researcher"},
		{"Donald Knuth", "don@example.com", "Stanford", "professor"},
		{"Margaret Hamilton", "margaret@example.com", "Cambridge", "engineer"},
	}
)

func newRunCmd(c *cli) *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Edit a table in the terminal",
		Long: `Edit a table in the terminal.

Without --db an in-memory sample table is edited. With --db the named
SQLite table is loaded, edits are written back in the background and a
failed write rolls the grid back to the last state the database accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), create)
		},
	}

	flags := cmd.Flags()
	flags.String("db", "", "SQLite database file")
	flags.String("table", "", "table to edit (default grid)")
	flags.String("scripts", "", "directory of Lua transform scripts")
	flags.BoolVar(&create, "create", false, "create the table with sample rows if it does not exist")
	_ = c.v.BindPFlag("data.db", flags.Lookup("db"))
	_ = c.v.BindPFlag("data.table", flags.Lookup("table"))
	_ = c.v.BindPFlag("scripts.dir", flags.Lookup("scripts"))
	return cmd
}

func (c *cli) runTUI(ctx context.Context, create bool) error {
	cfg := c.cfg
	lc, closeLog, err := cfg.Logging()
	if err != nil {
		return err
	}
	defer closeLog()
	if cfg.Log.File == "" {
		// The screen owns the terminal.
		lc.Output = io.Discard
	}
	logger := logging.NewLogger(lc)

	set, loader, err := c.keymapSet()
	if err != nil {
		return err
	}
	adj, err := cfg.Adjacency()
	if err != nil {
		return err
	}

	scripts, err := lua.New(lua.WithTimeout(cfg.Scripts.Timeout), lua.WithLogger(logger))
	if err != nil {
		return err
	}
	defer scripts.Close()
	if cfg.Scripts.Dir != "" {
		if err := scripts.LoadDir(cfg.Scripts.Dir); err != nil {
			return err
		}
	}

	var clip engine.Clipboard = &clipboard.Memory{}
	if cfg.Clipboard.System {
		clip = clipboard.Detect()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		src     source.Source
		tables  = []string{cfg.Data.Table}
		appOpts = []term.Option{term.WithLogger(logger)}
	)
	if cfg.Data.DB == "" {
		src = source.NewTable(sampleColumns, sampleRows)
	} else {
		store, names, closeDB, err := openStore(ctx, c, logger, create)
		if err != nil {
			return err
		}
		defer closeDB()
		src, tables = store, names
		appOpts = append(appOpts, term.WithMirror(store))
	}
	appOpts = append(appOpts, term.WithTables(tables...))

	eng := engine.New(src,
		engine.WithKeymaps(set),
		engine.WithAdjacency(adj),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndo),
		engine.WithMaxCount(cfg.Editor.MaxCount),
		engine.WithTransformer(scripts),
		engine.WithClipboard(clip),
		engine.WithLogger(logger),
	)

	if cfg.Keymap.File != "" && cfg.Keymap.Watch {
		w, err := watcher.New()
		if err != nil {
			return err
		}
		defer w.Close()
		path, err := loader.Resolve(cfg.Keymap.File)
		if err != nil {
			return err
		}
		if err := w.Add(path); err != nil {
			return err
		}
		appOpts = append(appOpts, term.WithKeymapReload(w, loader, path))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	logger.Info("starting", "version", version, "rows", src.RowCount(), "columns", src.ColumnCount())
	return term.New(screen, eng, appOpts...).Run(ctx)
}

func openStore(ctx context.Context, c *cli, logger *logging.Logger, create bool) (*sqlite.Store, []string, func(), error) {
	cfg := c.cfg
	opts := []sqlite.Option{sqlite.WithLogger(logger), sqlite.WithQueueSize(cfg.Data.QueueSize)}
	if create {
		opts = append(opts, sqlite.WithCreate(sampleColumns, sampleRows))
	}

	store, db, err := sqlite.OpenFile(ctx, cfg.Data.DB, cfg.Data.Table, opts...)
	if errors.Is(err, sqlite.ErrNoTable) {
		return nil, nil, nil, fmt.Errorf("%w (use --create to make it)", err)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	names, err := sqlite.Tables(ctx, db)
	if err != nil {
		store.Close()
		db.Close()
		return nil, nil, nil, err
	}
	closeDB := func() {
		store.Close()
		db.Close()
	}
	return store, names, closeDB, nil
}
