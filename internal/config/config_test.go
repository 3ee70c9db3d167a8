package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/sequence"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := Default().Editor.MaxCount; got != sequence.DefaultMaxCount {
		t.Errorf("default max_count = %d, want %d", got, sequence.DefaultMaxCount)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[keymap]
file = "keys.toml"
watch = false

[editor]
max_undo = 50

[data]
db = "people.db"
table = "people"

[scripts]
dir = "scripts"
timeout = "250ms"

[[focus.edges]]
from = "grid"
direction = "right"
to = "sidebar"
`)

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Keymap.File != "keys.toml" || cfg.Keymap.Watch {
		t.Errorf("Keymap = %+v", cfg.Keymap)
	}
	if cfg.Editor.MaxUndo != 50 {
		t.Errorf("Editor.MaxUndo = %d, want 50", cfg.Editor.MaxUndo)
	}
	if cfg.Editor.MaxCount != Default().Editor.MaxCount {
		t.Errorf("Editor.MaxCount = %d, want default", cfg.Editor.MaxCount)
	}
	if cfg.Data.DB != "people.db" || cfg.Data.Table != "people" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Scripts.Timeout != 250*time.Millisecond {
		t.Errorf("Scripts.Timeout = %s", cfg.Scripts.Timeout)
	}

	adj, err := cfg.Adjacency()
	if err != nil {
		t.Fatalf("Adjacency: %v", err)
	}
	if got, ok := adj.Neighbor(focus.Grid, focus.Right); !ok || got != focus.Sidebar {
		t.Errorf("Grid right = %v, %v", got, ok)
	}
	if _, ok := adj.Neighbor(focus.Grid, focus.Up); ok {
		t.Error("configured edges should replace the default table")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[editor]\nmax_undo = 50\n")
	t.Setenv("KEYGRID_EDITOR_MAX_UNDO", "7")
	t.Setenv("KEYGRID_LOG_LEVEL", "warn")

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.MaxUndo != 7 {
		t.Errorf("Editor.MaxUndo = %d, want 7", cfg.Editor.MaxUndo)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"max undo", func(c *Config) { c.Editor.MaxUndo = -1 }, "editor.max_undo"},
		{"max count", func(c *Config) { c.Editor.MaxCount = 0 }, "editor.max_count"},
		{"table", func(c *Config) { c.Data.DB = "x.db"; c.Data.Table = "" }, "data.table"},
		{"queue", func(c *Config) { c.Data.QueueSize = 0 }, "data.queue_size"},
		{"timeout", func(c *Config) { c.Scripts.Timeout = 0 }, "scripts.timeout"},
		{"edges", func(c *Config) {
			c.Focus.Edges = []focus.Edge{{From: "grid", Direction: "sideways", To: "toolbar"}}
		}, "focus.edges"},
		{"self loop", func(c *Config) {
			c.Focus.Edges = []focus.Edge{{From: "grid", Direction: "up", To: "grid"}}
		}, "focus.edges"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Key != tt.key {
				t.Errorf("field = %v, want %s", fe, tt.key)
			}
		})
	}
}

func TestLoggingFile(t *testing.T) {
	cfg := Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "keygrid.log")
	lc, closeFn, err := cfg.Logging()
	if err != nil {
		t.Fatalf("Logging: %v", err)
	}
	defer closeFn()
	if lc.Output == nil {
		t.Fatal("Output not set")
	}
	if _, err := os.Stat(cfg.Log.File); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
