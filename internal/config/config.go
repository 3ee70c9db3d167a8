package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/sequence"
	"github.com/dshills/keygrid/internal/logging"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "KEYGRID"

// Config holds every keygrid setting.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Keymap    KeymapConfig    `mapstructure:"keymap"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Data      DataConfig      `mapstructure:"data"`
	Scripts   ScriptsConfig   `mapstructure:"scripts"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Focus     FocusConfig     `mapstructure:"focus"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// KeymapConfig names the keymap override file.
type KeymapConfig struct {
	File  string `mapstructure:"file"`
	Watch bool   `mapstructure:"watch"`
}

// EditorConfig tunes the engine.
type EditorConfig struct {
	MaxUndo  int `mapstructure:"max_undo"`
	MaxCount int `mapstructure:"max_count"`
}

// DataConfig selects the grid's data source. An empty DB uses an in-memory
// sample table.
type DataConfig struct {
	DB        string `mapstructure:"db"`
	Table     string `mapstructure:"table"`
	QueueSize int    `mapstructure:"queue_size"`
}

// ScriptsConfig configures Lua cell transforms.
type ScriptsConfig struct {
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ClipboardConfig controls copying to the system clipboard.
type ClipboardConfig struct {
	System bool `mapstructure:"system"`
}

// FocusConfig overrides the region adjacency table. No edges keeps the
// default layout.
type FocusConfig struct {
	Edges []focus.Edge `mapstructure:"edges"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:       LogConfig{Level: "info"},
		Keymap:    KeymapConfig{Watch: true},
		Editor:    EditorConfig{MaxUndo: 1000, MaxCount: sequence.DefaultMaxCount},
		Data:      DataConfig{Table: "grid", QueueSize: 256},
		Scripts:   ScriptsConfig{Timeout: time.Second},
		Clipboard: ClipboardConfig{System: true},
	}
}

// SetDefaults registers the built-in settings with v so environment
// variables can override every key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("keymap.file", d.Keymap.File)
	v.SetDefault("keymap.watch", d.Keymap.Watch)
	v.SetDefault("editor.max_undo", d.Editor.MaxUndo)
	v.SetDefault("editor.max_count", d.Editor.MaxCount)
	v.SetDefault("data.db", d.Data.DB)
	v.SetDefault("data.table", d.Data.Table)
	v.SetDefault("data.queue_size", d.Data.QueueSize)
	v.SetDefault("scripts.dir", d.Scripts.Dir)
	v.SetDefault("scripts.timeout", d.Scripts.Timeout)
	v.SetDefault("clipboard.system", d.Clipboard.System)
}

// NewViper returns a viper instance with defaults and environment
// overrides configured.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Dir returns the per-user config directory.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "keygrid")
	}
	return ".keygrid"
}

// Load reads path, or config.toml from the user config directory and the
// working directory when path is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, invalid("log.level", "unknown level %q", c.Log.Level))
	}
	if c.Editor.MaxUndo < 0 {
		errs = append(errs, invalid("editor.max_undo", "must not be negative"))
	}
	if c.Editor.MaxCount < 1 {
		errs = append(errs, invalid("editor.max_count", "must be at least 1"))
	}
	if c.Data.DB != "" && c.Data.Table == "" {
		errs = append(errs, invalid("data.table", "required when data.db is set"))
	}
	if c.Data.QueueSize < 1 {
		errs = append(errs, invalid("data.queue_size", "must be at least 1"))
	}
	if c.Scripts.Timeout <= 0 {
		errs = append(errs, invalid("scripts.timeout", "must be positive"))
	}
	if _, err := c.Adjacency(); err != nil {
		errs = append(errs, invalid("focus.edges", "%v", err))
	}
	return errors.Join(errs...)
}

// Adjacency builds the focus table.
func (c *Config) Adjacency() (focus.Adjacency, error) {
	if len(c.Focus.Edges) == 0 {
		return focus.DefaultAdjacency(), nil
	}
	return focus.AdjacencyFromEdges(c.Focus.Edges)
}

// Logging returns the logger configuration. Logs go to Log.File when set
// since the terminal UI owns stderr while running.
func (c *Config) Logging() (logging.Config, func() error, error) {
	lc := logging.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Console = c.Log.Console
	if c.Log.File == "" {
		return lc, func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return lc, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc.Output = f
	return lc, f.Close, nil
}
