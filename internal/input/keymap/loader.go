package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keygrid/internal/input/mode"
)

// Format is a keymap file encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatJSON
	FormatYAML
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatTOML, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// File is the on-disk shape of a keymap override file.
type File struct {
	// Replace discards the defaults instead of merging onto them.
	Replace bool `toml:"replace" json:"replace" yaml:"replace"`

	Normal []Binding `toml:"normal" json:"normal" yaml:"normal"`
	Select []Binding `toml:"select" json:"select" yaml:"select"`
	Insert []Binding `toml:"insert" json:"insert" yaml:"insert"`
	Global []Binding `toml:"global" json:"global" yaml:"global"`
}

// Loader reads keymap files.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a loader that resolves relative names against paths.
func NewLoader(paths ...string) *Loader {
	return &Loader{searchPaths: append([]string(nil), paths...)}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Resolve finds name in the search paths. Absolute paths and paths that
// exist relative to the working directory are returned as is.
func (l *Loader) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	for _, dir := range l.searchPaths {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("keymap file %q not found: %w", name, os.ErrNotExist)
}

// LoadFile reads and decodes a keymap file.
func (l *Loader) LoadFile(name string) (*File, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	f, err := l.Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses a keymap file. Unknown fields are rejected.
func (l *Loader) Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding keymap JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding keymap YAML: %w", err)
		}
	default:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding keymap TOML: %w", err)
		}
	}
	return &f, nil
}

// LoadSet reads name and compiles it onto the defaults.
func (l *Loader) LoadSet(name string) (*Set, error) {
	f, err := l.LoadFile(name)
	if err != nil {
		return nil, err
	}
	return f.Build(name)
}

// Build compiles the file onto the default keymaps, or onto empty ones when
// Replace is set.
func (f *File) Build(source string) (*Set, error) {
	base := func(def func() *Keymap, name string) *Keymap {
		if f.Replace {
			return NewKeymap(name)
		}
		return def()
	}
	normal := base(DefaultNormal, mode.NameNormal).Merge(f.Normal, source)
	sel := base(DefaultSelect, mode.NameSelect).Merge(f.Select, source)
	insert := base(DefaultInsert, mode.NameInsert).Merge(f.Insert, source)
	global := base(DefaultGlobal, GlobalName).Merge(f.Global, source)
	return NewSet(normal, sel, insert, global)
}

// Encode writes f in the given format.
func (f *File) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	default:
		return toml.NewEncoder(w).Encode(f)
	}
}

// ExportFile returns the bindings of s as a replacing keymap file.
func ExportFile(s *Set) *File {
	return &File{
		Replace: true,
		Normal:  s.For(mode.Normal).Bindings(),
		Select:  s.For(mode.Select).Bindings(),
		Insert:  s.For(mode.Insert).Bindings(),
		Global:  s.Global().Bindings(),
	}
}
