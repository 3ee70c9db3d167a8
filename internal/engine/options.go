package engine

import (
	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/input/focus"
	"github.com/dshills/keygrid/internal/input/keymap"
	"github.com/dshills/keygrid/internal/input/sequence"
	"github.com/dshills/keygrid/internal/logging"
)

// Default configuration values.
const (
	DefaultViewportHeight = 20
	DefaultViewportWidth  = 8
)

// Transformer rewrites one cell value with a named function.
type Transformer interface {
	Transform(name, value string, at cursor.Position) (string, error)
}

// TransformFunc adapts a function to Transformer.
type TransformFunc func(name, value string, at cursor.Position) (string, error)

// Transform calls f.
func (f TransformFunc) Transform(name, value string, at cursor.Position) (string, error) {
	return f(name, value, at)
}

// Clipboard receives copied values as tab-separated text.
type Clipboard interface {
	WriteText(text string) error
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithKeymaps sets the binding tables.
func WithKeymaps(s *keymap.Set) Option {
	return func(e *Engine) {
		if s != nil {
			e.keys = s
		}
	}
}

// WithAdjacency sets the focus neighbor table.
func WithAdjacency(adj focus.Adjacency) Option {
	return func(e *Engine) {
		e.adjacency = adj
	}
}

// WithMaxUndoEntries bounds the undo stack.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndo = n
		}
	}
}

// WithMaxCount caps numeric prefixes.
func WithMaxCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCount = n
		}
	}
}

// WithViewport sets the visible rows and columns.
func WithViewport(height, width int) Option {
	return func(e *Engine) {
		e.viewport = cursor.NewViewport(height, width)
	}
}

// WithTransformer sets the cell transform backend.
func WithTransformer(t Transformer) Option {
	return func(e *Engine) {
		e.transformer = t
	}
}

// WithClipboard mirrors copies to c.
func WithClipboard(c Clipboard) Option {
	return func(e *Engine) {
		e.clipboard = c
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func defaults(e *Engine) {
	e.keys = keymap.DefaultSet()
	e.adjacency = focus.DefaultAdjacency()
	e.maxUndo = history.DefaultMaxEntries
	e.maxCount = sequence.DefaultMaxCount
	e.viewport = cursor.NewViewport(DefaultViewportHeight, DefaultViewportWidth)
	e.logger = logging.Nop()
}
