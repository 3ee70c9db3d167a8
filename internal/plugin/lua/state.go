package lua

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keygrid/internal/grid/cursor"
	"github.com/dshills/keygrid/internal/logging"
)

// DefaultTimeout bounds one transform call.
const DefaultTimeout = time.Second

// builtins are loaded into every state.
const builtins = `
function trim(value)
	return (value:match("^%s*(.-)%s*$"))
end

function upper(value)
	return value:upper()
end

function lower(value)
	return value:lower()
end
`

// unsafeGlobals are removed after the base library is opened.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// Option configures a Transformer.
type Option func(*Transformer)

// WithTimeout sets the per-call time budget.
func WithTimeout(d time.Duration) Option {
	return func(t *Transformer) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}

// Transformer owns one Lua state. Calls are serialized.
type Transformer struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	logger  *logging.Logger
	scripts []string
	closed  bool
}

// New creates a sandboxed state with the builtin transforms loaded.
func New(opts ...Option) (*Transformer, error) {
	t := &Transformer{timeout: DefaultTimeout, logger: logging.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithComponent("lua")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	t.L = L

	if err := t.LoadString("builtins", builtins); err != nil {
		L.Close()
		return nil, err
	}
	return t, nil
}

// LoadString runs a chunk of script source. name labels errors.
func (t *Transformer) LoadString(name, code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrStateClosed
	}
	fn, err := t.L.Load(strings.NewReader(code), name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := t.call(fn, 0); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	t.scripts = append(t.scripts, name)
	t.logger.Debug("script loaded", "script", name)
	return nil
}

// LoadFile runs a script file.
func (t *Transformer) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return t.LoadString(filepath.Base(path), string(data))
}

// LoadDir runs every *.lua file in dir in name order. A missing directory
// is not an error.
func (t *Transformer) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return err
	}
	sort.Strings(matches)
	var errs []error
	for _, m := range matches {
		if err := t.LoadFile(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Scripts returns the names of loaded chunks in load order.
func (t *Transformer) Scripts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.scripts)
}

// Has reports whether a global function name exists.
func (t *Transformer) Has(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed && t.L.GetGlobal(name).Type() == lua.LTFunction
}

// Functions returns the names of global functions defined in Lua, sorted.
func (t *Transformer) Functions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	var out []string
	t.L.G.Global.ForEach(func(k, v lua.LValue) {
		if fn, ok := v.(*lua.LFunction); ok && !fn.IsG {
			out = append(out, k.String())
		}
	})
	sort.Strings(out)
	return out
}

// Transform calls the global function name with the cell value and its
// 1-based row and column.
func (t *Transformer) Transform(name, value string, at cursor.Position) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return "", ErrStateClosed
	}

	fn := t.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return "", fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}

	if err := t.call(fn, 1, lua.LString(value), lua.LNumber(at.Row+1), lua.LNumber(at.Col+1)); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	ret := t.L.Get(-1)
	t.L.Pop(1)
	switch v := ret.(type) {
	case *lua.LNilType:
		return value, nil
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), nil
	case lua.LBool:
		return strconv.FormatBool(bool(v)), nil
	default:
		return "", fmt.Errorf("%w: %s returned %s", ErrBadResult, name, ret.Type())
	}
}

// call runs fn under the execution timeout. Callers hold t.mu.
func (t *Transformer) call(fn lua.LValue, nret int, args ...lua.LValue) error {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	t.L.SetContext(ctx)
	defer t.L.RemoveContext()

	err := t.protect(func() error {
		return t.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...)
	})
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w after %s", ErrExecutionTimeout, t.timeout)
	}
	return err
}

// protect turns Go panics raised inside the VM into errors.
func (t *Transformer) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the state.
func (t *Transformer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.L.Close()
	t.closed = true
	return nil
}
