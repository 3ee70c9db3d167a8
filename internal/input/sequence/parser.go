// Package sequence turns key events into resolved commands using a mode's
// compiled keymap.
//
// The parser never times out. A buffered prefix stays pending until a key
// completes it, a key invalidates it, or Escape cancels it.
package sequence

import (
	"strconv"
	"strings"

	"github.com/dshills/keygrid/internal/input/command"
	"github.com/dshills/keygrid/internal/input/key"
	"github.com/dshills/keygrid/internal/input/keymap"
)

// Status is the outcome of feeding one key.
type Status uint8

const (
	// StatusPending means more keys are needed. A count emptied by
	// Backspace also reports pending with the parser idle again.
	StatusPending Status = iota
	// StatusComplete means a command was resolved.
	StatusComplete
	// StatusInvalid means the buffer matched nothing and was discarded.
	StatusInvalid
	// StatusCancelled means Escape cleared the buffer without resolving a
	// command.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is returned for every key fed to the parser.
type Result struct {
	Status Status

	// Command is set when Status is StatusComplete.
	Command command.Command

	// Discarded holds the keys thrown away on StatusInvalid, including
	// the key that broke the match.
	Discarded key.Sequence
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxCount caps numeric prefixes at n.
func WithMaxCount(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.count.max = n
		}
	}
}

// Parser buffers keys against one compiled keymap.
type Parser struct {
	table *keymap.Trie
	count CountState
	keys  key.Sequence
}

// NewParser creates a parser over table.
func NewParser(table *keymap.Trie, opts ...Option) *Parser {
	p := &Parser{table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Table returns the active keymap.
func (p *Parser) Table() *keymap.Trie {
	return p.table
}

// SetTable switches keymaps, discarding anything pending.
func (p *Parser) SetTable(table *keymap.Trie) {
	p.table = table
	p.Reset()
}

// Reset clears the key buffer and count.
func (p *Parser) Reset() {
	p.count.Reset()
	p.keys = p.keys[:0]
}

// Idle reports whether nothing is buffered.
func (p *Parser) Idle() bool {
	return !p.count.Active && len(p.keys) == 0
}

// Pending returns the buffered input for status display, e.g. "5g".
func (p *Parser) Pending() string {
	var sb strings.Builder
	if p.count.Active {
		sb.WriteString(strconv.Itoa(p.count.Value))
	}
	sb.WriteString(p.keys.String())
	return sb.String()
}

// Count returns the count typed so far, zero if none.
func (p *Parser) Count() int {
	if !p.count.Active {
		return 0
	}
	return p.count.Value
}

// Feed consumes one key event.
func (p *Parser) Feed(ev key.Event) Result {
	ev = ev.Normalize()

	if ev.IsEscape() {
		p.Reset()
		if m, b := p.table.Lookup(key.Sequence{ev}); m == keymap.ExactMatch {
			return Result{Status: StatusComplete, Command: b.Command(0, key.Sequence{ev})}
		}
		return Result{Status: StatusCancelled}
	}

	if p.table.Counts() && len(p.keys) == 0 {
		if d, ok := ev.Digit(); ok && p.count.AccumulateDigit(d) {
			return Result{Status: StatusPending}
		}
		if p.count.Active && ev.Key == key.KeyBackspace && ev.Modifiers == key.ModNone {
			p.count.Backspace()
			return Result{Status: StatusPending}
		}
	}

	buf := p.keys.Append(ev)
	m, b := p.table.Lookup(buf)
	switch m {
	case keymap.ExactMatch:
		cmd := b.Command(p.Count(), buf)
		p.Reset()
		return Result{Status: StatusComplete, Command: cmd}
	case keymap.PrefixMatch:
		p.keys = buf
		return Result{Status: StatusPending}
	default:
		p.Reset()
		return Result{Status: StatusInvalid, Discarded: buf}
	}
}
