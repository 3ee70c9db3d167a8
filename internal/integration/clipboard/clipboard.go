// Package clipboard copies yanked text to the system clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unavailable")

// Writer accepts copied text.
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// Available reports whether the platform has a usable clipboard.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents.
func (s System) WriteText(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadText returns the clipboard contents.
func (s System) ReadText() (string, error) {
	if !s.Available() {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// Memory is an in-process clipboard for headless runs and tests.
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.n++
	return nil
}

// ReadText returns the last stored text.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Writes returns how many times WriteText was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}

// Detect returns the system clipboard when one is available and an
// in-memory clipboard otherwise.
func Detect() Writer {
	if (System{}).Available() {
		return System{}
	}
	return &Memory{}
}
