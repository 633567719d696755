// Package clipboard provides access to the operating system text clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/hpungsan/clipmesh/internal/errors"
)

// Provider reads and writes the text clipboard. ReadText may fail transiently
// when the clipboard is empty, holds non-text data, or is locked by another app.
type Provider interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// System is the Provider backed by the host clipboard.
type System struct{}

// NewSystem returns the host clipboard provider, or a CLIPBOARD error when the
// platform has no usable clipboard utility (e.g. no xclip/xsel/wl-copy on Linux).
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, errors.NewClipboardUnavailable("no clipboard utility available on this system")
	}
	return &System{}, nil
}

// ReadText returns the current clipboard text.
func (*System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents with text.
func (*System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process Provider, used when no system clipboard exists and in tests.
type Memory struct {
	mu   sync.Mutex
	text string
	set  bool
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText fails until something has been written.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", fmt.Errorf("read clipboard: empty")
	}
	return m.text, nil
}

// WriteText stores text for later reads.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.set = true
	return nil
}
