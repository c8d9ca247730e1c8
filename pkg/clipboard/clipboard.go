// Package clipboard places aggregated text on the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates no usable clipboard backend (xclip, xsel, wl-copy, pbcopy, ...).
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer receives text destined for the clipboard.
type Writer interface {
	WriteAll(text string) error
}

type system struct{}

// System returns the Writer backed by the operating system clipboard.
func System() Writer {
	return system{}
}

func (system) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Memory is a Writer that keeps the last text written. Err, when set, is returned instead.
type Memory struct {
	Text   string
	Writes int
	Err    error
}

func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Writes++
	return nil
}
