// Package clipboard adapts the system clipboard to the driven port.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// System is the OS clipboard.
type System struct{}

// New returns the system clipboard.
func New() *System {
	return &System{}
}

// WriteText replaces the clipboard contents.
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadText returns the clipboard contents.
func (System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}
