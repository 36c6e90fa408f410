// Package clipboard connects note copying to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/aretw0/notepad/pkg/core"
)

// System writes to the operating system clipboard.
type System struct{}

// WriteAll implements core.Clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return core.ErrClipboard
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", core.ErrClipboard, err)
	}
	return nil
}

// Buffer keeps the last copied text in memory; used when no system
// clipboard is wanted (tests, headless sessions).
type Buffer struct {
	Text string
	Err  error
}

// WriteAll implements core.Clipboard.
func (b *Buffer) WriteAll(text string) error {
	if b.Err != nil {
		return b.Err
	}
	b.Text = text
	return nil
}

var _ core.Clipboard = System{}
var _ core.Clipboard = (*Buffer)(nil)
