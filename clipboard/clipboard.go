// Package clipboard provides system clipboard access.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/diffpattern"
)

// Ensure System implements the Clipboard interface.
var _ diffpattern.Clipboard = (*System)(nil)

// System implements Clipboard using the platform clipboard
// (pbcopy, xclip/xsel/wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
