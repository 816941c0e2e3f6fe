package mock

import (
	"context"

	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var (
	_ diffpattern.Viewer      = (*Viewer)(nil)
	_ diffpattern.Clipboard   = (*Clipboard)(nil)
	_ diffpattern.Highlighter = (*Highlighter)(nil)
)

// Viewer is a mock implementation of diffpattern.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, report *diffpattern.Report) error
}

func (v *Viewer) View(ctx context.Context, report *diffpattern.Report) error {
	return v.ViewFn(ctx, report)
}

// Clipboard is a mock implementation of diffpattern.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Highlighter is a mock implementation of diffpattern.Highlighter.
type Highlighter struct {
	HighlightFn func(diff string) string
}

func (h *Highlighter) Highlight(diff string) string {
	return h.HighlightFn(diff)
}
