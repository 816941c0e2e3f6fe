package mock

import (
	"io"

	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var (
	_ diffpattern.Renderer     = (*Renderer)(nil)
	_ diffpattern.ReportWriter = (*ReportWriter)(nil)
)

// Renderer is a mock implementation of diffpattern.Renderer.
type Renderer struct {
	RenderFn func(w io.Writer, report *diffpattern.Report) error
}

func (r *Renderer) Render(w io.Writer, report *diffpattern.Report) error {
	return r.RenderFn(w, report)
}

// ReportWriter is a mock implementation of diffpattern.ReportWriter.
type ReportWriter struct {
	WriteFn func(report *diffpattern.Report, format diffpattern.Format, body []byte) (string, error)
}

func (w *ReportWriter) Write(report *diffpattern.Report, format diffpattern.Format, body []byte) (string, error) {
	return w.WriteFn(report, format, body)
}
