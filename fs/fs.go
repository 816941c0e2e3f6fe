// Package fs writes rendered reports to a filesystem.
package fs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/diffpattern"
	"github.com/spf13/afero"
)

// Compile-time interface verification.
var _ diffpattern.ReportWriter = (*Writer)(nil)

// DefaultOutputDir is where reports go when no directory is configured.
const DefaultOutputDir = "./output"

// shortIDLength is how much of a revision goes into a report file name.
const shortIDLength = 8

// Writer stores reports under one directory of an afero filesystem.
type Writer struct {
	fs  afero.Fs
	dir string
	// Now returns the time used in file names when a report carries no
	// timestamp.
	Now func() time.Time
}

// NewWriter returns a Writer rooted at dir on fs. An empty dir means
// DefaultOutputDir.
func NewWriter(fs afero.Fs, dir string) *Writer {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return &Writer{fs: fs, dir: dir, Now: time.Now}
}

// NewOsWriter returns a Writer on the operating system filesystem.
func NewOsWriter(dir string) *Writer {
	return NewWriter(afero.NewOsFs(), dir)
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write creates the output directory if needed and stores body under
// "diff_analysis_<id>_<yyyyMMdd_HHmmss>.<ext>". It returns the file path.
func (w *Writer) Write(report *diffpattern.Report, format diffpattern.Format, body []byte) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	ts := report.Metadata.Timestamp
	if ts.IsZero() {
		ts = w.Now()
	}
	name := fmt.Sprintf("diff_analysis_%s_%s.%s", ReportID(report.Metadata), ts.Format("20060102_150405"), format.Extension())
	path := filepath.Join(w.dir, name)

	if err := afero.WriteFile(w.fs, path, body, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// ReportID derives the file name id from the analyzed revisions: the first
// eight characters of a single commit, "<from>-<to>" for a range, or "diff"
// when no revision was involved.
func ReportID(md diffpattern.Metadata) string {
	var parts []string
	for _, c := range md.Commits {
		parts = append(parts, short(c))
	}
	if len(parts) == 0 {
		return "diff"
	}
	return strings.Join(parts, "-")
}

func short(rev string) string {
	if len(rev) > shortIDLength {
		return rev[:shortIDLength]
	}
	return rev
}
