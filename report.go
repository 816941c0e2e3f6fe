package diffpattern

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Metadata describes where an analysis came from.
type Metadata struct {
	Timestamp      time.Time
	RepositoryPath string
	Range          string   // Commit or "from..to" that was analyzed
	Commits        []string // Commit identifiers making up Range
}

// Report is an analysis together with its metadata, ready for rendering.
type Report struct {
	Metadata Metadata
	Analysis Analysis
}

// Format identifies a report serialization.
type Format string

// Supported report formats.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatJSONL    Format = "jsonl"
	FormatYAML     Format = "yaml"
)

var formatExtensions = map[Format]string{
	FormatMarkdown: "md",
	FormatJSON:     "json",
	FormatCSV:      "csv",
	FormatHTML:     "html",
	FormatJSONL:    "jsonl",
	FormatYAML:     "yaml",
}

// ParseFormat resolves a user-supplied format name (case-insensitive; "md"
// is accepted for markdown).
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "md" {
		f = FormatMarkdown
	}
	if _, ok := formatExtensions[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Extension returns the file extension for reports in this format, without the dot.
func (f Format) Extension() string {
	return formatExtensions[f]
}

// Renderer serializes a report.
type Renderer interface {
	Render(w io.Writer, report *Report) error
}

// ReportWriter persists a rendered report and returns where it was written.
type ReportWriter interface {
	Write(report *Report, format Format, body []byte) (string, error)
}
