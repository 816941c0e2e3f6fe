package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/diffpattern"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var (
	_ diffpattern.Renderer = (*JSON)(nil)
	_ diffpattern.Renderer = (*CSV)(nil)
	_ diffpattern.Renderer = (*HTML)(nil)
	_ diffpattern.Renderer = (*YAML)(nil)
)

// New returns the renderer for format. JSONL is served by package jsonl.
func New(format diffpattern.Format) (diffpattern.Renderer, error) {
	switch format {
	case diffpattern.FormatMarkdown:
		return NewMarkdown(), nil
	case diffpattern.FormatJSON:
		return &JSON{}, nil
	case diffpattern.FormatCSV:
		return &CSV{}, nil
	case diffpattern.FormatHTML:
		return NewHTML(), nil
	case diffpattern.FormatYAML:
		return &YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", diffpattern.ErrUnknownFormat, format)
	}
}

// JSON renders the report as one indented JSON document.
type JSON struct{}

// Render writes report as JSON to w.
func (j *JSON) Render(w io.Writer, report *diffpattern.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(report)); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

// YAML renders the report as a YAML document.
type YAML struct{}

// Render writes report as YAML to w.
func (y *YAML) Render(w io.Writer, report *diffpattern.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(report)); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return enc.Close()
}

// csvHeader is the first row of CSV reports.
var csvHeader = []string{
	"Group_ID",
	"Pattern_Description",
	"Similarity_Score",
	"Affected_Files_Count",
	"Files_List",
	"Change_Type",
	"Category",
	"Representative_File",
}

// CSV renders one row per change group.
type CSV struct{}

// Render writes report as CSV to w.
func (c *CSV) Render(w io.Writer, report *diffpattern.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	for _, g := range report.Analysis.Groups {
		rep := g.Representative()
		row := []string{
			g.PatternID,
			g.Description,
			strconv.FormatFloat(g.SimilarityScore, 'f', 3, 64),
			strconv.Itoa(len(g.AffectedFiles)),
			strings.Join(g.AffectedFiles, ";"),
			rep.Kind.String(),
			g.Category.String(),
			rep.FilePath,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("render csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	return nil
}

// HTML renders the markdown report converted to a standalone HTML page.
type HTML struct {
	markdown *Markdown
	md       goldmark.Markdown
}

// NewHTML returns an HTML renderer.
func NewHTML() *HTML {
	return &HTML{
		markdown: NewMarkdown(),
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render writes report as HTML to w.
func (h *HTML) Render(w io.Writer, report *diffpattern.Report) error {
	var src bytes.Buffer
	if err := h.markdown.Render(&src, report); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := h.md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	title := "Git Changes Analysis Report"
	if report.Metadata.Range != "" {
		title += " - " + report.Metadata.Range
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body.String())
	return err
}
