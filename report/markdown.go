package report

import (
	"cmp"
	"embed"
	"fmt"
	"io"
	"slices"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var _ diffpattern.Renderer = (*Markdown)(nil)

const (
	// maxListedFiles caps the affected-file list of a group.
	maxListedFiles = 20
	// maxInlineChanges is the largest group whose members are all listed.
	maxInlineChanges = 5
)

//go:embed templates/markdown.md.tmpl
var templates embed.FS

var markdownTemplate = template.Must(
	template.New("markdown.md.tmpl").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templates, "templates/markdown.md.tmpl"),
)

// Markdown renders the human-readable report.
type Markdown struct{}

// NewMarkdown returns a markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Render writes report as markdown to w.
func (m *Markdown) Render(w io.Writer, report *diffpattern.Report) error {
	if err := markdownTemplate.Execute(w, newMarkdownView(report)); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

type markdownView struct {
	Summary        diffpattern.Summary
	Timestamp      time.Time
	RepositoryPath string
	Commits        []string
	Categories     []categoryLine
	Groups         []groupView
}

type categoryLine struct {
	Name  string
	Count int
	order diffpattern.Category
}

type groupView struct {
	PatternID      string
	Description    string
	Similarity     string
	FileCount      int
	Category       string
	Representative string
	Files          []fileLine
	MoreFiles      int
	Changes        []changeView
}

type fileLine struct {
	Path  string
	Count int
}

type changeView struct {
	Path string
	Diff string
}

func newMarkdownView(r *diffpattern.Report) markdownView {
	v := markdownView{
		Summary:        r.Analysis.Summary,
		Timestamp:      r.Metadata.Timestamp,
		RepositoryPath: r.Metadata.RepositoryPath,
		Commits:        r.Metadata.Commits,
		Categories:     sortedCategories(r.Analysis.Summary.CategoryCounts),
	}
	for _, g := range r.Analysis.Groups {
		v.Groups = append(v.Groups, newGroupView(g))
	}
	return v
}

// sortedCategories orders categories by descending count, then by
// declaration order.
func sortedCategories(counts map[diffpattern.Category]int) []categoryLine {
	lines := make([]categoryLine, 0, len(counts))
	for c, n := range counts {
		lines = append(lines, categoryLine{Name: c.DisplayName(), Count: n, order: c})
	}
	slices.SortFunc(lines, func(a, b categoryLine) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	return lines
}

func newGroupView(g diffpattern.ChangeGroup) groupView {
	gv := groupView{
		PatternID:      g.PatternID,
		Description:    g.Description,
		Similarity:     FormatPercent(g.SimilarityScore),
		FileCount:      len(g.AffectedFiles),
		Category:       g.Category.DisplayName(),
		Representative: g.Representative().RawText,
	}
	for i, f := range g.AffectedFiles {
		if i == maxListedFiles {
			gv.MoreFiles = len(g.AffectedFiles) - maxListedFiles
			break
		}
		gv.Files = append(gv.Files, fileLine{Path: f, Count: g.FileChangeCount(f)})
	}
	if g.Size() > 1 && g.Size() <= maxInlineChanges {
		for _, m := range g.Members {
			gv.Changes = append(gv.Changes, changeView{Path: m.FilePath, Diff: m.RawText})
		}
	}
	return gv
}

// FormatPercent formats a 0..1 score as a percentage with one decimal.
func FormatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
