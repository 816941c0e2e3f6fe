package lipgloss

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpattern"
)

// maxTopPatterns is how many groups the verbose summary lists.
const maxTopPatterns = 5

// Summary prints the end-of-run console summary.
type Summary struct {
	renderer *lipgloss.Renderer
	theme    diffpattern.Theme
	Verbose  bool
}

// NewSummary creates a Summary writing through renderer with the given theme.
// A nil renderer uses the lipgloss default.
func NewSummary(renderer *lipgloss.Renderer, theme diffpattern.Theme) *Summary {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Summary{renderer: renderer, theme: theme}
}

// Print writes the summary of analysis to w. savedTo is the report path;
// it is omitted when empty.
func (s *Summary) Print(w io.Writer, analysis *diffpattern.Analysis, savedTo string) error {
	st := s.theme.Styles()
	title := styleFromColorPair(st.Title, s.renderer).Bold(true)
	count := styleFromColorPair(st.Count, s.renderer)
	muted := styleFromColorPair(st.Muted, s.renderer)
	desc := styleFromColorPair(st.Description, s.renderer)

	sum := analysis.Summary
	pw := &printer{w: w}
	pw.printf("%s\n", title.Render("Analysis complete!"))
	pw.printf("- Analyzed %s changes across %s files\n",
		count.Render(fmt.Sprint(sum.TotalChanges)), count.Render(fmt.Sprint(sum.TotalFiles)))
	pw.printf("- Found %s change groups\n", count.Render(fmt.Sprint(sum.TotalGroups)))
	pw.printf("- Identified %s unique patterns\n", count.Render(fmt.Sprint(sum.UniquePatterns)))
	if savedTo != "" {
		pw.printf("- Report saved to: %s\n", muted.Render(savedTo))
	}

	if s.Verbose && len(analysis.Groups) > 0 {
		pw.printf("\n%s\n", title.Render("Top change patterns:"))
		for i, g := range analysis.Groups {
			if i == maxTopPatterns {
				break
			}
			pw.printf("  - %s: %s changes (%s files)\n",
				desc.Render(g.Description),
				count.Render(fmt.Sprint(g.Size())),
				count.Render(fmt.Sprint(len(g.AffectedFiles))))
		}
	}
	return pw.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp diffpattern.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}
