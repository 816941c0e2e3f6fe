package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpattern"
)

// tabWidth is the tab stop interval used when expanding tabs.
const tabWidth = 8

// ExpandTabs converts tab characters to spaces using 8-column tab stops.
// The column resets at every newline, so multi-line diff text expands the
// same way a terminal would show it.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			next := (col/tabWidth + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}

// groupView holds what renderGroup needs for one group page.
type groupView struct {
	group       diffpattern.ChangeGroup
	related     []string // other changed files sharing the representative's stem
	index       int
	total       int
	styles      diffpattern.Styles
	renderer    *lipgloss.Renderer
	highlighter diffpattern.Highlighter
}

// renderGroup renders the page for one group: heading, metadata line,
// representative diff, its related files and the affected files with
// per-file counts.
func renderGroup(v groupView) string {
	title := styleFromColorPair(v.styles.Title, v.renderer).Bold(true)
	desc := styleFromColorPair(v.styles.Description, v.renderer)
	badge := styleFromColorPair(v.styles.Category, v.renderer).Padding(0, 1)
	count := styleFromColorPair(v.styles.Count, v.renderer)
	muted := styleFromColorPair(v.styles.Muted, v.renderer)

	g := v.group
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		title.Render(fmt.Sprintf("Group %d/%d:", v.index+1, v.total)),
		desc.Render(g.Description))
	fmt.Fprintf(&b, "%s %s %s\n\n",
		muted.Render("pattern "+g.PatternID),
		badge.Render(g.Category.DisplayName()),
		count.Render(fmt.Sprintf("%d changes in %d files", g.Size(), len(g.AffectedFiles))))

	if g.Size() > 0 {
		rep := g.Representative()
		b.WriteString(muted.Render(rep.FilePath))
		b.WriteString("\n")
		diff := ExpandTabs(rep.RawText)
		if v.highlighter != nil {
			diff = v.highlighter.Highlight(diff)
		}
		b.WriteString(diff)
		if !strings.HasSuffix(diff, "\n") {
			b.WriteString("\n")
		}
	}

	if len(v.related) > 0 {
		fmt.Fprintf(&b, "%s %s\n", muted.Render("related:"), strings.Join(v.related, ", "))
	}

	if len(g.AffectedFiles) > 0 {
		b.WriteString("\n")
		b.WriteString(title.Render("Affected files:"))
		b.WriteString("\n")
		for _, path := range g.AffectedFiles {
			n := g.FileChangeCount(path)
			fmt.Fprintf(&b, "  %s %s\n", path, muted.Render(plural(n, "change")))
		}
	}

	return b.String()
}

// plural formats "1 change" or "N changes".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("(1 %s)", noun)
	}
	return fmt.Sprintf("(%d %ss)", n, noun)
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
