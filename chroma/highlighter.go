// Package chroma provides diff highlighting using the chroma library.
package chroma

import (
	"path/filepath"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var _ diffpattern.Highlighter = (*Highlighter)(nil)

// Highlighter colors unified diff text by tokenizing it with chroma's diff
// lexer and styling each token from a theme.
type Highlighter struct {
	lexer  chromalib.Lexer
	styles map[chromalib.TokenType]lipgloss.Style
}

// NewHighlighter creates a Highlighter for theme. A nil renderer uses the
// lipgloss default.
func NewHighlighter(theme diffpattern.Theme, renderer *lipgloss.Renderer) *Highlighter {
	st := theme.Styles()
	style := func(cp diffpattern.ColorPair) lipgloss.Style {
		s := lipgloss.NewStyle()
		if renderer != nil {
			s = renderer.NewStyle()
		}
		if cp.Foreground != "" {
			s = s.Foreground(lipgloss.Color(cp.Foreground))
		}
		if cp.Background != "" {
			s = s.Background(lipgloss.Color(cp.Background))
		}
		return s
	}

	var lexer chromalib.Lexer
	if l := lexers.Get("diff"); l != nil {
		lexer = chromalib.Coalesce(l)
	}

	return &Highlighter{
		lexer: lexer,
		styles: map[chromalib.TokenType]lipgloss.Style{
			chromalib.GenericInserted:   style(st.Added),
			chromalib.GenericDeleted:    style(st.Deleted),
			chromalib.GenericSubheading: style(st.HunkHeader),
			chromalib.GenericHeading:    style(st.HunkHeader).Bold(true),
			chromalib.Text:              style(st.Context),
		},
	}
}

// Highlight returns diff with terminal colors applied line by line.
// Input the lexer cannot handle is returned unchanged.
func (h *Highlighter) Highlight(diff string) string {
	if diff == "" || h.lexer == nil {
		return diff
	}

	iterator, err := h.lexer.Tokenise(nil, diff)
	if err != nil {
		return diff
	}

	var sb strings.Builder
	for tok := iterator(); tok != chromalib.EOF; tok = iterator() {
		style, ok := h.styles[tok.Type]
		if !ok {
			sb.WriteString(tok.Value)
			continue
		}
		// Style per line so trailing newlines stay outside the escape codes.
		lines := strings.SplitAfter(tok.Value, "\n")
		for _, line := range lines {
			body := strings.TrimSuffix(line, "\n")
			if body != "" {
				sb.WriteString(style.Render(body))
			}
			if len(body) < len(line) {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// Language returns chroma's language name for path, or an empty string if
// the language cannot be determined.
func Language(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
