// Package gitdiff implements diff parsing using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffpattern"
	"github.com/go-logr/logr"
)

// Compile-time interface verification.
var _ diffpattern.Parser = (*Parser)(nil)

// Parser splits multi-file unified diff content into per-file changes.
type Parser struct {
	log logr.Logger
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{log: logr.Discard()}
}

// WithLogger returns a copy of p that reports skipped content to log.
func (p *Parser) WithLogger(log logr.Logger) *Parser {
	c := *p
	c.log = log
	return &c
}

// Parse reads diff content and returns one FileChange per file, in the
// order the files appear.
func (p *Parser) Parse(r io.Reader) ([]diffpattern.FileChange, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	changes := make([]diffpattern.FileChange, 0, len(files))
	for _, f := range files {
		if missingHunks(f) {
			p.log.Info("file has a diff header but no parseable hunks", "path", f.NewName)
		}
		changes = append(changes, convertFile(f))
	}
	return changes, nil
}

func convertFile(f *gitdiff.File) diffpattern.FileChange {
	fc := diffpattern.FileChange{
		Path: f.NewName,
		Kind: fileKind(f),
	}
	// Deleted files only carry the old name.
	if f.IsDelete || fc.Path == "" {
		fc.Path = f.OldName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", headerName("a/", f.OldName))
	fmt.Fprintf(&b, "+++ %s\n", headerName("b/", f.NewName))
	for _, frag := range f.TextFragments {
		writeFragment(&b, frag)
	}
	fc.RawDiff = b.String()

	return fc
}

// missingHunks reports whether f is a plain content modification whose
// hunks were all rejected, as happens with malformed "@@" headers.
func missingHunks(f *gitdiff.File) bool {
	if len(f.TextFragments) > 0 || f.IsBinary {
		return false
	}
	if f.IsNew || f.IsDelete || f.IsRename || f.IsCopy {
		return false
	}
	return f.OldMode == f.NewMode
}

func fileKind(f *gitdiff.File) diffpattern.ChangeKind {
	switch {
	case f.IsNew:
		return diffpattern.KindAdd
	case f.IsDelete:
		return diffpattern.KindDelete
	case f.IsRename:
		return diffpattern.KindRename
	case f.IsCopy:
		return diffpattern.KindCopy
	default:
		return diffpattern.KindModify
	}
}

func headerName(prefix, name string) string {
	if name == "" {
		return "/dev/null"
	}
	return prefix + name
}

// writeFragment writes the "@@" header and the marked lines of frag.
func writeFragment(b *strings.Builder, frag *gitdiff.TextFragment) {
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@", frag.OldPosition, frag.OldLines, frag.NewPosition, frag.NewLines)
	if frag.Comment != "" {
		b.WriteString(" " + frag.Comment)
	}
	b.WriteByte('\n')

	for _, l := range frag.Lines {
		switch l.Op {
		case gitdiff.OpAdd:
			b.WriteByte('+')
		case gitdiff.OpDelete:
			b.WriteByte('-')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSuffix(l.Line, "\n"))
		b.WriteByte('\n')
		if l.NoEOL() {
			b.WriteString("\\ No newline at end of file\n")
		}
	}
}
