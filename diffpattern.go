// Package diffpattern provides domain types for grouping repeated edit
// patterns found in unified diffs.
package diffpattern

import (
	"context"
	"io"
)

// ChangeKind is the file-level operation a hunk belongs to.
type ChangeKind int

// Change kinds.
const (
	KindModify ChangeKind = iota
	KindAdd
	KindDelete
	KindRename
	KindCopy
)

// String returns the kind as used in pattern descriptions ("Add", "Delete", ...).
func (k ChangeKind) String() string {
	switch k {
	case KindAdd:
		return "Add"
	case KindDelete:
		return "Delete"
	case KindRename:
		return "Rename"
	case KindCopy:
		return "Copy"
	default:
		return "Modify"
	}
}

// ParseChangeKind is the inverse of ChangeKind.String. Unknown names map
// to KindModify.
func ParseChangeKind(name string) ChangeKind {
	switch name {
	case "Add":
		return KindAdd
	case "Delete":
		return KindDelete
	case "Rename":
		return KindRename
	case "Copy":
		return KindCopy
	default:
		return KindModify
	}
}

// LineRange is the positional span of a hunk in the old and new file.
// Ends are computed as start+count-1. A malformed header yields the zero value.
type LineRange struct {
	StartOld int
	EndOld   int
	StartNew int
	EndNew   int
}

// ChangeUnit is one diff hunk together with its file and change kind.
// It is created once during extraction and never modified afterwards.
type ChangeUnit struct {
	FilePath       string
	Kind           ChangeKind
	HunkHeader     string    // The "@@ -a,b +c,d @@" line
	Lines          LineRange // Derived from HunkHeader
	RawText        string    // Complete hunk text including the header and context lines
	ContextPreview []string  // First up to 5 non-header, non-empty lines (diagnostics only)
	CanonicalForm  string    // Equality key used for clustering
	Fingerprint    string    // Hex digest of CanonicalForm
	HunkIndex      int       // 0-based position of the hunk within its file
}

// ChangedLines returns the hunk's added and removed lines with the marker
// and surrounding whitespace stripped. Empty lines are dropped.
func (u ChangeUnit) ChangedLines() []string {
	return ChangedLines(u.RawText)
}

// FileChange is one changed file as produced by a diff source: the path,
// the kind of file-level change and the unified diff text for that file.
type FileChange struct {
	Path    string
	Kind    ChangeKind
	RawDiff string
}

// ChangeGroup is a cluster of change units sharing one edit pattern.
type ChangeGroup struct {
	PatternID       string
	Members         []ChangeUnit // Order encountered during clustering
	AffectedFiles   []string     // Distinct member paths in first-seen order
	SimilarityScore float64
	Category        Category
	Description     string
}

// Size returns the number of members in the group.
func (g ChangeGroup) Size() int {
	return len(g.Members)
}

// Representative returns the first member of the group.
func (g ChangeGroup) Representative() ChangeUnit {
	return g.Members[0]
}

// FileChangeCount returns how many members of the group touch path.
func (g ChangeGroup) FileChangeCount(path string) int {
	n := 0
	for _, m := range g.Members {
		if m.FilePath == path {
			n++
		}
	}
	return n
}

// Summary aggregates counts over the final group list.
type Summary struct {
	TotalFiles     int
	TotalGroups    int
	TotalChanges   int
	UniquePatterns int // Groups with more than one member
	CategoryCounts map[Category]int
}

// Analysis is the result of one engine run: ranked groups and their summary.
type Analysis struct {
	Groups  []ChangeGroup
	Summary Summary
}

// Analyzer groups the hunks of a set of changed files into edit patterns.
type Analyzer interface {
	Analyze(files []FileChange) *Analysis
}

// Parser splits a multi-file unified diff into per-file changes.
type Parser interface {
	Parse(r io.Reader) ([]FileChange, error)
}

// DiffSource produces unified diff text from a version-control backend.
type DiffSource interface {
	// CommitDiff returns the diff between rev and its first parent,
	// or against the empty tree for a root commit.
	CommitDiff(ctx context.Context, rev string) (string, error)
	// RangeDiff returns the diff between the trees of from and to.
	RangeDiff(ctx context.Context, from, to string) (string, error)
}

// FileFilter decides which changed files take part in an analysis.
type FileFilter interface {
	Filter(files []FileChange) []FileChange
}

// Viewer displays an analysis interactively and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, report *Report) error
}

// Clipboard provides clipboard operations.
type Clipboard interface {
	Copy(content string) error
}

// Highlighter renders diff text with terminal colors.
type Highlighter interface {
	// Highlight returns the colored text, or the input unchanged if it
	// cannot be highlighted.
	Highlight(diff string) string
}
