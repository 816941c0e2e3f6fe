// Package report renders analyses as markdown, JSON, CSV, HTML and YAML.
package report

import (
	"time"

	"github.com/fwojciec/diffpattern"
)

// Document is the structured form shared by the JSON, YAML and JSONL
// encodings.
type Document struct {
	Metadata        MetadataDoc    `json:"analysis_metadata" yaml:"analysis_metadata"`
	CategorySummary map[string]int `json:"category_summary" yaml:"category_summary"`
	ChangeGroups    []GroupDoc     `json:"change_groups" yaml:"change_groups"`
}

// MetadataDoc describes the analyzed input and the summary counts.
type MetadataDoc struct {
	Timestamp      string   `json:"timestamp" yaml:"timestamp"`
	TotalFiles     int      `json:"total_files" yaml:"total_files"`
	TotalGroups    int      `json:"total_groups" yaml:"total_groups"`
	TotalChanges   int      `json:"total_changes" yaml:"total_changes"`
	UniquePatterns int      `json:"unique_patterns" yaml:"unique_patterns"`
	RepositoryPath string   `json:"repository_path" yaml:"repository_path"`
	CommitHashes   []string `json:"commit_hashes" yaml:"commit_hashes"`
	GitRange       string   `json:"git_range" yaml:"git_range"`
}

// GroupDoc is one change group.
type GroupDoc struct {
	GroupID            string     `json:"group_id" yaml:"group_id"`
	PatternDescription string     `json:"pattern_description" yaml:"pattern_description"`
	SimilarityScore    float64    `json:"similarity_score" yaml:"similarity_score"`
	AffectedFilesCount int        `json:"affected_files_count" yaml:"affected_files_count"`
	AffectedFiles      []string   `json:"affected_files" yaml:"affected_files"`
	Category           string     `json:"category" yaml:"category"`
	ChangeBlocks       []BlockDoc `json:"change_blocks" yaml:"change_blocks"`
}

// BlockDoc is one change unit of a group.
type BlockDoc struct {
	FilePath      string        `json:"file_path" yaml:"file_path"`
	ChangeType    string        `json:"change_type" yaml:"change_type"`
	HunkHeader    string        `json:"hunk_header" yaml:"hunk_header"`
	HunkIndex     int           `json:"hunk_index" yaml:"hunk_index"`
	DiffContent   string        `json:"diff_content" yaml:"diff_content"`
	CanonicalForm string        `json:"canonical_form,omitempty" yaml:"canonical_form,omitempty"`
	Fingerprint   string        `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	LineNumbers   LineNumberDoc `json:"line_numbers" yaml:"line_numbers"`
}

// LineNumberDoc is the line range of a change unit.
type LineNumberDoc struct {
	StartOld int `json:"start_old" yaml:"start_old"`
	EndOld   int `json:"end_old" yaml:"end_old"`
	StartNew int `json:"start_new" yaml:"start_new"`
	EndNew   int `json:"end_new" yaml:"end_new"`
}

// NewDocument converts a report into its structured form.
func NewDocument(r *diffpattern.Report) Document {
	s := r.Analysis.Summary
	doc := Document{
		Metadata: MetadataDoc{
			Timestamp:      r.Metadata.Timestamp.Format(time.RFC3339),
			TotalFiles:     s.TotalFiles,
			TotalGroups:    s.TotalGroups,
			TotalChanges:   s.TotalChanges,
			UniquePatterns: s.UniquePatterns,
			RepositoryPath: r.Metadata.RepositoryPath,
			CommitHashes:   nonNil(r.Metadata.Commits),
			GitRange:       r.Metadata.Range,
		},
		CategorySummary: make(map[string]int, len(s.CategoryCounts)),
		ChangeGroups:    make([]GroupDoc, 0, len(r.Analysis.Groups)),
	}
	for c, n := range s.CategoryCounts {
		doc.CategorySummary[c.String()] = n
	}
	for _, g := range r.Analysis.Groups {
		doc.ChangeGroups = append(doc.ChangeGroups, NewGroupDoc(g))
	}
	return doc
}

// NewGroupDoc converts one change group.
func NewGroupDoc(g diffpattern.ChangeGroup) GroupDoc {
	gd := GroupDoc{
		GroupID:            g.PatternID,
		PatternDescription: g.Description,
		SimilarityScore:    g.SimilarityScore,
		AffectedFilesCount: len(g.AffectedFiles),
		AffectedFiles:      nonNil(g.AffectedFiles),
		Category:           g.Category.String(),
		ChangeBlocks:       make([]BlockDoc, 0, len(g.Members)),
	}
	for _, m := range g.Members {
		gd.ChangeBlocks = append(gd.ChangeBlocks, BlockDoc{
			FilePath:      m.FilePath,
			ChangeType:    m.Kind.String(),
			HunkHeader:    m.HunkHeader,
			HunkIndex:     m.HunkIndex,
			DiffContent:   m.RawText,
			CanonicalForm: m.CanonicalForm,
			Fingerprint:   m.Fingerprint,
			LineNumbers: LineNumberDoc{
				StartOld: m.Lines.StartOld,
				EndOld:   m.Lines.EndOld,
				StartNew: m.Lines.StartNew,
				EndNew:   m.Lines.EndNew,
			},
		})
	}
	return gd
}

// Group converts a GroupDoc back into a change group.
func (gd GroupDoc) Group() diffpattern.ChangeGroup {
	g := diffpattern.ChangeGroup{
		PatternID:       gd.GroupID,
		Description:     gd.PatternDescription,
		SimilarityScore: gd.SimilarityScore,
		AffectedFiles:   gd.AffectedFiles,
		Category:        diffpattern.ParseCategory(gd.Category),
	}
	for _, b := range gd.ChangeBlocks {
		g.Members = append(g.Members, diffpattern.ChangeUnit{
			FilePath:      b.FilePath,
			Kind:          diffpattern.ParseChangeKind(b.ChangeType),
			HunkHeader:    b.HunkHeader,
			HunkIndex:     b.HunkIndex,
			RawText:       b.DiffContent,
			CanonicalForm: b.CanonicalForm,
			Fingerprint:   b.Fingerprint,
			Lines: diffpattern.LineRange{
				StartOld: b.LineNumbers.StartOld,
				EndOld:   b.LineNumbers.EndOld,
				StartNew: b.LineNumbers.StartNew,
				EndNew:   b.LineNumbers.EndNew,
			},
		})
	}
	return g
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
