// Package jsonl streams analyses as JSON lines and loads them back.
package jsonl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/report"
)

// Compile-time interface verification.
var _ diffpattern.Renderer = (*Renderer)(nil)

// Record kinds.
const (
	KindMetadata = "metadata"
	KindGroup    = "group"
)

// Record is one line of a JSONL report. The first line carries the
// metadata, every following line one change group.
type Record struct {
	Kind     string              `json:"kind"`
	Metadata *report.MetadataDoc `json:"metadata,omitempty"`
	Group    *report.GroupDoc    `json:"group,omitempty"`
}

// Renderer writes a metadata line followed by one line per group.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes report to w.
func (r *Renderer) Render(w io.Writer, rep *diffpattern.Report) error {
	doc := report.NewDocument(rep)
	enc := json.NewEncoder(w)

	if err := enc.Encode(Record{Kind: KindMetadata, Metadata: &doc.Metadata}); err != nil {
		return fmt.Errorf("render jsonl: %w", err)
	}
	for i := range doc.ChangeGroups {
		if err := enc.Encode(Record{Kind: KindGroup, Group: &doc.ChangeGroups[i]}); err != nil {
			return fmt.Errorf("render jsonl: %w", err)
		}
	}
	return nil
}
