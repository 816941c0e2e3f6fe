package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/pattern"
)

// Loader reads JSONL reports written by Renderer.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (4MB).
// Groups embed complete hunk text, so lines can get long.
const maxLineSize = 4 * 1024 * 1024

// Load reads the JSONL report at path.
func (l *Loader) Load(path string) (*diffpattern.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.Read(f)
}

// Read decodes a JSONL report from r. The summary is recomputed from the
// groups.
func (l *Loader) Read(r io.Reader) (*diffpattern.Report, error) {
	rep := &diffpattern.Report{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch rec.Kind {
		case KindMetadata:
			if rec.Metadata == nil {
				return nil, fmt.Errorf("line %d: metadata record without metadata", lineNum)
			}
			md := rec.Metadata
			ts, err := time.Parse(time.RFC3339, md.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("line %d: timestamp: %w", lineNum, err)
			}
			rep.Metadata = diffpattern.Metadata{
				Timestamp:      ts,
				RepositoryPath: md.RepositoryPath,
				Range:          md.GitRange,
				Commits:        md.CommitHashes,
			}
		case KindGroup:
			if rec.Group == nil || len(rec.Group.ChangeBlocks) == 0 {
				return nil, fmt.Errorf("line %d: group record without change blocks", lineNum)
			}
			rep.Analysis.Groups = append(rep.Analysis.Groups, rec.Group.Group())
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", lineNum, rec.Kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	rep.Analysis.Summary = pattern.Summarize(rep.Analysis.Groups)
	return rep, nil
}
