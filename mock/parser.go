package mock

import (
	"io"

	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var (
	_ diffpattern.Parser     = (*Parser)(nil)
	_ diffpattern.FileFilter = (*FileFilter)(nil)
	_ diffpattern.Analyzer   = (*Analyzer)(nil)
)

// Parser is a mock implementation of diffpattern.Parser.
type Parser struct {
	ParseFn func(r io.Reader) ([]diffpattern.FileChange, error)
}

func (p *Parser) Parse(r io.Reader) ([]diffpattern.FileChange, error) {
	return p.ParseFn(r)
}

// FileFilter is a mock implementation of diffpattern.FileFilter.
type FileFilter struct {
	FilterFn func(files []diffpattern.FileChange) []diffpattern.FileChange
}

func (f *FileFilter) Filter(files []diffpattern.FileChange) []diffpattern.FileChange {
	return f.FilterFn(files)
}

// Analyzer is a mock implementation of diffpattern.Analyzer.
type Analyzer struct {
	AnalyzeFn func(files []diffpattern.FileChange) *diffpattern.Analysis
}

func (a *Analyzer) Analyze(files []diffpattern.FileChange) *diffpattern.Analysis {
	return a.AnalyzeFn(files)
}
