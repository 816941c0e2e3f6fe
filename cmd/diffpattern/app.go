package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/lipgloss"
	"github.com/fwojciec/diffpattern/pathfilter"
	"github.com/go-logr/logr"
	"github.com/spf13/afero"
)

// ErrMultipleInputs is returned when more than one input source is given.
var ErrMultipleInputs = errors.New("only one of --commit, --commit-range or --diff-file may be given")

// Input names where the diff comes from. Exactly one field must be set.
type Input struct {
	Commit      string
	CommitRange string // "from..to"
	DiffFile    string // "-" reads stdin
}

// Validate checks that exactly one input source is set.
func (in Input) Validate() error {
	n := 0
	for _, s := range []string{in.Commit, in.CommitRange, in.DiffFile} {
		if s != "" {
			n++
		}
	}
	switch n {
	case 0:
		return diffpattern.ErrNoInput
	case 1:
		return nil
	default:
		return ErrMultipleInputs
	}
}

// NeedsRepository reports whether the input is read from a repository.
func (in Input) NeedsRepository() bool {
	return in.Commit != "" || in.CommitRange != ""
}

// ParseRange splits "from..to" into its two revisions.
func ParseRange(r string) (from, to string, err error) {
	var parts []string
	for _, p := range strings.Split(r, "..") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid commit range %q: must be in format 'commit1..commit2'", r)
	}
	return parts[0], parts[1], nil
}

// App encapsulates the application logic for testing.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	FS     afero.Fs // Used for --diff-file

	Source   diffpattern.DiffSource // Required for commit inputs
	Parser   diffpattern.Parser
	Filter   diffpattern.FileFilter
	Analyzer diffpattern.Analyzer

	Renderer diffpattern.Renderer
	Writer   diffpattern.ReportWriter
	Format   diffpattern.Format
	Summary  *lipgloss.Summary // Optional console summary

	Viewer diffpattern.Viewer

	Log      logr.Logger
	Now      func() time.Time
	RepoPath string
	Input    Input
}

// Load reads the diff named by Input, filters its files and analyzes them.
// It returns an error wrapping ErrNoChanges when nothing is left to group.
func (a *App) Load(ctx context.Context) (*diffpattern.Report, error) {
	if err := a.Input.Validate(); err != nil {
		return nil, err
	}

	md, text, err := a.readDiff(ctx)
	if err != nil {
		return nil, err
	}

	files, err := a.Parser.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	a.Log.V(1).Info("parsed diff", "files", len(files))
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in the specified input", diffpattern.ErrNoChanges)
	}

	if a.Filter != nil {
		files = a.Filter.Filter(files)
		if len(files) == 0 {
			return nil, fmt.Errorf("%w after applying file filters", diffpattern.ErrNoChanges)
		}
	}

	a.Log.V(1).Info("changed files",
		"byDirectory", fileCounts(pathfilter.ByDirectory(files)),
		"byExtension", fileCounts(pathfilter.ByExtension(files)))

	analysis := a.Analyzer.Analyze(files)
	if analysis.Summary.TotalChanges == 0 {
		return nil, fmt.Errorf("%w in the specified input", diffpattern.ErrNoChanges)
	}

	md.Timestamp = a.now()
	md.RepositoryPath = a.RepoPath
	return &diffpattern.Report{Metadata: md, Analysis: *analysis}, nil
}

// fileCounts reduces a file organization to per-key counts.
func fileCounts(byKey map[string][]diffpattern.FileChange) map[string]int {
	counts := make(map[string]int, len(byKey))
	for k, fcs := range byKey {
		counts[k] = len(fcs)
	}
	return counts
}

// Run analyzes the input, writes the rendered report and prints the
// summary. It returns the path of the written report.
func (a *App) Run(ctx context.Context) (string, error) {
	rep, err := a.Load(ctx)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := a.Renderer.Render(&body, rep); err != nil {
		return "", err
	}
	path, err := a.Writer.Write(rep, a.Format, body.Bytes())
	if err != nil {
		return "", err
	}
	a.Log.V(1).Info("wrote report", "path", path, "format", a.Format)

	if a.Summary != nil {
		if err := a.Summary.Print(a.Stdout, &rep.Analysis, path); err != nil {
			return "", err
		}
	}
	return path, nil
}

// Browse analyzes the input and opens the viewer on the result.
func (a *App) Browse(ctx context.Context) error {
	rep, err := a.Load(ctx)
	if err != nil {
		return err
	}
	return a.Viewer.View(ctx, rep)
}

// readDiff returns the metadata describing the input and its diff text.
func (a *App) readDiff(ctx context.Context) (diffpattern.Metadata, string, error) {
	in := a.Input
	switch {
	case in.Commit != "":
		if a.Source == nil {
			return diffpattern.Metadata{}, "", errors.New("no repository to read commits from")
		}
		text, err := a.Source.CommitDiff(ctx, in.Commit)
		if err != nil {
			return diffpattern.Metadata{}, "", err
		}
		return diffpattern.Metadata{Range: in.Commit, Commits: []string{in.Commit}}, text, nil

	case in.CommitRange != "":
		from, to, err := ParseRange(in.CommitRange)
		if err != nil {
			return diffpattern.Metadata{}, "", err
		}
		if a.Source == nil {
			return diffpattern.Metadata{}, "", errors.New("no repository to read commits from")
		}
		text, err := a.Source.RangeDiff(ctx, from, to)
		if err != nil {
			return diffpattern.Metadata{}, "", err
		}
		return diffpattern.Metadata{Range: in.CommitRange, Commits: []string{from, to}}, text, nil

	default:
		text, err := a.readDiffFile(in.DiffFile)
		if err != nil {
			return diffpattern.Metadata{}, "", err
		}
		rng := in.DiffFile
		if rng == "-" {
			rng = "stdin"
		}
		return diffpattern.Metadata{Range: rng}, text, nil
	}
}

func (a *App) readDiffFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	fsys := a.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("read diff file: %w", err)
	}
	return string(data), nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
