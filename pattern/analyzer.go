package pattern

import (
	"strings"

	"github.com/fwojciec/diffpattern"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ diffpattern.Analyzer = (*Analyzer)(nil)

// patternIDLength is the number of hex characters kept from a UUID.
const patternIDLength = 8

// Analyzer runs the full grouping pipeline over a set of changed files.
type Analyzer struct {
	cfg       diffpattern.Config
	extractor *Extractor
	pairer    Pairer
	log       logr.Logger
	newID     func() string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for progress output. Output is only
// produced when the configuration asks for verbose logging.
func WithLogger(log logr.Logger) Option {
	return func(a *Analyzer) {
		a.log = log
	}
}

// WithIDGenerator replaces the pattern id generator.
func WithIDGenerator(fn func() string) Option {
	return func(a *Analyzer) {
		a.newID = fn
	}
}

// WithConcurrency bounds how many files the structural pairer handles at
// once.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		a.pairer.Concurrency = n
	}
}

// NewAnalyzer returns an Analyzer for cfg. The configuration is expected to
// have been validated by the caller.
func NewAnalyzer(cfg diffpattern.Config, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:       cfg,
		extractor: NewExtractor(NewCanonicalizer(cfg.MarkupAware)),
		log:       logr.Discard(),
		newID:     NewPatternID,
	}
	for _, opt := range opts {
		opt(a)
	}
	if !cfg.Verbose {
		a.log = logr.Discard()
	}
	return a
}

// NewPatternID returns a short random identifier.
func NewPatternID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:patternIDLength]
}

// Analyze extracts change units from files and groups them.
func (a *Analyzer) Analyze(files []diffpattern.FileChange) *diffpattern.Analysis {
	var units []diffpattern.ChangeUnit
	for _, f := range files {
		extracted := a.extractor.Extract(f.Path, f.Kind, f.RawDiff)
		a.log.V(1).Info("extracted hunks", "path", f.Path, "kind", f.Kind.String(), "hunks", len(extracted))
		units = append(units, extracted...)
	}

	groups := a.Group(units)
	return &diffpattern.Analysis{
		Groups:  groups,
		Summary: Summarize(groups),
	}
}

// Group partitions units into ranked, classified change groups. Every unit
// ends up in exactly one group.
func (a *Analyzer) Group(units []diffpattern.ChangeUnit) []diffpattern.ChangeGroup {
	a.log.Info("grouping changes", "units", len(units), "markupAware", a.cfg.MarkupAware)

	var groups []diffpattern.ChangeGroup
	remaining := units
	if a.cfg.MarkupAware {
		var paired [][]diffpattern.ChangeUnit
		paired, remaining = a.pairer.Pair(units)
		for _, members := range paired {
			groups = append(groups, a.newGroup(members))
		}
		a.log.V(1).Info("structural pairing done", "groups", len(paired), "remaining", len(remaining))
	}

	for _, members := range ClusterExact(remaining) {
		groups = append(groups, a.newGroup(members))
	}

	ranked := Rank(groups)
	a.log.Info("grouping complete", "groups", len(ranked))
	return ranked
}

func (a *Analyzer) newGroup(members []diffpattern.ChangeUnit) diffpattern.ChangeGroup {
	if len(members) == 0 {
		panic("pattern: change group with no members")
	}
	category, description := Classify(members)
	return diffpattern.ChangeGroup{
		PatternID:       a.newID(),
		Members:         members,
		AffectedFiles:   affectedFiles(members),
		SimilarityScore: 1.0,
		Category:        category,
		Description:     description,
	}
}
