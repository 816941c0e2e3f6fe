// Package pathfilter selects changed files by glob patterns and organizes
// them by directory or extension.
package pathfilter

import (
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/diffpattern"
	"github.com/go-logr/logr"
)

// Compile-time interface verification.
var _ diffpattern.FileFilter = (*Filter)(nil)

// NoExtension is the ByExtension key for files without an extension.
const NoExtension = "no_extension"

// Filter keeps files matching any include pattern and no exclude pattern.
// An empty include list includes everything. Matching is case-insensitive.
type Filter struct {
	include []string
	exclude []string
	log     logr.Logger
}

// New returns a Filter built from comma-separated include and exclude
// pattern lists.
func New(include, exclude string) *Filter {
	return &Filter{
		include: ParsePatterns(include),
		exclude: ParsePatterns(exclude),
		log:     logr.Discard(),
	}
}

// WithLogger returns a copy of f that reports filtering to log.
func (f *Filter) WithLogger(log logr.Logger) *Filter {
	c := *f
	c.log = log
	return &c
}

// ParsePatterns splits a comma-separated list, trimming blanks.
func ParsePatterns(list string) []string {
	var patterns []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, strings.ToLower(p))
		}
	}
	return patterns
}

// Filter returns the files that pass the filter, in input order.
func (f *Filter) Filter(files []diffpattern.FileChange) []diffpattern.FileChange {
	var kept []diffpattern.FileChange
	for _, fc := range files {
		if f.Includes(fc.Path) {
			kept = append(kept, fc)
		}
	}
	f.log.V(1).Info("filtered files", "before", len(files), "after", len(kept),
		"include", f.include, "exclude", f.exclude)
	return kept
}

// Includes reports whether path passes the filter. Exclusion wins.
func (f *Filter) Includes(p string) bool {
	p = strings.ToLower(strings.TrimPrefix(path.Clean("/"+p), "/"))
	for _, pattern := range f.exclude {
		if matches(pattern, p) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if matches(pattern, p) {
			return true
		}
	}
	return false
}

// matches tries pattern against the whole path, against anything below a
// matching directory and, for patterns without a slash, against the base
// name.
func matches(pattern, p string) bool {
	if ok, _ := doublestar.Match(pattern, p); ok {
		return true
	}
	if !strings.HasSuffix(pattern, "/**") {
		if ok, _ := doublestar.Match(strings.TrimSuffix(pattern, "/")+"/**", p); ok {
			return true
		}
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := doublestar.Match(pattern, path.Base(p))
		return ok
	}
	return false
}

// ByDirectory groups files by their parent directory. Files at the top
// level are keyed "root".
func ByDirectory(files []diffpattern.FileChange) map[string][]diffpattern.FileChange {
	out := make(map[string][]diffpattern.FileChange)
	for _, fc := range files {
		dir := path.Dir(fc.Path)
		if dir == "." || dir == "/" {
			dir = "root"
		}
		out[dir] = append(out[dir], fc)
	}
	return out
}

// ByExtension groups files by lowercased extension, dot included.
func ByExtension(files []diffpattern.FileChange) map[string][]diffpattern.FileChange {
	out := make(map[string][]diffpattern.FileChange)
	for _, fc := range files {
		ext := strings.ToLower(path.Ext(fc.Path))
		if ext == "" {
			ext = NoExtension
		}
		out[ext] = append(out[ext], fc)
	}
	return out
}

// RelatedFiles returns the other paths among all that share p's directory
// and base name (ignoring extension and case), sorted.
func RelatedFiles(p string, all []string) []string {
	dir, stem := path.Dir(p), stemOf(p)
	seen := make(map[string]bool)
	var related []string
	for _, other := range all {
		if other == p || seen[other] {
			continue
		}
		if path.Dir(other) == dir && strings.EqualFold(stemOf(other), stem) {
			seen[other] = true
			related = append(related, other)
		}
	}
	sort.Strings(related)
	return related
}

func stemOf(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
