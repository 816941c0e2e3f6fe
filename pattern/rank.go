package pattern

import (
	"cmp"
	"slices"

	"github.com/fwojciec/diffpattern"
)

// Rank returns groups ordered by descending size. Groups of equal size keep
// the order in which they were created.
func Rank(groups []diffpattern.ChangeGroup) []diffpattern.ChangeGroup {
	ranked := slices.Clone(groups)
	slices.SortStableFunc(ranked, func(a, b diffpattern.ChangeGroup) int {
		return cmp.Compare(b.Size(), a.Size())
	})
	return ranked
}

// Summarize computes the aggregate counts over the final group list.
func Summarize(groups []diffpattern.ChangeGroup) diffpattern.Summary {
	s := diffpattern.Summary{
		TotalGroups:    len(groups),
		CategoryCounts: make(map[diffpattern.Category]int),
	}
	files := make(map[string]struct{})
	for _, g := range groups {
		for _, m := range g.Members {
			files[m.FilePath] = struct{}{}
		}
		s.TotalChanges += g.Size()
		s.CategoryCounts[g.Category] += g.Size()
		if g.Size() > 1 {
			s.UniquePatterns++
		}
	}
	s.TotalFiles = len(files)
	return s
}
