package pattern

import (
	"cmp"
	"slices"

	"github.com/fwojciec/diffpattern"
	"golang.org/x/sync/errgroup"
)

// entry is a change unit tagged with its discovery position.
type entry struct {
	seq  int
	unit diffpattern.ChangeUnit
}

// fileResult is what pairing one file produced.
type fileResult struct {
	groups    [][]diffpattern.ChangeUnit
	remaining []entry
}

// Pairer merges deletions and insertions within a file that together
// rewrite one markup node. Files are processed concurrently; the output
// does not depend on scheduling.
type Pairer struct {
	// Concurrency bounds the number of files paired at once. Zero or
	// negative means no limit.
	Concurrency int
}

// Pair consumes units and returns the structural groups it formed plus
// the units it did not claim, in their original order.
func (p Pairer) Pair(units []diffpattern.ChangeUnit) ([][]diffpattern.ChangeUnit, []diffpattern.ChangeUnit) {
	paths, byFile := partitionByFile(units)
	results := make([]fileResult, len(paths))

	var g errgroup.Group
	if p.Concurrency > 0 {
		g.SetLimit(p.Concurrency)
	}
	for i, path := range paths {
		g.Go(func() error {
			results[i] = pairFile(byFile[path])
			return nil
		})
	}
	_ = g.Wait()

	var (
		groups    [][]diffpattern.ChangeUnit
		remaining []entry
	)
	for _, r := range results {
		groups = append(groups, r.groups...)
		remaining = append(remaining, r.remaining...)
	}
	slices.SortFunc(remaining, func(a, b entry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	rest := make([]diffpattern.ChangeUnit, len(remaining))
	for i, e := range remaining {
		rest[i] = e.unit
	}
	return groups, rest
}

// partitionByFile buckets units by path, keeping paths in first-seen order.
func partitionByFile(units []diffpattern.ChangeUnit) ([]string, map[string][]entry) {
	var paths []string
	byFile := make(map[string][]entry)
	for i, u := range units {
		if _, ok := byFile[u.FilePath]; !ok {
			paths = append(paths, u.FilePath)
		}
		byFile[u.FilePath] = append(byFile[u.FilePath], entry{seq: i, unit: u})
	}
	return paths, byFile
}

// pairFile runs structural pairing over the units of a single file.
func pairFile(entries []entry) fileResult {
	var deletions, insertions []entry
	nodes := make(map[int]node, len(entries))
	for _, e := range entries {
		switch e.unit.Kind {
		case diffpattern.KindDelete:
			deletions = append(deletions, e)
		case diffpattern.KindAdd:
			insertions = append(insertions, e)
		default:
			continue
		}
		nodes[e.seq] = inspect(e.unit)
	}

	claimed := make(map[int]bool)
	var groups [][]diffpattern.ChangeUnit
	claim := func(members []entry) {
		group := make([]diffpattern.ChangeUnit, len(members))
		for i, m := range members {
			claimed[m.seq] = true
			group[i] = m.unit
		}
		groups = append(groups, group)
	}

	substantial := func(list []entry) []entry {
		var out []entry
		for _, e := range list {
			if nodes[e.seq].substantial {
				out = append(out, e)
			}
		}
		return out
	}

	// Any file with both a large deletion and a large insertion is taken
	// as one restructuring.
	bigDeletions, bigInsertions := substantial(deletions), substantial(insertions)
	if len(bigDeletions) > 0 && len(bigInsertions) > 0 {
		claim(append(bigDeletions, bigInsertions...))
	} else {
		for _, d := range deletions {
			dn := nodes[d.seq]
			if !dn.complete {
				continue
			}
			members := []entry{d}
			for _, ins := range insertions {
				in := nodes[ins.seq]
				if claimed[ins.seq] || !in.complete || !related(dn, in) {
					continue
				}
				members = append(members, ins)
			}
			if len(members) > 1 {
				claim(members)
			}
		}
	}

	var remaining []entry
	for _, e := range entries {
		if !claimed[e.seq] {
			remaining = append(remaining, e)
		}
	}
	return fileResult{groups: groups, remaining: remaining}
}
