package pattern_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/pattern"
	"github.com/stretchr/testify/require"
)

// hunk builds a single markup-aware change unit from hunk body lines.
func hunk(t *testing.T, path string, kind diffpattern.ChangeKind, lines ...string) diffpattern.ChangeUnit {
	t.Helper()

	raw := "@@ -1,3 +1,3 @@\n" + strings.Join(lines, "\n")
	units := pattern.NewExtractor(pattern.NewCanonicalizer(true)).Extract(path, kind, raw)
	require.Len(t, units, 1)
	return units[0]
}

// numbered returns n lines "<marker>line i".
func numbered(marker string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%sline %d", marker, i+1)
	}
	return lines
}

// sequentialIDs returns a generator yielding "p1", "p2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}
