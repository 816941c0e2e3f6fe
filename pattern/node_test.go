package pattern_test

import (
	"testing"

	"github.com/fwojciec/diffpattern/pattern"
	"github.com/stretchr/testify/assert"
)

func TestIsCompleteNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"component pair", "@@ -1 +1 @@\n+<Component Name=\"x\">\n+</Component>", true},
		{"generic pair across lines", "@@ -1 +1 @@\n-<Grid>\n-  text\n-</Grid>", true},
		{"self closing", "@@ -1 +1 @@\n+<Item id=\"1\" />", true},
		{"three tagged tokens", "@@ -1 +1 @@\n+<a> <b> <c>", true},
		{"two opens one close", "@@ -1 +1 @@\n+<a x> <b y> </c>", true},
		{"opening tag only", "@@ -1 +1 @@\n+<Grid id=\"1\">", false},
		{"plain text", "@@ -1 +1 @@\n-hello\n+world", false},
		{"many lines", "@@ -1,10 +0,0 @@\n-1\n-2\n-3\n-4\n-5\n-6\n-7\n-8\n-9\n-10", true},
		{"context is ignored", "@@ -1 +1 @@\n <Grid>\n+text\n </Grid>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pattern.IsCompleteNode(tt.raw))
		})
	}
}

func TestElementName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Component", pattern.ElementName(`text <Component Name="a"> <Item/>`))
	assert.Empty(t, pattern.ElementName("no tags here"))
	assert.Empty(t, pattern.ElementName("</closing>"))
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, pattern.Similarity("", "abc"), 1e-9)
	assert.InDelta(t, 0.0, pattern.Similarity("abc", ""), 1e-9)
	assert.InDelta(t, 1.0, pattern.Similarity("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.75, pattern.Similarity("abcd", "abce"), 1e-9)
	assert.InDelta(t, 0.0, pattern.Similarity("abc", "xyz"), 1e-9)
}
