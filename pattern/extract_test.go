package pattern_test

import (
	"testing"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_EmptyInput(t *testing.T) {
	t.Parallel()

	e := pattern.NewExtractor(pattern.NewCanonicalizer(false))

	units := e.Extract("a.xml", diffpattern.KindModify, "")

	assert.Empty(t, units)
}

func TestExtractor_Extract_SplitsHunks(t *testing.T) {
	t.Parallel()

	raw := `diff --git a/a.xml b/a.xml
--- a/a.xml
+++ b/a.xml
@@ -1,3 +1,3 @@
 <Root>
-  <Item id="1"/>
+  <Item id="2"/>
@@ -20,2 +20,3 @@
 <Other>
+  <New/>
`

	e := pattern.NewExtractor(pattern.NewCanonicalizer(false))

	units := e.Extract("a.xml", diffpattern.KindModify, raw)

	require.Len(t, units, 2)

	first := units[0]
	assert.Equal(t, "a.xml", first.FilePath)
	assert.Equal(t, diffpattern.KindModify, first.Kind)
	assert.Equal(t, "@@ -1,3 +1,3 @@", first.HunkHeader)
	assert.Equal(t, diffpattern.LineRange{StartOld: 1, EndOld: 3, StartNew: 1, EndNew: 3}, first.Lines)
	assert.Equal(t, 0, first.HunkIndex)
	assert.Equal(t, `<Item id="1"/> <Item id="2"/>`, first.CanonicalForm)
	assert.Equal(t, pattern.Fingerprint(first.CanonicalForm), first.Fingerprint)
	assert.NotContains(t, first.RawText, "+++")

	second := units[1]
	assert.Equal(t, 1, second.HunkIndex)
	assert.Equal(t, "@@ -20,2 +20,3 @@\n <Other>\n+  <New/>", second.RawText)
	assert.Equal(t, []string{" <Other>", "+  <New/>"}, second.ContextPreview)
}

func TestExtractor_Extract_MalformedHeader(t *testing.T) {
	t.Parallel()

	raw := "@@ garbage @@\n-old\n+new\n"

	e := pattern.NewExtractor(pattern.NewCanonicalizer(false))

	units := e.Extract("a.txt", diffpattern.KindModify, raw)

	require.Len(t, units, 1)
	assert.Equal(t, diffpattern.LineRange{}, units[0].Lines)
	assert.Equal(t, "old new", units[0].CanonicalForm)
}

func TestExtractor_Extract_ContextPreviewIsCapped(t *testing.T) {
	t.Parallel()

	raw := "@@ -1,7 +1,7 @@\n a\n b\n\n c\n d\n e\n f\n"

	e := pattern.NewExtractor(pattern.NewCanonicalizer(false))

	units := e.Extract("a.txt", diffpattern.KindModify, raw)

	require.Len(t, units, 1)
	assert.Equal(t, []string{" a", " b", " c", " d", " e"}, units[0].ContextPreview)
}

func TestParseLineRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   diffpattern.LineRange
	}{
		{
			name:   "full header",
			header: "@@ -15,6 +15,8 @@",
			want:   diffpattern.LineRange{StartOld: 15, EndOld: 20, StartNew: 15, EndNew: 22},
		},
		{
			name:   "missing counts default to one",
			header: "@@ -3 +4 @@ func main()",
			want:   diffpattern.LineRange{StartOld: 3, EndOld: 3, StartNew: 4, EndNew: 4},
		},
		{
			name:   "zero count",
			header: "@@ -0,0 +1,2 @@",
			want:   diffpattern.LineRange{StartOld: 0, EndOld: -1, StartNew: 1, EndNew: 2},
		},
		{
			name:   "malformed",
			header: "@@ -x +y @@",
			want:   diffpattern.LineRange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pattern.ParseLineRange(tt.header))
		})
	}
}
