package gitdiff_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/gitdiff"
	"github.com/fwojciec/diffpattern/pattern"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_EmptyInput(t *testing.T) {
	t.Parallel()

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestParser_Parse_ModifiedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/main.go b/main.go
index 1234567..abcdefg 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@ package main
 package main

 func main() {
-	println("hello")
+	println("hello world")
+	println("goodbye")
 }
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	// go-gitdiff strips a/ and b/ prefixes
	assert.Equal(t, "main.go", f.Path)
	assert.Equal(t, diffpattern.KindModify, f.Kind)

	// Blank context lines come back with their leading space.
	want := "--- a/main.go\n" +
		"+++ b/main.go\n" +
		"@@ -1,5 +1,6 @@ package main\n" +
		" package main\n" +
		" \n" +
		" func main() {\n" +
		"-\tprintln(\"hello\")\n" +
		"+\tprintln(\"hello world\")\n" +
		"+\tprintln(\"goodbye\")\n" +
		" }\n"
	assert.Equal(t, want, f.RawDiff)
}

func TestParser_Parse_AddedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/new.go b/new.go
new file mode 100644
index 0000000..1234567
--- /dev/null
+++ b/new.go
@@ -0,0 +1,3 @@
+package main
+
+func hello() {}
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "new.go", f.Path)
	assert.Equal(t, diffpattern.KindAdd, f.Kind)
	assert.True(t, strings.HasPrefix(f.RawDiff, "--- /dev/null\n+++ b/new.go\n@@ -0,0 +1,3 @@\n"))
}

func TestParser_Parse_DeletedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/old.go b/old.go
deleted file mode 100644
index 1234567..0000000
--- a/old.go
+++ /dev/null
@@ -1,2 +0,0 @@
-package main
-
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "old.go", f.Path)
	assert.Equal(t, diffpattern.KindDelete, f.Kind)
	assert.Contains(t, f.RawDiff, "+++ /dev/null\n")
}

func TestParser_Parse_RenamedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/old.go b/new.go
similarity index 100%
rename from old.go
rename to new.go
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "new.go", f.Path)
	assert.Equal(t, diffpattern.KindRename, f.Kind)
	assert.NotContains(t, f.RawDiff, "@@")
}

func TestParser_Parse_CopiedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/orig.go b/copy.go
similarity index 100%
copy from orig.go
copy to copy.go
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "copy.go", files[0].Path)
	assert.Equal(t, diffpattern.KindCopy, files[0].Kind)
}

func TestParser_Parse_NoNewlineAtEOF(t *testing.T) {
	t.Parallel()

	input := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1 +1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].RawDiff, "-old\n\\ No newline at end of file\n")
}

func TestParser_Parse_MultipleFilesFeedExtractor(t *testing.T) {
	t.Parallel()

	input := `diff --git a/a.xml b/a.xml
--- a/a.xml
+++ b/a.xml
@@ -1,2 +1,2 @@
 <Root>
-  <Item id="1"/>
+  <Item id="2"/>
@@ -10 +10 @@
-  <Other/>
+  <Other2/>
diff --git a/b.xml b/b.xml
--- a/b.xml
+++ b/b.xml
@@ -4,1 +4,1 @@
-  <Item id="3"/>
+  <Item id="4"/>
`

	p := gitdiff.NewParser()

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.xml", files[0].Path)
	assert.Equal(t, "b.xml", files[1].Path)

	e := pattern.NewExtractor(pattern.NewCanonicalizer(true))
	units := e.Extract(files[0].Path, files[0].Kind, files[0].RawDiff)
	require.Len(t, units, 2)
	assert.Equal(t, diffpattern.LineRange{StartOld: 10, EndOld: 10, StartNew: 10, EndNew: 10}, units[1].Lines)

	other := e.Extract(files[1].Path, files[1].Kind, files[1].RawDiff)
	require.Len(t, other, 1)
	assert.Equal(t, units[0].CanonicalForm, other[0].CanonicalForm)
}

func TestParser_Parse_WarnsOnMalformedHunkHeader(t *testing.T) {
	t.Parallel()

	input := `diff --git a/a.xml b/a.xml
--- a/a.xml
+++ b/a.xml
@@ bogus @@
-<A/>
+<B/>
`

	var lines []string
	log := funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{})
	p := gitdiff.NewParser().WithLogger(log)

	files, err := p.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.NotContains(t, files[0].RawDiff, "@@")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "no parseable hunks")
	assert.Contains(t, lines[0], `"path"="a.xml"`)
}

func TestParser_Parse_PureRenameDoesNotWarn(t *testing.T) {
	t.Parallel()

	input := `diff --git a/old.go b/new.go
similarity index 100%
rename from old.go
rename to new.go
`

	var lines []string
	log := funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	files, err := gitdiff.NewParser().WithLogger(log).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Empty(t, lines)
}
