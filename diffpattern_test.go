package diffpattern_test

import (
	"testing"

	"github.com/fwojciec/diffpattern"
	"github.com/stretchr/testify/assert"
)

func TestChangeKind_String(t *testing.T) {
	t.Parallel()

	kinds := map[diffpattern.ChangeKind]string{
		diffpattern.KindModify: "Modify",
		diffpattern.KindAdd:    "Add",
		diffpattern.KindDelete: "Delete",
		diffpattern.KindRename: "Rename",
		diffpattern.KindCopy:   "Copy",
	}

	for kind, name := range kinds {
		assert.Equal(t, name, kind.String())
		assert.Equal(t, kind, diffpattern.ParseChangeKind(name))
	}
	assert.Equal(t, diffpattern.KindModify, diffpattern.ParseChangeKind("Unknown"))
}

func TestChangeGroup_Accessors(t *testing.T) {
	t.Parallel()

	g := diffpattern.ChangeGroup{
		Members: []diffpattern.ChangeUnit{
			{FilePath: "a.xml", HunkIndex: 0},
			{FilePath: "b.xml", HunkIndex: 0},
			{FilePath: "a.xml", HunkIndex: 1},
		},
		AffectedFiles: []string{"a.xml", "b.xml"},
	}

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, "a.xml", g.Representative().FilePath)
	assert.Equal(t, 0, g.Representative().HunkIndex)
	assert.Equal(t, 2, g.FileChangeCount("a.xml"))
	assert.Equal(t, 1, g.FileChangeCount("b.xml"))
	assert.Equal(t, 0, g.FileChangeCount("c.xml"))
}

func TestChangedLines(t *testing.T) {
	t.Parallel()

	raw := "@@ -1,4 +1,4 @@\n context\n--- a/file\n+++ b/file\n-  <A/>  \n+\n+\t<B/>"

	assert.Equal(t, []string{"-  <A/>  ", "+", "+\t<B/>"}, diffpattern.MarkedLines(raw))
	assert.Equal(t, []string{"<A/>", "<B/>"}, diffpattern.ChangedLines(raw))
	assert.Equal(t, []string{"<A/>", "<B/>"}, diffpattern.ChangeUnit{RawText: raw}.ChangedLines())
}

func TestIsMarkedLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"+added", true},
		{"-removed", true},
		{"+", true},
		{" context", false},
		{"@@ -1 +1 @@", false},
		{"+++ b/file", false},
		{"--- a/file", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, diffpattern.IsMarkedLine(tt.line), tt.line)
	}
}
