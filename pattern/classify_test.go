package pattern_test

import (
	"testing"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/pattern"
	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		kind diffpattern.ChangeKind
		body []string
		want diffpattern.Category
	}{
		{"markup attribute", "Layout.XML", diffpattern.KindModify, []string{`-<Item id="1"/>`, `+<Item id="2"/>`}, diffpattern.CategoryMarkupAttribute},
		{"markup element", "app.config", diffpattern.KindModify, []string{"+<Item/>"}, diffpattern.CategoryMarkupElement},
		{"markup content", "data.xml", diffpattern.KindModify, []string{"+plain"}, diffpattern.CategoryMarkupContent},
		{"source import", "Program.cs", diffpattern.KindAdd, []string{"+using System.Text;"}, diffpattern.CategorySourceImport},
		{"source method", "Program.cs", diffpattern.KindModify, []string{"+public void Run()"}, diffpattern.CategorySourceMethod},
		{"source property", "Program.cs", diffpattern.KindModify, []string{"+int Count { get; set; }"}, diffpattern.CategorySourceProperty},
		{"configuration path", "config/settings.ini", diffpattern.KindModify, []string{"+a=1"}, diffpattern.CategoryConfiguration},
		{"json", "package.json", diffpattern.KindModify, []string{`+"a": 1`}, diffpattern.CategoryConfiguration},
		{"other", "README.md", diffpattern.KindModify, []string{"+text"}, diffpattern.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := hunk(t, tt.path, tt.kind, tt.body...)
			assert.Equal(t, tt.want, pattern.Categorize(u))
		})
	}
}

func TestClassify_SourceImport(t *testing.T) {
	t.Parallel()

	u := hunk(t, "Program.cs", diffpattern.KindAdd, " namespace App;", "+using System.Text;")

	category, description := pattern.Classify([]diffpattern.ChangeUnit{u})

	assert.Equal(t, diffpattern.CategorySourceImport, category)
	assert.Equal(t, "Add using statements", description)
}

func TestDescribe_SingleKindMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind diffpattern.ChangeKind
		body []string
		want string
	}{
		{"empty defaultfrom", diffpattern.KindDelete, []string{"-<DefaultFrom>()</DefaultFrom>"}, "Remove empty DefaultFrom elements"},
		{"autoime", diffpattern.KindModify, []string{"-<Post301Format>AUTOIME(NoControl)</Post301Format>", "+<Post301Format/>"}, "Remove AUTOIME(NoControl) from Post301Format elements"},
		{"layout config", diffpattern.KindModify, []string{"+<LayoutAttributes>CONFIG({a})</LayoutAttributes>"}, "Update LayoutAttributes CONFIG settings"},
		{"container sequence", diffpattern.KindModify, []string{"-<ContainerSequence>1</ContainerSequence>"}, "Update ContainerSequence values"},
		{"attributes", diffpattern.KindModify, []string{`+<Item id="1"/>`}, "Modify XML attributes"},
		{"elements", diffpattern.KindModify, []string{"+<Item/>"}, "Modify XML elements"},
		{"add fallback", diffpattern.KindAdd, []string{"+text"}, "Add XML content"},
		{"delete fallback", diffpattern.KindDelete, []string{"-text"}, "Remove XML content"},
		{"modify fallback", diffpattern.KindModify, []string{"+text"}, "Modify XML content"},
		{"rename fallback", diffpattern.KindRename, []string{"+text"}, "Update XML content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := hunk(t, "layout.xml", tt.kind, tt.body...)
			assert.Equal(t, tt.want, pattern.Describe([]diffpattern.ChangeUnit{u}))
		})
	}
}

func TestDescribe_SingleKindSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		kind diffpattern.ChangeKind
		body []string
		want string
	}{
		{"methods", "A.cs", diffpattern.KindModify, []string{"+public class Foo"}, "Modify C# methods"},
		{"properties", "A.cs", diffpattern.KindDelete, []string{"-int X { get; }"}, "Delete C# properties"},
		{"configuration", "appsettings.json", diffpattern.KindModify, []string{`+"x": 1`}, "Modify configuration values"},
		{"generic", "main.go", diffpattern.KindAdd, []string{"+package main"}, "Add code changes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := hunk(t, tt.path, tt.kind, tt.body...)
			assert.Equal(t, tt.want, pattern.Describe([]diffpattern.ChangeUnit{u}))
		})
	}
}

func TestDescribe_MultiFileSuffix(t *testing.T) {
	t.Parallel()

	a := hunk(t, "a.xml", diffpattern.KindDelete, "-<DefaultFrom>()</DefaultFrom>")
	b := hunk(t, "b.xml", diffpattern.KindDelete, "-<DefaultFrom>()</DefaultFrom>")
	c := hunk(t, "b.xml", diffpattern.KindDelete, "-<DefaultFrom>()</DefaultFrom>")

	assert.Equal(t, "Remove empty DefaultFrom elements (2 files)", pattern.Describe([]diffpattern.ChangeUnit{a, b, c}))
}

func TestDescribe_Restructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		deleted []string
		added   []string
		want    string
	}{
		{"component", "a.xml", []string{`-<Component Name="a">`}, []string{`+<Component Name="b">`}, "Restructure Component XML elements"},
		{"defaultfrom", "a.xml", []string{"-<DefaultFrom>x</DefaultFrom>"}, []string{"+<Other/>"}, "Restructure DefaultFrom XML elements"},
		{"post301format", "a.config", []string{"-<Item/>"}, []string{"+<Post301Format/>"}, "Restructure Post301Format XML elements"},
		{"layoutattributes", "a.xaml", []string{"-<LayoutAttributes/>"}, []string{"+<Item/>"}, "Restructure LayoutAttributes XML elements"},
		{"fallback", "a.resx", []string{"-<A/>"}, []string{"+<B/>"}, "Restructure XML elements"},
		{"code", "a.go", []string{"-x"}, []string{"+y"}, "Restructure code elements - 1 deletions, 1 additions (1 files)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := hunk(t, tt.path, diffpattern.KindDelete, tt.deleted...)
			a := hunk(t, tt.path, diffpattern.KindAdd, tt.added...)
			assert.Equal(t, tt.want, pattern.Describe([]diffpattern.ChangeUnit{d, a}))
		})
	}
}

func TestDescribe_RestructureAcrossFiles(t *testing.T) {
	t.Parallel()

	d := hunk(t, "a.xml", diffpattern.KindDelete, "-<A/>")
	a := hunk(t, "b.xml", diffpattern.KindAdd, "+<B/>")

	assert.Equal(t, "Restructure XML elements (2 files)", pattern.Describe([]diffpattern.ChangeUnit{d, a}))
}
