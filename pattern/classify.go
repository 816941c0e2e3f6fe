package pattern

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffpattern"
)

// markupExtensions are the extensions described with markup phrases.
var markupExtensions = map[string]bool{
	".xml":      true,
	".config":   true,
	".settings": true,
	".resx":     true,
	".xaml":     true,
}

// IsMarkupFile reports whether path has a recognized markup extension.
func IsMarkupFile(path string) bool {
	return markupExtensions[strings.ToLower(filepath.Ext(path))]
}

// categoryRule assigns category when matches holds for the lowercased path
// and raw hunk text of a group's first member.
type categoryRule struct {
	category diffpattern.Category
	matches  func(path, content string) bool
}

func isMarkupCategoryPath(path string) bool {
	return strings.HasSuffix(path, ".xml") || strings.HasSuffix(path, ".config")
}

func isSourcePath(path string) bool {
	return strings.HasSuffix(path, ".cs")
}

func hasTags(content string) bool {
	return strings.Contains(content, "<") && strings.Contains(content, ">")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// categoryRules are evaluated top to bottom; the first match wins.
var categoryRules = []categoryRule{
	{diffpattern.CategoryMarkupAttribute, func(p, c string) bool {
		return isMarkupCategoryPath(p) && hasTags(c) && containsAny(c, "attribute", "=")
	}},
	{diffpattern.CategoryMarkupElement, func(p, c string) bool {
		return isMarkupCategoryPath(p) && hasTags(c)
	}},
	{diffpattern.CategoryMarkupContent, func(p, c string) bool {
		return isMarkupCategoryPath(p)
	}},
	{diffpattern.CategorySourceImport, func(p, c string) bool {
		return isSourcePath(p) && containsAny(c, "using ", "import ")
	}},
	{diffpattern.CategorySourceMethod, func(p, c string) bool {
		return isSourcePath(p) && strings.Contains(c, "public ") && containsAny(c, "class ", "method ", "()")
	}},
	{diffpattern.CategorySourceProperty, func(p, c string) bool {
		return isSourcePath(p) && containsAny(c, "{ get", "{ set")
	}},
	{diffpattern.CategoryConfiguration, func(p, c string) bool {
		return strings.Contains(p, "config") || strings.HasSuffix(p, ".json")
	}},
}

// Categorize returns the category of a single change unit.
func Categorize(u diffpattern.ChangeUnit) diffpattern.Category {
	path := strings.ToLower(u.FilePath)
	content := strings.ToLower(u.RawText)
	for _, rule := range categoryRules {
		if rule.matches(path, content) {
			return rule.category
		}
	}
	return diffpattern.CategoryOther
}

// restructureRule names a markup restructuring from the joined deleted and
// added content of a mixed group.
type restructureRule struct {
	phrase  string
	matches func(deleted, added string) bool
}

func eitherContains(token string) func(deleted, added string) bool {
	return func(deleted, added string) bool {
		return strings.Contains(deleted, token) || strings.Contains(added, token)
	}
}

var restructureRules = []restructureRule{
	{"Restructure Component XML elements", func(d, a string) bool {
		return strings.Contains(d, "<component") && strings.Contains(a, "<component")
	}},
	{"Restructure DefaultFrom XML elements", eitherContains("defaultfrom")},
	{"Restructure Post301Format XML elements", eitherContains("post301format")},
	{"Restructure LayoutAttributes XML elements", eitherContains("layoutattributes")},
}

// contentRule names a single-kind markup change from the lowercased added
// and removed lines of the representative member (markers included).
type contentRule struct {
	phrase  string
	matches func(added, removed []string) bool
}

func anyLine(lines []string, pred func(string) bool) bool {
	for _, line := range lines {
		if pred(line) {
			return true
		}
	}
	return false
}

func lineContains(subs ...string) func(string) bool {
	return func(line string) bool {
		for _, sub := range subs {
			if !strings.Contains(line, sub) {
				return false
			}
		}
		return true
	}
}

var contentRules = []contentRule{
	{"Remove empty DefaultFrom elements", func(added, removed []string) bool {
		return anyLine(removed, lineContains("<defaultfrom>()"))
	}},
	{"Remove AUTOIME(NoControl) from Post301Format elements", func(added, removed []string) bool {
		if !anyLine(removed, lineContains("post301format", "autoime(nocontrol)")) {
			return false
		}
		return anyLine(added, lineContains("post301format", "/>")) ||
			anyLine(added, func(line string) bool {
				return strings.Contains(line, "post301format") && !strings.Contains(line, "autoime(nocontrol)")
			})
	}},
	{"Update LayoutAttributes CONFIG settings", func(added, removed []string) bool {
		match := lineContains("layoutattributes", "config(")
		return anyLine(added, match) || anyLine(removed, match)
	}},
	{"Update ContainerSequence values", func(added, removed []string) bool {
		match := lineContains("containersequence")
		return anyLine(added, match) || anyLine(removed, match)
	}},
	{"Modify XML attributes", func(added, removed []string) bool {
		match := lineContains(`="`)
		return anyLine(added, match) || anyLine(removed, match)
	}},
	{"Modify XML elements", func(added, removed []string) bool {
		match := lineContains("<", ">")
		return anyLine(added, match) || anyLine(removed, match)
	}},
}

var markupKindFallback = map[diffpattern.ChangeKind]string{
	diffpattern.KindAdd:    "Add XML content",
	diffpattern.KindDelete: "Remove XML content",
	diffpattern.KindModify: "Modify XML content",
}

var categoryPhrases = map[diffpattern.Category]string{
	diffpattern.CategorySourceImport:   "%s using statements",
	diffpattern.CategorySourceMethod:   "%s C# methods",
	diffpattern.CategorySourceProperty: "%s C# properties",
	diffpattern.CategoryConfiguration:  "%s configuration values",
}

// Classify returns the category and description of a finalized group.
func Classify(members []diffpattern.ChangeUnit) (diffpattern.Category, string) {
	return Categorize(members[0]), Describe(members)
}

// Describe synthesizes the human-readable description of a group.
func Describe(members []diffpattern.ChangeUnit) string {
	first := members[0]
	fileCount := len(affectedFiles(members))

	var deletions, additions int
	for _, m := range members {
		switch m.Kind {
		case diffpattern.KindDelete:
			deletions++
		case diffpattern.KindAdd:
			additions++
		}
	}

	if deletions > 0 && additions > 0 {
		if !IsMarkupFile(first.FilePath) {
			return fmt.Sprintf("Restructure code elements - %d deletions, %d additions (%d files)",
				deletions, additions, fileCount)
		}
		return withFileCount(describeRestructure(members), fileCount)
	}

	var description string
	if IsMarkupFile(first.FilePath) {
		added, removed := splitMarkedLines(strings.ToLower(first.RawText))
		description = describeMarkupChange(added, removed, first.Kind)
	} else {
		format, ok := categoryPhrases[Categorize(first)]
		if !ok {
			format = "%s code changes"
		}
		description = fmt.Sprintf(format, first.Kind)
	}
	return withFileCount(description, fileCount)
}

func describeRestructure(members []diffpattern.ChangeUnit) string {
	var deleted, added []string
	for _, m := range members {
		switch m.Kind {
		case diffpattern.KindDelete:
			deleted = append(deleted, strippedLines(m.RawText, "-")...)
		case diffpattern.KindAdd:
			added = append(added, strippedLines(m.RawText, "+")...)
		}
	}
	d := strings.ToLower(strings.Join(deleted, " "))
	a := strings.ToLower(strings.Join(added, " "))

	for _, rule := range restructureRules {
		if rule.matches(d, a) {
			return rule.phrase
		}
	}
	return "Restructure XML elements"
}

func describeMarkupChange(added, removed []string, kind diffpattern.ChangeKind) string {
	for _, rule := range contentRules {
		if rule.matches(added, removed) {
			return rule.phrase
		}
	}
	if phrase, ok := markupKindFallback[kind]; ok {
		return phrase
	}
	return "Update XML content"
}

// splitMarkedLines returns the "+" and "-" lines of raw, markers kept,
// file header lines excluded.
func splitMarkedLines(raw string) (added, removed []string) {
	for _, line := range diffpattern.MarkedLines(raw) {
		if strings.HasPrefix(line, "+") {
			added = append(added, line)
		} else {
			removed = append(removed, line)
		}
	}
	return added, removed
}

// strippedLines returns the lines of raw carrying marker, with the marker
// and surrounding whitespace removed.
func strippedLines(raw, marker string) []string {
	var lines []string
	for _, line := range diffpattern.MarkedLines(raw) {
		if strings.HasPrefix(line, marker) {
			lines = append(lines, strings.TrimSpace(line[1:]))
		}
	}
	return lines
}

func withFileCount(description string, fileCount int) string {
	if fileCount > 1 {
		return fmt.Sprintf("%s (%d files)", description, fileCount)
	}
	return description
}

func affectedFiles(members []diffpattern.ChangeUnit) []string {
	seen := make(map[string]bool)
	var files []string
	for _, m := range members {
		if !seen[m.FilePath] {
			seen[m.FilePath] = true
			files = append(files, m.FilePath)
		}
	}
	return files
}
