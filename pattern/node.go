package pattern

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/fwojciec/diffpattern"
)

const (
	// substantialLineCount is the changed-line count above which a unit is
	// treated as part of a bulk restructuring.
	substantialLineCount = 8
	// largeNodeLineCount is the non-empty changed-line count at or above
	// which a unit is assumed to hold a complete node.
	largeNodeLineCount = 10
	// relatedSimilarity is the fixed gate for the textual fallback.
	relatedSimilarity = 0.3
)

// elementPatterns recognize a complete single element: a known open/close
// pair, any open/close pair, or a self-closing tag.
var elementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<Component\s+[^>]*>.*?</Component>`),
	regexp.MustCompile(`(?is)<Component\s*>.*?</Component>`),
	regexp.MustCompile(`(?is)<Element\s+[^>]*>.*?</Element>`),
	regexp.MustCompile(`(?is)<Element\s*>.*?</Element>`),
	regexp.MustCompile(`(?is)<[a-z][a-z0-9]*\s+[^>]*>.*?</[a-z][a-z0-9]*>`),
	regexp.MustCompile(`(?is)<[a-z][a-z0-9]*\s*>.*?</[a-z][a-z0-9]*>`),
	regexp.MustCompile(`(?i)<[a-z][a-z0-9]*[^>]*/\s*>`),
}

var (
	firstOpenTagPattern = regexp.MustCompile(`(?i)<([a-z][a-z0-9]*)[^>]*>`)
	elementNamePattern  = regexp.MustCompile(`(?i)<([a-z][a-z0-9]*)`)
	openTagPattern      = regexp.MustCompile(`(?i)<[a-z][a-z0-9]*[^/>]*>`)
	closeTagPattern     = regexp.MustCompile(`(?i)</[a-z][a-z0-9]*>`)

	compareIDPattern     = regexp.MustCompile(`(?i)id\s*=\s*"[^"]*"`)
	compareNamePattern   = regexp.MustCompile(`(?i)name\s*=\s*"[^"]*"`)
	compareQuotedPattern = regexp.MustCompile(`"[^"]*"`)
)

// node is the structural view of one change unit used by the pairer.
type node struct {
	complete    bool
	substantial bool
	element     string // First element name, lowercased; empty if none
	compare     string // Content normalized for similarity scoring
}

func inspect(u diffpattern.ChangeUnit) node {
	content := strings.Join(diffpattern.ChangedLines(u.RawText), " ")
	n := node{
		complete: IsCompleteNode(u.RawText),
		element:  strings.ToLower(ElementName(content)),
		compare:  normalizeForCompare(content),
	}
	n.substantial = n.complete || len(diffpattern.MarkedLines(u.RawText)) > substantialLineCount
	return n
}

// IsCompleteNode reports whether the changed lines of raw hunk text form a
// complete markup node.
func IsCompleteNode(raw string) bool {
	lines := diffpattern.ChangedLines(raw)
	if len(lines) >= largeNodeLineCount {
		return true
	}
	content := strings.TrimSpace(strings.Join(lines, " "))
	return isCompleteElement(content) || isLargeBlock(content)
}

func isCompleteElement(content string) bool {
	for _, re := range elementPatterns {
		if re.MatchString(content) {
			return true
		}
	}

	// An opening tag whose closer appears anywhere in the content.
	compact := strings.ReplaceAll(content, " ", "")
	m := firstOpenTagPattern.FindStringSubmatch(compact)
	if m == nil {
		return false
	}
	closer := "</" + strings.ToLower(m[1]) + ">"
	return strings.Contains(strings.ToLower(compact), closer)
}

func isLargeBlock(content string) bool {
	tagged := 0
	for _, part := range strings.Split(content, " ") {
		if strings.Contains(part, "<") && strings.Contains(part, ">") {
			tagged++
		}
	}
	if tagged >= 3 {
		return true
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "<component") && strings.Contains(lower, "</component>") {
		return true
	}

	opens := len(openTagPattern.FindAllStringIndex(content, -1))
	closes := len(closeTagPattern.FindAllStringIndex(content, -1))
	return opens >= 2 && closes >= 1
}

// ElementName returns the first element name found in content, or "".
func ElementName(content string) string {
	m := elementNamePattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

// related reports whether a deleted and an inserted node look like the
// same node rewritten.
func related(deleted, inserted node) bool {
	if deleted.element != "" && inserted.element != "" {
		return deleted.element == inserted.element
	}
	return Similarity(deleted.compare, inserted.compare) > relatedSimilarity
}

func normalizeForCompare(content string) string {
	content = compareIDPattern.ReplaceAllLiteralString(content, `id="ID"`)
	content = compareNamePattern.ReplaceAllLiteralString(content, `name="NAME"`)
	return compareQuotedPattern.ReplaceAllLiteralString(content, `"VALUE"`)
}

// Similarity returns 1 - editDistance/maxLen over the runes of a and b.
// Either side empty yields 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	distance := levenshtein.Distance(a, b, nil)
	return 1 - float64(distance)/float64(maxLen)
}
