package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/diffpattern"
)

// hunkHeaderPattern matches "@@ -15,6 +15,8 @@"; counts are optional.
var hunkHeaderPattern = regexp.MustCompile(`@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@`)

// maxContextPreview is the number of lines kept in ChangeUnit.ContextPreview.
const maxContextPreview = 5

// Extractor splits per-file diff text into change units.
type Extractor struct {
	canon *Canonicalizer
}

// NewExtractor returns an Extractor that canonicalizes units with canon.
func NewExtractor(canon *Canonicalizer) *Extractor {
	return &Extractor{canon: canon}
}

// Extract returns one ChangeUnit per hunk of raw, in file order. Lines
// before the first "@@" are discarded. A hunk with an unparsable header
// still yields a unit, with a zero line range.
func (e *Extractor) Extract(path string, kind diffpattern.ChangeKind, raw string) []diffpattern.ChangeUnit {
	if raw == "" {
		return nil
	}

	var (
		units   []diffpattern.ChangeUnit
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		units = append(units, e.newUnit(path, kind, current, len(units)))
		current = nil
	}

	for _, line := range strings.Split(strings.TrimSuffix(raw, "\n"), "\n") {
		if strings.HasPrefix(line, "@@") {
			flush()
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	flush()

	return units
}

func (e *Extractor) newUnit(path string, kind diffpattern.ChangeKind, lines []string, index int) diffpattern.ChangeUnit {
	raw := strings.Join(lines, "\n")
	canonical := e.canon.Canonicalize(raw)
	return diffpattern.ChangeUnit{
		FilePath:       path,
		Kind:           kind,
		HunkHeader:     lines[0],
		Lines:          ParseLineRange(lines[0]),
		RawText:        raw,
		ContextPreview: contextPreview(lines),
		CanonicalForm:  canonical,
		Fingerprint:    Fingerprint(canonical),
		HunkIndex:      index,
	}
}

// ParseLineRange derives the old/new line span from a hunk header. A count
// omitted from the header defaults to 1. Headers that do not match yield
// the zero range.
func ParseLineRange(header string) diffpattern.LineRange {
	m := hunkHeaderPattern.FindStringSubmatch(header)
	if m == nil {
		return diffpattern.LineRange{}
	}

	startOld, err1 := strconv.Atoi(m[1])
	countOld, err2 := parseCount(m[2])
	startNew, err3 := strconv.Atoi(m[3])
	countNew, err4 := parseCount(m[4])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return diffpattern.LineRange{}
	}

	return diffpattern.LineRange{
		StartOld: startOld,
		EndOld:   startOld + countOld - 1,
		StartNew: startNew,
		EndNew:   startNew + countNew - 1,
	}
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	return strconv.Atoi(s)
}

func contextPreview(lines []string) []string {
	var preview []string
	for _, line := range lines {
		if strings.HasPrefix(line, "@@") || line == "" {
			continue
		}
		preview = append(preview, line)
		if len(preview) == maxContextPreview {
			break
		}
	}
	return preview
}
