package diffpattern

import "strings"

// MarkedLines returns the lines of a hunk that start with a "+" or "-"
// marker, excluding "+++" and "---" file header lines. Lines are returned
// as-is, marker included.
func MarkedLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if IsMarkedLine(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// IsMarkedLine reports whether line is an added or removed diff line.
func IsMarkedLine(line string) bool {
	if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
		return false
	}
	return strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-")
}

// ChangedLines returns the marked lines of raw with the marker and
// surrounding whitespace removed. Lines that are empty after stripping are
// dropped. Relative order is preserved.
func ChangedLines(raw string) []string {
	var lines []string
	for _, line := range MarkedLines(raw) {
		content := strings.TrimSpace(line[1:])
		if content == "" {
			continue
		}
		lines = append(lines, content)
	}
	return lines
}
