package diffpattern

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of pattern reports.
type Styles struct {
	Title       ColorPair // Report and section titles
	Description ColorPair // Pattern description line
	Category    ColorPair // Category badge
	Count       ColorPair // Member and file counts
	Muted       ColorPair // Secondary text (pattern ids, hints)
	Added       ColorPair // Added diff lines (+)
	Deleted     ColorPair // Deleted diff lines (-)
	Context     ColorPair // Unchanged diff lines
	HunkHeader  ColorPair // Hunk headers (@@ ... @@)
}

// Theme provides styles for rendering pattern reports.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}
