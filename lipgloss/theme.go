// Package lipgloss provides themes and console output using the Lipgloss
// styling library.
package lipgloss

import "github.com/fwojciec/diffpattern"

// Compile-time interface verification.
var _ diffpattern.Theme = (*Theme)(nil)

// Theme implements diffpattern.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles diffpattern.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() diffpattern.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme for dark terminal backgrounds (Catppuccin Mocha).
func DarkTheme() *Theme {
	return &Theme{
		styles: diffpattern.Styles{
			Title:       diffpattern.ColorPair{Foreground: "#cba6f7"},
			Description: diffpattern.ColorPair{Foreground: "#cdd6f4"},
			Category: diffpattern.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#89b4fa",
			},
			Count: diffpattern.ColorPair{Foreground: "#fab387"},
			Muted: diffpattern.ColorPair{Foreground: "#6c7086"},
			Added: diffpattern.ColorPair{
				Foreground: "#a6e3a1",
				Background: "#004000",
			},
			Deleted: diffpattern.ColorPair{
				Foreground: "#f38ba8",
				Background: "#3f0001",
			},
			Context:    diffpattern.ColorPair{Foreground: "#6c7086"},
			HunkHeader: diffpattern.ColorPair{Foreground: "#89b4fa"},
		},
	}
}

// LightTheme returns a theme for light terminal backgrounds (Catppuccin Latte).
func LightTheme() *Theme {
	return &Theme{
		styles: diffpattern.Styles{
			Title:       diffpattern.ColorPair{Foreground: "#8839ef"},
			Description: diffpattern.ColorPair{Foreground: "#4c4f69"},
			Category: diffpattern.ColorPair{
				Foreground: "#ffffff",
				Background: "#1e66f5",
			},
			Count: diffpattern.ColorPair{Foreground: "#fe640b"},
			Muted: diffpattern.ColorPair{Foreground: "#9ca0b0"},
			Added: diffpattern.ColorPair{
				Foreground: "#40a02b",
				Background: "#d4f4d4",
			},
			Deleted: diffpattern.ColorPair{
				Foreground: "#d20f39",
				Background: "#f4d4d4",
			},
			Context:    diffpattern.ColorPair{Foreground: "#9ca0b0"},
			HunkHeader: diffpattern.ColorPair{Foreground: "#1e66f5"},
		},
	}
}
