package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments on a shared background. Joining separately
// styled segments otherwise leaves unpainted gaps at each ANSI reset.
type BgStyle struct {
	fill  lipgloss.Style
	space string
}

// NewBgStyle creates a background helper for the given color.
func NewBgStyle(color string) BgStyle {
	fill := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return BgStyle{fill: fill, space: fill.Render(" ")}
}

// Render renders text with style, painting every cell including spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Inherit(b.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single painted space.
func (b BgStyle) Space() string {
	return b.space
}

// Join joins parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.fill.Render(sep))
}
