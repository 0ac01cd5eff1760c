package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, screen tabs, source and load state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("quay", styles.Logo)}
	parts = append(parts, m.renderTabs(styles, bg, compact))

	if m.source != "" {
		limit := 48
		if compact {
			limit = 20
		}
		parts = append(parts, bg.Render(truncateMiddle(m.source, limit), styles.MutedText))
	}

	switch {
	case m.version == 0 && m.lastError == nil:
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	case !m.lastLoaded.IsZero():
		parts = append(parts, bg.Render(formatLoaded(m.lastLoaded, time.Now()), styles.MutedText))
	}

	if m.lastError != nil {
		label := "ERROR"
		if m.stale {
			label = "STALE"
		}
		limit := 80
		if compact {
			limit = 32
		}
		parts = append(parts,
			bg.Render(label, styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.lastError.Error(), limit), styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}

// renderTabs lists every screen with its visible count, highlighting the
// active one. Compact mode drops inactive counts.
func (m Model) renderTabs(styles Styles, bg BgStyle, compact bool) string {
	tabs := make([]string, 0, len(m.screens))
	for i, s := range m.screens {
		visible, _ := s.Counts()
		label := s.Title()
		if i == m.active || !compact {
			label = fmt.Sprintf("%s %d", label, visible)
		}
		style := styles.MutedText
		if i == m.active {
			style = styles.AccentText.Bold(true)
		}
		tabs = append(tabs, bg.Render(label, style))
	}
	return bg.Join(tabs, " · ")
}

// formatLoaded formats the load time with a relative indicator.
func formatLoaded(at, now time.Time) string {
	since := now.Sub(at)
	s := at.Format("15:04:05")
	switch {
	case since < time.Minute:
		s += " (now)"
	case since < time.Hour:
		s += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		s += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return s
}
