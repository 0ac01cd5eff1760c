package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/quay/internal/dataview"
)

const (
	detailMaxWidth = 72
	detailLabelCol = 14
)

type detailField struct {
	label string
	value string
}

// detailMsg asks the host to open the detail modal for one record.
type detailMsg struct {
	title  string
	fields []detailField
}

// openDetail returns a row callback producing a detailMsg with every labelled
// column of the activated record.
func openDetail[T any](title func(T) string, columns []dataview.Column[T]) func(T) tea.Cmd {
	return func(item T) tea.Cmd {
		msg := detailMsg{title: title(item)}
		for _, col := range columns {
			if col.Header == "" {
				continue
			}
			msg.fields = append(msg.fields, detailField{label: col.Header, value: dataview.DisplayValue(col, item)})
		}
		return func() tea.Msg { return msg }
	}
}

// detailModal shows one record as a scrollable label/value list.
type detailModal struct {
	msg      detailMsg
	viewport viewport.Model
}

func newDetailModal(msg detailMsg) *detailModal {
	vp := viewport.New(detailMaxWidth, 10)
	vp.Style = lipgloss.NewStyle()
	return &detailModal{msg: msg, viewport: vp}
}

func (d *detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Close) {
		return d, nil, true
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd, false
}

func (d *detailModal) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.Surface)

	inner := max(min(detailMaxWidth, width-6), 10)
	d.viewport.Width = inner
	d.viewport.Height = max(min(len(d.msg.fields)+1, height-8), 1)
	d.viewport.SetContent(d.renderFields(styles, inner))

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(ansi.Truncate(d.msg.title, inner, "…")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(d.viewport.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("esc close · j/k scroll"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Background(lipgloss.Color(theme.Surface)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Background)),
	)
}

func (d *detailModal) renderFields(styles Styles, width int) string {
	valueWidth := max(width-detailLabelCol, 1)
	lines := make([]string, 0, len(d.msg.fields))
	for _, f := range d.msg.fields {
		label := styles.MutedText.Width(detailLabelCol).Render(ansi.Truncate(f.label, detailLabelCol-1, "…"))
		value := f.value
		if value == "" {
			value = "—"
		}
		lines = append(lines, label+styles.Text.Render(ansi.Truncate(value, valueWidth, "…")))
	}
	return strings.Join(lines, "\n")
}
