package classic

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/five82/quay/internal/ui"
)

// Palette holds the tcell colors of one theme.
type Palette struct {
	Background    tcell.Color
	Surface       tcell.Color
	Text          tcell.Color
	Muted         tcell.Color
	Faint         tcell.Color
	Accent        tcell.Color
	Warning       tcell.Color
	Danger        tcell.Color
	Border        tcell.Color
	BorderFocus   tcell.Color
	SelectionBg   tcell.Color
	SelectionText tcell.Color
}

// PaletteFrom converts a lipgloss theme into tcell colors so both renderers
// share one set of themes.
func PaletteFrom(th ui.Theme) Palette {
	return Palette{
		Background:    hexToColor(th.Background),
		Surface:       hexToColor(th.Surface),
		Text:          hexToColor(th.Text),
		Muted:         hexToColor(th.Muted),
		Faint:         hexToColor(th.Faint),
		Accent:        hexToColor(th.Accent),
		Warning:       hexToColor(th.Warning),
		Danger:        hexToColor(th.Danger),
		Border:        hexToColor(th.Border),
		BorderFocus:   hexToColor(th.BorderFocus),
		SelectionBg:   hexToColor(th.SelectionBg),
		SelectionText: hexToColor(th.SelectionText),
	}
}

// DefaultPalette is the palette of the default theme.
func DefaultPalette() Palette {
	return PaletteFrom(ui.GetTheme(""))
}

func hexToColor(hex string) tcell.Color {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(hex)
}

// tag renders a tview color tag for c.
func tag(c tcell.Color) string {
	return "[" + c.CSS() + "]"
}
