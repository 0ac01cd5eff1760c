package classic

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/five82/quay/internal/config"
	"github.com/five82/quay/internal/prefs"
	"github.com/five82/quay/internal/state"
	"github.com/five82/quay/internal/ui"
)

const defaultUIInterval = time.Second

// Options configure the tview renderer.
type Options struct {
	Store       *state.Store
	Config      config.Config
	SourceLabel string
	PollTick    time.Duration
	ThemeName   string
	PrefsPath   string
	Screen      string
}

type model struct {
	app     *tview.Application
	options Options
	root    *tview.Pages
	pages   *tview.Pages
	header  *tview.TextView
	frame   *tview.Frame

	screens []screen
	active  int
	theme   ui.Theme
	palette Palette

	version    uint64
	lastLoaded time.Time
	lastError  error
	stale      bool
}

func newModel(app *tview.Application, opts Options) (*model, error) {
	// Single-line focus borders
	tview.Borders.HorizontalFocus = tview.Borders.Horizontal
	tview.Borders.VerticalFocus = tview.Borders.Vertical
	tview.Borders.TopLeftFocus = tview.Borders.TopLeft
	tview.Borders.TopRightFocus = tview.Borders.TopRight
	tview.Borders.BottomLeftFocus = tview.Borders.BottomLeft
	tview.Borders.BottomRightFocus = tview.Borders.BottomRight

	m := &model{
		app:     app,
		options: opts,
		theme:   ui.GetTheme(opts.ThemeName),
	}

	screens, err := buildScreens(opts.Config, m.showDetail)
	if err != nil {
		return nil, err
	}
	m.screens = screens

	m.header = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	m.pages = tview.NewPages()
	for i, s := range screens {
		m.pages.AddPage(s.Name(), s, true, i == 0)
		if s.Name() == opts.Screen {
			m.active = i
		}
	}
	m.frame = tview.NewFrame(m.pages).SetBorders(0, 0, 0, 0, 1, 1)
	m.frame.SetBorder(true)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(m.frame, 0, 1, true)

	m.root = tview.NewPages()
	m.root.AddPage("main", layout, true, true)

	m.applyPalette()
	m.showScreen(m.active)
	return m, nil
}

func (m *model) current() screen {
	return m.screens[m.active]
}

func (m *model) showScreen(i int) {
	n := len(m.screens)
	m.active = ((i % n) + n) % n
	s := m.current()
	m.pages.SwitchToPage(s.Name())
	m.app.SetFocus(s)
	m.refreshChrome()
}

// update applies a store snapshot. Records are only pushed when the dataset
// version changed so sort, query and selection survive idle ticks.
func (m *model) update(snap state.Snapshot) {
	m.lastLoaded = snap.LastLoaded
	m.lastError = snap.LastError
	m.stale = snap.IsStale()
	if snap.HasData() && snap.Version != m.version {
		for _, s := range m.screens {
			s.SetData(snap.Data)
		}
		m.version = snap.Version
	}
	m.refreshChrome()
}

func (m *model) refreshChrome() {
	p := m.palette
	cur := m.current()
	visible, total := cur.Counts()
	m.frame.SetTitle(fmt.Sprintf(" [::b]%s (%d/%d)[::-] ", cur.Title(), visible, total))

	var b strings.Builder
	b.WriteString(tag(p.Warning) + "[::b]quay[::-]  ")
	for i, s := range m.screens {
		if i > 0 {
			b.WriteString(tag(p.Faint) + " · ")
		}
		v, _ := s.Counts()
		color := p.Muted
		if i == m.active {
			color = p.Accent
		}
		fmt.Fprintf(&b, "%s%s %d", tag(color), s.Title(), v)
	}
	if m.options.SourceLabel != "" {
		b.WriteString("  " + tag(p.Muted) + tview.Escape(m.options.SourceLabel))
	}
	if !m.lastLoaded.IsZero() {
		b.WriteString("  " + tag(p.Muted) + m.lastLoaded.Format("15:04:05"))
	}
	if m.lastError != nil {
		label := "ERROR"
		if m.stale {
			label = "STALE"
		}
		b.WriteString("  " + tag(p.Danger) + "[::b]" + label + "[::-] " + tview.Escape(m.lastError.Error()))
	}
	m.header.SetText(b.String())
}

func (m *model) applyPalette() {
	m.palette = PaletteFrom(m.theme)
	p := m.palette
	tview.Styles.PrimitiveBackgroundColor = p.Background
	tview.Styles.ContrastBackgroundColor = p.Surface
	tview.Styles.PrimaryTextColor = p.Text

	m.header.SetBackgroundColor(p.Surface)
	m.header.SetTextColor(p.Text)
	m.frame.SetBackgroundColor(p.Background)
	m.frame.SetBorderColor(p.BorderFocus)
	m.frame.SetTitleColor(p.Text)
	for _, s := range m.screens {
		s.SetPalette(p)
	}
	m.refreshChrome()
}

func (m *model) cycleTheme() {
	m.theme = ui.GetTheme(ui.NextTheme(m.theme.Name))
	m.applyPalette()
	m.savePrefs()
}

func (m *model) savePrefs() {
	if m.options.PrefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Screen: m.current().Name()}
	if err := prefs.Save(m.options.PrefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

func (m *model) modalOpen() bool {
	return m.root.HasPage("modal")
}

func (m *model) showDetail(d detail) {
	p := m.palette
	var b strings.Builder
	for _, f := range d.fields {
		value := f[1]
		if value == "" {
			value = "—"
		}
		fmt.Fprintf(&b, "%s%-14s%s%s\n", tag(p.Muted), tview.Escape(f[0]), tag(p.Text), tview.Escape(value))
	}
	b.WriteString("\n" + tag(p.Faint) + "esc close")

	view := tview.NewTextView().SetDynamicColors(true).SetWrap(false).SetText(b.String())
	view.SetBorder(true).SetTitle(" [::b]" + tview.Escape(d.title) + "[::-] ")
	view.SetBorderColor(p.Accent)
	view.SetBackgroundColor(p.Surface)

	width := 64
	height := len(d.fields) + 4
	overlay := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(view, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)

	m.root.AddPage("modal", overlay, true, true)
	m.app.SetFocus(view)
}

func (m *model) closeModal() {
	m.root.RemovePage("modal")
	m.app.SetFocus(m.current())
}

// handleKey is the application input capture. It returns nil for consumed
// events.
func (m *model) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		m.app.Stop()
		return nil
	}

	if m.modalOpen() {
		switch {
		case event.Key() == tcell.KeyEscape, event.Key() == tcell.KeyEnter,
			event.Key() == tcell.KeyRune && event.Rune() == 'q':
			m.closeModal()
			return nil
		}
		return event
	}

	if m.current().Searching() {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		m.showScreen(m.active + 1)
		m.savePrefs()
		return nil
	case tcell.KeyBacktab:
		m.showScreen(m.active - 1)
		m.savePrefs()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			m.app.Stop()
			return nil
		case 'T':
			m.cycleTheme()
			return nil
		}
	}
	return event
}

// Run wires up the tview application and blocks until ctx is cancelled or
// the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}

	app := tview.NewApplication().EnableMouse(true)
	m, err := newModel(app, opts)
	if err != nil {
		return err
	}
	m.update(opts.Store.Snapshot())

	refreshEvery := opts.PollTick
	if refreshEvery <= 0 {
		refreshEvery = defaultUIInterval
	}

	go func() {
		ticker := time.NewTicker(refreshEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				app.QueueUpdateDraw(func() { app.Stop() })
				return
			case <-ticker.C:
				snapshot := opts.Store.Snapshot()
				app.QueueUpdateDraw(func() {
					m.update(snapshot)
				})
			}
		}
	}()

	app.SetInputCapture(m.handleKey)
	// Counts change with every keystroke and click.
	app.SetBeforeDrawFunc(func(tcell.Screen) bool {
		m.refreshChrome()
		return false
	})
	return app.SetRoot(m.root, true).SetFocus(m.current()).Run()
}
