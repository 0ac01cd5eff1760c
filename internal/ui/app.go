package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quay/internal/config"
	"github.com/five82/quay/internal/prefs"
	"github.com/five82/quay/internal/state"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Config      config.Config
	SourceLabel string
	PollTick    time.Duration
	ThemeName   string
	PrefsPath   string
	Screen      string // initial screen name; empty selects the first
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	source    string
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	screens  []screen
	active   int
	modal    Modal
	showHelp bool

	// Data state
	version    uint64
	lastLoaded time.Time
	lastError  error
	stale      bool
}

// New creates the root model. It fails only when a screen's column set is
// invalid.
func New(opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	screens, err := buildScreens(opts.Config)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		source:    opts.SourceLabel,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		screens:   screens,
	}
	for i, s := range screens {
		if s.Name() == opts.Screen {
			m.active = i
		}
	}
	m.applyTheme()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.modal != nil || m.showHelp {
			return m, nil
		}
		return m, m.current().Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layoutScreens()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case detailMsg:
		m.modal = newDetailModal(msg)
		return m, nil
	}

	// Cursor blink and other component messages.
	return m, m.current().Update(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	cur := m.current()
	visible, total := cur.Counts()
	title := fmt.Sprintf("%s (%d/%d)", cur.Title(), visible, total)
	b.WriteString(m.renderTitledBox(title, cur.View(), m.width, m.height-1, true))
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	cur := m.current()
	if cur.Searching() {
		return m, cur.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.savePrefs()
	case key.Matches(msg, m.keys.NextScreen):
		m.switchScreen(1)
	case key.Matches(msg, m.keys.PrevScreen):
		m.switchScreen(-1)
	default:
		return m, cur.Update(msg)
	}
	return m, nil
}

func (m Model) current() screen {
	return m.screens[m.active]
}

func (m *Model) switchScreen(delta int) {
	n := len(m.screens)
	m.active = ((m.active+delta)%n + n) % n
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Screen: m.current().Name()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

func (m *Model) applyTheme() {
	styles := m.theme.TableStyles(m.theme.FocusBg)
	for _, s := range m.screens {
		s.SetStyles(styles)
	}
}

// layoutScreens sizes every screen to the inside of the content box below
// the header line.
func (m *Model) layoutScreens() {
	w := max(m.width-2, 1)
	h := max(m.height-3, 1)
	for _, s := range m.screens {
		s.SetSize(w, h)
		s.SetPosition(1, 2)
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.lastLoaded = snap.LastLoaded
	m.lastError = snap.LastError
	m.stale = snap.IsStale()
	if !snap.HasData() || snap.Version == m.version {
		return
	}
	for _, s := range m.screens {
		s.SetData(snap.Data)
	}
	m.version = snap.Version
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
