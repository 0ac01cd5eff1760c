package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quay/internal/config"
	"github.com/five82/quay/internal/dataset"
	"github.com/five82/quay/internal/prefs"
	"github.com/five82/quay/internal/state"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config.Screens == nil {
		opts.Config = config.Default()
	}
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func loadedStore() *state.Store {
	store := &state.Store{}
	store.Update(dataset.Default(), nil)
	return store
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_InitialScreenFromOptions(t *testing.T) {
	m := newTestModel(t, Options{Screen: config.ScreenUsers})
	if got := m.current().Name(); got != config.ScreenUsers {
		t.Fatalf("active screen = %q, want users", got)
	}

	m = newTestModel(t, Options{Screen: "unknown"})
	if got := m.current().Name(); got != config.ScreenContainers {
		t.Fatalf("active screen = %q, want containers", got)
	}
}

func TestModel_SnapshotPushesRecordsOncePerVersion(t *testing.T) {
	store := loadedStore()
	m := newTestModel(t, Options{Store: store})

	m, _ = send(t, m, snapshotMsg(store.Snapshot()))
	ds := dataset.Default()
	if visible, total := m.current().Counts(); visible != len(ds.Containers) || total != len(ds.Containers) {
		t.Fatalf("counts = %d/%d, want %d", visible, total, len(ds.Containers))
	}

	// Narrow the view, then deliver the same version again: the query survives.
	m, _ = send(t, m, runes("/"))
	for _, r := range "zzz" {
		m, _ = send(t, m, runes(string(r)))
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, snapshotMsg(store.Snapshot()))
	if visible, _ := m.current().Counts(); visible != 0 {
		t.Fatalf("visible = %d after idle snapshot, want 0", visible)
	}

	// Failed reloads keep the data and surface the error.
	store.Update(nil, errors.New("boom"))
	store.Update(nil, errors.New("boom"))
	m, _ = send(t, m, snapshotMsg(store.Snapshot()))
	if !m.stale || m.lastError == nil {
		t.Fatalf("expected stale error state, got stale=%v err=%v", m.stale, m.lastError)
	}
	if header := m.renderHeader(); !strings.Contains(header, "STALE") {
		t.Fatalf("header missing stale marker: %q", header)
	}
	if _, total := m.current().Counts(); total != len(ds.Containers) {
		t.Fatalf("total = %d after failure, want %d", total, len(ds.Containers))
	}
}

func TestModel_TabCyclesScreens(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.current().Name(); got != config.ScreenBills {
		t.Fatalf("after tab = %q, want bills", got)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.current().Name(); got != config.ScreenUsers {
		t.Fatalf("after shift+tab twice = %q, want users", got)
	}
}

func TestModel_SearchSwallowsGlobalKeys(t *testing.T) {
	m := newTestModel(t, Options{Store: loadedStore()})

	m, _ = send(t, m, runes("/"))
	m, cmd := send(t, m, runes("q"))
	if isQuit(cmd) {
		t.Fatalf("q while searching should type, not quit")
	}
	if !m.current().Searching() {
		t.Fatalf("search input lost focus")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = send(t, m, runes("q"))
	if !isQuit(cmd) {
		t.Fatalf("q outside search should quit")
	}
}

func TestModel_ForceQuitAlwaysQuits(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, runes("/"))
	if _, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Fatalf("ctrl+c should quit while searching")
	}
}

func TestModel_RowActivationOpensDetail(t *testing.T) {
	store := loadedStore()
	m := newTestModel(t, Options{Store: store})
	m, _ = send(t, m, snapshotMsg(store.Snapshot()))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter on a row returned no command")
	}
	msg, ok := cmd().(detailMsg)
	if !ok {
		t.Fatalf("row command returned %T, want detailMsg", cmd())
	}
	first := dataset.Default().Containers[0]
	if msg.title != "Container "+first.Number {
		t.Fatalf("detail title = %q", msg.title)
	}
	for _, f := range msg.fields {
		if f.label == "" {
			t.Fatalf("unlabelled field in detail: %+v", f)
		}
	}

	m, _ = send(t, m, msg)
	if m.modal == nil {
		t.Fatalf("detailMsg did not open the modal")
	}
	if view := m.View(); !strings.Contains(view, first.Number) {
		t.Fatalf("modal view missing record number")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil {
		t.Fatalf("esc did not close the modal")
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("? did not open help")
	}
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m, cmd := send(t, m, runes("q"))
	if m.showHelp || isQuit(cmd) {
		t.Fatalf("any key should only close help")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{PrefsPath: path, ThemeName: "Nightfox"})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, runes("T"))
	if m.theme.Name != "Gruvbox" {
		t.Fatalf("theme = %q, want Gruvbox", m.theme.Name)
	}

	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Gruvbox" || p.Screen != config.ScreenBills {
		t.Fatalf("saved prefs = %+v", p)
	}
}

func TestModel_ViewFitsWindow(t *testing.T) {
	store := loadedStore()
	m := newTestModel(t, Options{Store: store, SourceLabel: "sample"})
	m, _ = send(t, m, snapshotMsg(store.Snapshot()))

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	if !strings.Contains(lines[0], "quay") || !strings.Contains(lines[0], "sample") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Containers (7/7)") {
		t.Fatalf("box title = %q", lines[1])
	}
}

func TestModel_MouseClickOnHeaderSorts(t *testing.T) {
	store := loadedStore()
	m := newTestModel(t, Options{Store: store})
	m, _ = send(t, m, snapshotMsg(store.Snapshot()))

	// Table origin is (1,2); its search line is row 0 and the header row 1.
	m, _ = send(t, m, tea.MouseMsg{X: 1, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !strings.Contains(m.View(), "sort Number ▲") {
		t.Fatalf("header click did not sort by number")
	}
}

func TestFormatLoaded(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		since time.Duration
		want  string
	}{
		{10 * time.Second, "10:00:00 (now)"},
		{5 * time.Minute, "10:00:00 (5m ago)"},
		{3 * time.Hour, "10:00:00 (3h ago)"},
		{48 * time.Hour, "10:00:00"},
	}
	for _, tc := range cases {
		if got := formatLoaded(at, at.Add(tc.since)); got != tc.want {
			t.Errorf("formatLoaded(+%s) = %q, want %q", tc.since, got, tc.want)
		}
	}
}
