package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quay/internal/config"
	"github.com/five82/quay/internal/dataset"
	"github.com/five82/quay/internal/prefs"
	"github.com/five82/quay/internal/state"
	"github.com/five82/quay/internal/ui"
	"github.com/five82/quay/internal/ui/classic"
)

// Options configure the quay application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/quay/prefs.toml
	DataPath   string
	Renderer   string
	PollEvery  int // seconds
	LogFile    string
	Locale     string
}

// Run boots the quay TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("load prefs: %v", err)
	}

	source := dataset.Source{Path: cfg.DataPath}
	store := &state.Store{}

	// A dataset that cannot be read at startup is fatal; later failures are
	// shown in the header while the previous data stays on screen.
	ds, err := source.Load()
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	store.Update(ds, nil)

	StartPoller(ctx, store, source, cfg.PollInterval)

	switch cfg.Renderer {
	case config.RendererTview:
		return classic.Run(ctx, classic.Options{
			Store:       store,
			Config:      cfg,
			SourceLabel: source.Label(),
			PollTick:    ui.DefaultUIInterval,
			ThemeName:   userPrefs.Theme,
			PrefsPath:   opts.PrefsPath,
			Screen:      userPrefs.Screen,
		})
	default:
		return ui.Run(ui.Options{
			Context:     ctx,
			Store:       store,
			Config:      cfg,
			SourceLabel: source.Label(),
			PollTick:    ui.DefaultUIInterval,
			ThemeName:   userPrefs.Theme,
			PrefsPath:   opts.PrefsPath,
			Screen:      userPrefs.Screen,
		})
	}
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.DataPath != "" {
		path, err := config.ExpandPath(opts.DataPath)
		if err != nil {
			return fmt.Errorf("data path: %w", err)
		}
		cfg.DataPath = path
	}
	if opts.LogFile != "" {
		path, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}
	if opts.Renderer != "" {
		cfg.Renderer = opts.Renderer
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.Locale != "" {
		tag, err := config.ParseLocale(opts.Locale)
		if err != nil {
			return err
		}
		cfg.Locale = tag
	}
	return cfg.Validate()
}

// setupLogging routes the standard logger to path. Without a path logs are
// discarded since the terminal belongs to the UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "quay")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
