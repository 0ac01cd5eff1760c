package app

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/five82/quay/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		check   func(t *testing.T, cfg config.Config)
		wantErr string
	}{
		{
			name: "no overrides keeps defaults",
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Renderer != config.RendererTea {
					t.Errorf("Renderer = %q, want %q", cfg.Renderer, config.RendererTea)
				}
				if cfg.PollInterval != 2*time.Second {
					t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
				}
			},
		},
		{
			name: "renderer and poll",
			opts: Options{Renderer: config.RendererTview, PollEvery: 5},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Renderer != config.RendererTview {
					t.Errorf("Renderer = %q", cfg.Renderer)
				}
				if cfg.PollInterval != 5*time.Second {
					t.Errorf("PollInterval = %v, want 5s", cfg.PollInterval)
				}
			},
		},
		{
			name: "locale",
			opts: Options{Locale: "sv-SE"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Locale != language.MustParse("sv-SE") {
					t.Errorf("Locale = %v", cfg.Locale)
				}
			},
		},
		{
			name: "data path is made absolute",
			opts: Options{DataPath: "fixtures/data.jsonc"},
			check: func(t *testing.T, cfg config.Config) {
				if !filepath.IsAbs(cfg.DataPath) {
					t.Errorf("DataPath = %q, want absolute", cfg.DataPath)
				}
			},
		},
		{
			name:    "unknown renderer",
			opts:    Options{Renderer: "curses"},
			wantErr: "invalid renderer",
		},
		{
			name:    "bad locale",
			opts:    Options{Locale: "not a locale!"},
			wantErr: "parse locale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := applyOverrides(&cfg, tt.opts)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("applyOverrides() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyOverrides() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "quay.log")
	closeLog, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	log.Printf("dataset reloaded")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "dataset reloaded") {
		t.Errorf("log file = %q, want the logged line", data)
	}
}

func TestRun_MissingDatasetIsFatal(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	dir := t.TempDir()
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		DataPath:   filepath.Join(dir, "missing.jsonc"),
	})
	if err == nil || !strings.Contains(err.Error(), "load dataset") {
		t.Fatalf("Run() error = %v, want load dataset error", err)
	}
}
