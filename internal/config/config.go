package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Renderers accepted by the renderer key.
const (
	RendererTea   = "tea"
	RendererTview = "tview"
)

// Screen names of the dashboard portals.
const (
	ScreenContainers = "containers"
	ScreenBills      = "bills"
	ScreenUsers      = "users"
)

// Screen configures one table screen.
type Screen struct {
	Searchable   bool
	Placeholder  string
	EmptyMessage string
}

// Config is the resolved quay configuration.
type Config struct {
	DataPath     string
	Renderer     string
	PollInterval time.Duration
	LogFile      string
	Locale       language.Tag
	Screens      map[string]Screen
}

const (
	defaultConfigPath   = "~/.config/quay/config.toml"
	defaultPollInterval = 2 * time.Second
	defaultPlaceholder  = "Search..."
	defaultEmptyMessage = "No data"
)

// DefaultScreen is the configuration of a screen with no [screens.<name>] table.
func DefaultScreen() Screen {
	return Screen{Searchable: true, Placeholder: defaultPlaceholder, EmptyMessage: defaultEmptyMessage}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Renderer:     RendererTea,
		PollInterval: defaultPollInterval,
		Locale:       language.Und,
		Screens:      map[string]Screen{},
	}
}

// Screen returns the configuration of the named screen, falling back to
// DefaultScreen.
func (c Config) Screen(name string) Screen {
	if s, ok := c.Screens[name]; ok {
		return s
	}
	return DefaultScreen()
}

type rawScreen struct {
	Searchable   *bool  `toml:"searchable"`
	Placeholder  string `toml:"placeholder"`
	EmptyMessage string `toml:"empty_message"`
}

type rawConfig struct {
	DataPath    string               `toml:"data_path"`
	Renderer    string               `toml:"renderer"`
	PollSeconds int                  `toml:"poll_seconds"`
	LogFile     string               `toml:"log_file"`
	Locale      string               `toml:"locale"`
	Screens     map[string]rawScreen `toml:"screens"`
}

// Load locates and parses the quay config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.DataPath); p != "" {
		cfg.DataPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}
	if r := strings.TrimSpace(raw.Renderer); r != "" {
		cfg.Renderer = r
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if l := strings.TrimSpace(raw.Locale); l != "" {
		cfg.Locale, err = ParseLocale(l)
		if err != nil {
			return Config{}, err
		}
	}

	for name, rs := range raw.Screens {
		s := DefaultScreen()
		if rs.Searchable != nil {
			s.Searchable = *rs.Searchable
		}
		if p := strings.TrimSpace(rs.Placeholder); p != "" {
			s.Placeholder = p
		}
		if m := strings.TrimSpace(rs.EmptyMessage); m != "" {
			s.EmptyMessage = m
		}
		cfg.Screens[strings.ToLower(strings.TrimSpace(name))] = s
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be honoured.
func (c Config) Validate() error {
	switch c.Renderer {
	case RendererTea, RendererTview:
	default:
		return fmt.Errorf("invalid renderer %q (want %q or %q)", c.Renderer, RendererTea, RendererTview)
	}
	for name := range c.Screens {
		switch name {
		case ScreenContainers, ScreenBills, ScreenUsers:
		default:
			return fmt.Errorf("unknown screen %q", name)
		}
	}
	return nil
}

// ParseLocale parses a BCP 47 tag such as "de" or "sv-SE".
func ParseLocale(value string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", value, err)
	}
	return tag, nil
}

// ExpandPath resolves "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
