// Package config loads the persisted settings file. The file lives at
// <user config dir>/rdfless/config.toml; its absence is not an error,
// defaults apply and the file is written lazily on first use.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/rdfless/rdfless/internal/theme"
)

type Output struct {
	// Expand makes full references the default instead of prefixed names.
	Expand bool `toml:"expand"`
	// Pager always pipes terminal output through the pager.
	Pager bool `toml:"pager"`
	// AutoPager pipes output through the pager when it would overflow
	// the screen.
	AutoPager bool `toml:"auto_pager"`
	// AutoPagerThreshold is the line count above which auto-paging
	// starts; zero means the terminal height decides.
	AutoPagerThreshold int `toml:"auto_pager_threshold"`
}

type Themes struct {
	// AutoDetect picks dark or light from the terminal background.
	AutoDetect bool         `toml:"auto_detect"`
	Dark       theme.Colors `toml:"dark"`
	Light      theme.Colors `toml:"light"`
}

type Config struct {
	Colors theme.Colors `toml:"colors"`
	Output Output       `toml:"output"`
	Themes Themes       `toml:"theme"`
}

// Default leaves the color sections empty; the built-in role colors
// are applied during ThemeColors resolution so that a sparse user
// file overrides exactly what it names.
func Default() Config {
	return Config{
		Output: Output{AutoPager: true},
		Themes: Themes{AutoDetect: true},
	}
}

// Path returns the config file location for this user.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "rdfless", "config.toml"), nil
}

// Load reads the user config file. A missing file yields the defaults
// and is created lazily so the user has something to edit; a file that
// exists but does not parse is an error, silently ignoring it would
// hide the user's intent.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		_ = Write(path, Default())
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Write persists the config, creating the directory as needed.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// ThemeColors resolves the effective role colors for the chosen
// background. Theme-specific settings win over the base color section,
// which in turn wins over the built-in defaults.
func (c Config) ThemeColors(dark bool) theme.Colors {
	defaults := theme.LightDefaults()
	selected := c.Themes.Light
	if dark {
		defaults = theme.DarkDefaults()
		selected = c.Themes.Dark
	}
	return selected.Merge(c.Colors.Merge(defaults))
}
