package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig is the layout of a theme file. Colors are keyed by the toml
// names of Colors; keys left out keep the Tokyo Night value.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

var builtins = map[string]func() *Theme{
	"default":     Default,
	"tokyo-night": TokyoNight,
}

// Dirs lists the directories searched for <name>.toml, first match wins
func Dirs() []string {
	var dirs []string
	if cfg := os.Getenv("XDG_CONFIG_HOME"); cfg != "" {
		dirs = append(dirs, filepath.Join(cfg, "tui-flamechart", "themes"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".config", "tui-flamechart", "themes"),
			filepath.Join(home, ".local", "share", "tui-flamechart", "themes"),
		)
	}
	return dirs
}

// LoadTheme resolves name against the theme directories, then against the
// built-in themes
func LoadTheme(name string) (*Theme, error) {
	for _, dir := range Dirs() {
		t, err := LoadThemeFromFile(filepath.Join(dir, name+".toml"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return t, err
	}
	if builtin, ok := builtins[name]; ok {
		return builtin(), nil
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// LoadThemeFromFile reads a theme file on top of Tokyo Night
func LoadThemeFromFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	var cfg ThemeConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}

	t := TokyoNight()
	if cfg.Name != "" {
		t.Name = cfg.Name
	}
	fields := t.Colors.fields()
	for key, value := range cfg.Colors {
		field, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", key)
		}
		c, _, err := ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("theme color %s: %w", key, err)
		}
		*field = ToTcell(c)
	}
	return t, nil
}

// LoadThemeOrDefault is LoadTheme with Tokyo Night for names that fail to
// load. The failure is logged.
func LoadThemeOrDefault(name string) *Theme {
	t, err := LoadTheme(name)
	if err != nil {
		log.Printf("theme %s: %v", name, err)
		return TokyoNight()
	}
	return t
}
