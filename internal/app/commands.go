package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/export"
	"github.com/pstuifzand/tui-flamechart/internal/search"
	"github.com/pstuifzand/tui-flamechart/internal/storage"
	"github.com/pstuifzand/tui-flamechart/internal/theme"
)

const colorPrefix = "color."

// parseCommand splits a command line into words. Double or single quotes
// group words, and a backslash escapes the next character.
func parseCommand(input string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	if err := a.runCommand(parts[0], parts[1:]); err != nil {
		a.SetError(err)
	}
}

func (a *App) runCommand(name string, args []string) error {
	switch name {
	case "q", "quit", "q!", "quit!":
		a.Quit()
	case "e", "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open <file>")
		}
		return a.LoadFile(args[0])
	case "w", "write":
		return a.writeCommand(args)
	case "set":
		return a.setCommand(args)
	case "theme":
		if len(args) != 1 {
			return fmt.Errorf("usage: theme <name>")
		}
		return a.setTheme(args[0])
	case "mkconfig":
		return a.saveConfig(args)
	case "find":
		return a.findCommand(strings.Join(args, " "))
	case "reset":
		a.resetView()
	case "stack":
		a.toggleSetting("stack_upwards")
	case "seq":
		a.toggleSetting("non_sequential")
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		return fmt.Errorf("unknown command: %s", name)
	}
	return nil
}

// writeCommand exports the dataset. The format follows the extension; .md
// writes a report that cannot be opened again.
func (a *App) writeCommand(args []string) error {
	if a.dataset == nil {
		return fmt.Errorf("no dataset loaded")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: write <file> (%s, .md)", strings.Join(storage.Formats(), ", "))
	}
	if strings.EqualFold(filepath.Ext(args[0]), ".md") {
		if err := export.ExportToMarkdown(a.dataset, args[0]); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		a.SetStatus("Exported " + args[0])
		return nil
	}
	if err := storage.NewStore(args[0]).Save(a.dataset); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	a.SetStatus("Written " + args[0])
	return nil
}

// setCommand lists all settings, shows one, or changes one
func (a *App) setCommand(args []string) error {
	switch len(args) {
	case 0:
		a.SetStatus(a.describeSettings())
		return nil
	case 1:
		value, ok := a.settingValue(args[0])
		if !ok {
			return fmt.Errorf("unknown setting: %s", args[0])
		}
		a.SetStatus(args[0] + "=" + value)
		return nil
	}
	key, value := args[0], strings.Join(args[1:], " ")
	if err := a.setSetting(key, value); err != nil {
		return err
	}
	a.SetStatus(key + "=" + value)
	return nil
}

// setSetting changes a setting for this session. color.<type> keys set the
// color of a node type.
func (a *App) setSetting(key, value string) error {
	if typ, ok := strings.CutPrefix(key, colorPrefix); ok {
		if typ == "" {
			return fmt.Errorf("usage: set color.<type> <color>")
		}
		if _, _, err := theme.ParseColor(value); err != nil {
			return fmt.Errorf("invalid color %q: %w", value, err)
		}
		if a.cfg.Chart.Colors == nil {
			a.cfg.Chart.Colors = make(map[string]string)
		}
		a.cfg.Chart.Colors[typ] = value
	} else {
		if err := config.Validate(key, value); err != nil {
			return err
		}
		a.cfg.Set(key, value)
	}
	a.applySettings()
	return nil
}

func (a *App) settingValue(key string) (string, bool) {
	if typ, ok := strings.CutPrefix(key, colorPrefix); ok {
		v, ok := a.cfg.EffectiveChart().Colors[typ]
		return v, ok
	}
	if v, ok := a.cfg.EffectiveChart().Value(key); ok {
		return v, true
	}
	v := a.cfg.Get(key)
	return v, v != ""
}

// describeSettings lists the chart settings that differ from the defaults
func (a *App) describeSettings() string {
	current, defaults := a.cfg.EffectiveChart(), config.DefaultChart()

	var parts []string
	for _, key := range config.ChartKeys() {
		v, _ := current.Value(key)
		if d, _ := defaults.Value(key); v != d {
			parts = append(parts, key+"="+v)
		}
	}
	types := make([]string, 0, len(current.Colors))
	for typ := range current.Colors {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		parts = append(parts, colorPrefix+typ+"="+current.Colors[typ])
	}

	if len(parts) == 0 {
		return "All settings at their defaults"
	}
	return strings.Join(parts, " ")
}

// saveConfig makes the session settings permanent and writes the config
// file, or the given file
func (a *App) saveConfig(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: mkconfig [file]")
	}
	path := a.configPath
	if len(args) == 1 {
		path = args[0]
	}

	a.cfg.Persist()
	var err error
	if path == "" {
		err = a.cfg.Save()
	} else {
		err = a.cfg.SaveToFile(path)
	}
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if path == "" {
		path = "config"
	}
	a.SetStatus("Saved " + path)
	return nil
}

// toggleSetting flips a boolean chart setting
func (a *App) toggleSetting(key string) {
	value, _ := a.cfg.EffectiveChart().Value(key)
	on, _ := strconv.ParseBool(value)
	if err := a.setSetting(key, strconv.FormatBool(!on)); err != nil {
		a.SetError(err)
		return
	}
	a.SetStatus(key + "=" + strconv.FormatBool(!on))
}

// setTheme switches the colors of the screen and the chart
func (a *App) setTheme(name string) error {
	t, err := theme.LoadTheme(name)
	if err != nil {
		return fmt.Errorf("theme %s: %w", name, err)
	}
	a.cfg.Theme = name
	a.screen.Theme = t
	a.engine.SetStyles(stylesFromTheme(t))
	a.applySettings()
	a.SetStatus("Theme " + t.Name)
	return nil
}

// findCommand selects the first node matching query
func (a *App) findCommand(query string) error {
	if query == "" {
		return fmt.Errorf("usage: find <query>")
	}
	nodes, err := search.Search(a.nodes(), query)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no match for %q", query)
	}
	a.selectNode(nodes[0])
	a.SetStatus(fmt.Sprintf("%s (1 of %d)", nodes[0].Name(), len(nodes)))
	return nil
}
