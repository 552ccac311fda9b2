package history

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Manager loads and saves prompt history as TOML files, one file per prompt
type Manager struct {
	historyDir string
}

// HistoryFile is the on-disk layout of one history file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager in ~/.local/share/tui-flamechart/history/,
// or $XDG_DATA_HOME/tui-flamechart/history when set
func NewManager() (*Manager, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return NewManagerAt(filepath.Join(dataDir, "tui-flamechart", "history"))
}

// NewManagerAt creates a history manager storing its files in dir
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Manager{historyDir: dir}, nil
}

// Dir returns the directory holding the history files
func (m *Manager) Dir() string {
	return m.historyDir
}

// path resolves a history file name inside the manager's directory
func (m *Manager) path(name string) string {
	return filepath.Join(m.historyDir, filepath.Base(name))
}

// Load returns the entries stored in name, oldest first. A missing or
// unreadable TOML file yields an empty history.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(m.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("read history %s: %w", name, err)
	}

	var file HistoryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		log.Printf("history %s: %v", name, err)
		return []string{}, nil
	}
	if file.Entries == nil {
		return []string{}, nil
	}
	return file.Entries, nil
}

// Save replaces the contents of name with entries. The file is written
// next to the old one and renamed over it.
func (m *Manager) Save(name string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(m.historyDir, ".history-*")
	if err != nil {
		return fmt.Errorf("save history %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save history %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save history %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), m.path(name))
}
