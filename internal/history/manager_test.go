package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	entries, err := m.Load("search.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, m.Save("search.toml", []string{"render", "type:gc"}))
	entries, err = m.Load("search.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"render", "type:gc"}, entries)
}

func TestManagerIgnoresCorruptFile(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(m.Dir(), "command.toml"), []byte("entries = ["), 0644))
	entries, err := m.Load("command.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewManagerUsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	m, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tui-flamechart", "history"), m.Dir())
}

func TestManagerSaveReplacesFile(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Save("search.toml", []string{"a", "b", "c"}))
	require.NoError(t, m.Save("search.toml", []string{"d"}))

	entries, err := m.Load("search.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, entries)

	files, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	assert.Len(t, files, 1, "no temporary files left behind")
}
