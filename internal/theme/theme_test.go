package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input     string
		wantHex   string
		wantAlpha float64
		wantErr   bool
	}{
		{"#ff0000", "#ff0000", 1, false},
		{"#0f0", "#00ff00", 1, false},
		{"rgb(0, 0, 255)", "#0000ff", 1, false},
		{"rgba(90,90,90,0.20)", "#5a5a5a", 0.2, false},
		{"transparent", "#000000", 0, false},
		{"green", "#008000", 1, false},
		{"  #FFFFFF ", "#ffffff", 1, false},
		{"#12345", "", 0, true},
		{"rgb(300,0,0)", "", 0, true},
		{"rgba(1,2,3)", "", 0, true},
		{"rgba(1,2,3,2)", "", 0, true},
		{"chartreuse-ish", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, alpha, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHex, c.Hex())
			assert.InDelta(t, tt.wantAlpha, alpha, 1e-9)
		})
	}
}

func TestParseColorString(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), ParseColorString("#ff0000"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("transparent"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("nope"))
}

func TestHexRoundTrip(t *testing.T) {
	c := HexToColor("#7aa2f7")
	assert.Equal(t, "#7aa2f7", ToHex(c))
	assert.Equal(t, "", ToHex(tcell.ColorDefault))
}

func TestBlend(t *testing.T) {
	c, alpha, err := ParseColor("rgba(255,255,255,0.5)")
	require.NoError(t, err)

	blended := Blend(c, alpha, tcell.NewRGBColor(0, 0, 0))
	r, g, b := blended.RGB()
	assert.InDelta(t, 128, r, 1)
	assert.InDelta(t, 128, g, 1)
	assert.InDelta(t, 128, b, 1)

	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), Blend(c, 1, tcell.ColorDefault))
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("overrides", func(t *testing.T) {
		path := filepath.Join(dir, "mine.toml")
		content := "name = \"mine\"\n[colors]\nselection = \"#ff00ff\"\ngrid_line = \"rgb(1,2,3)\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		th, err := LoadThemeFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "mine", th.Name)
		assert.Equal(t, HexToColor("#ff00ff"), th.Colors.Selection)
		assert.Equal(t, tcell.NewRGBColor(1, 2, 3), th.Colors.GridLine)
		assert.Equal(t, TokyoNight().Colors.TooltipText, th.Colors.TooltipText)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[colors]\ntree_normal_text = \"#fff\"\n"), 0644))

		_, err := LoadThemeFromFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadThemeFromFile(filepath.Join(dir, "missing.toml"))
		assert.Error(t, err)
	})
}

func TestLoadThemeOrDefault(t *testing.T) {
	assert.Equal(t, "default", LoadThemeOrDefault("default").Name)
	assert.Equal(t, "tokyo-night", LoadThemeOrDefault("does-not-exist-anywhere").Name)
}

func TestLoadThemeSearchesDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	themes := filepath.Join(dir, "tui-flamechart", "themes")
	require.NoError(t, os.MkdirAll(themes, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(themes, "paper.toml"), []byte("name = \"paper\"\n"), 0644))

	th, err := LoadTheme("paper")
	require.NoError(t, err)
	assert.Equal(t, "paper", th.Name)

	th, err = LoadTheme("default")
	require.NoError(t, err)
	assert.Equal(t, "default", th.Name)

	_, err = LoadTheme("does-not-exist-anywhere")
	assert.Error(t, err)
}
