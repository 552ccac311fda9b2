package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("time_units", "us")
	if cfg.Get("time_units") != "us" {
		t.Errorf("Expected 'us', got '%s'", cfg.Get("time_units"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	// Test getting a value that doesn't exist
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	// Set and then get
	cfg.Set("test", "value")
	if cfg.Get("test") != "value" {
		t.Errorf("Expected 'value', got '%s'", cfg.Get("test"))
	}
}

func TestGetAll(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("key1", "value1")
	cfg.Set("key2", "value2")

	all := cfg.GetAll()
	if len(all) != 2 {
		t.Errorf("Expected 2 settings, got %d", len(all))
	}

	if all["key1"] != "value1" {
		t.Errorf("Expected 'value1', got '%s'", all["key1"])
	}

	if all["key2"] != "value2" {
		t.Errorf("Expected 'value2', got '%s'", all["key2"])
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	// Modify the returned map
	all := cfg.GetAll()
	all["original"] = "modified"

	// Verify the original config was not modified
	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}
	// sessionSettings is nil

	// Set should initialize it
	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	// Get should handle nil gracefully
	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Theme != "tokyo-night" {
		t.Errorf("Expected default theme 'tokyo-night', got '%s'", cfg.Theme)
	}

	if cfg.sessionSettings == nil {
		t.Errorf("defaultConfig should initialize sessionSettings")
	}
}

func TestDefaultChart(t *testing.T) {
	chart := defaultConfig().Chart

	if chart.MinTickSpacing != 85 {
		t.Errorf("Expected min_tick_spacing 85, got %v", chart.MinTickSpacing)
	}
	if chart.HueStep != 27 {
		t.Errorf("Expected hue_step 27, got %v", chart.HueStep)
	}
	if chart.MinDrawableWidth != 0.25 {
		t.Errorf("Expected min_drawable_width 0.25, got %v", chart.MinDrawableWidth)
	}
	if chart.HitRebuildDelayMS != 16 {
		t.Errorf("Expected hit_rebuild_delay_ms 16, got %d", chart.HitRebuildDelayMS)
	}
	if chart.Tooltip != TooltipDefault || chart.MergeOrder != MergeOrderRows {
		t.Errorf("Unexpected tooltip/merge order: %s/%s", chart.Tooltip, chart.MergeOrder)
	}
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
theme = "default"

[chart]
stack_upwards = true
max_cluster_width = 40

[chart.colors]
task = "#ff0000"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Theme != "default" {
		t.Errorf("Expected theme 'default', got '%s'", cfg.Theme)
	}
	if !cfg.Chart.StackUpwards {
		t.Errorf("Expected stack_upwards to be true")
	}
	if cfg.Chart.MaxClusterWidth != 40 {
		t.Errorf("Expected max_cluster_width 40, got %v", cfg.Chart.MaxClusterWidth)
	}
	if cfg.Chart.MinTickSpacing != 85 {
		t.Errorf("Missing keys should keep defaults, got min_tick_spacing %v", cfg.Chart.MinTickSpacing)
	}
	if cfg.Chart.Colors["task"] != "#ff0000" {
		t.Errorf("Expected color for task, got '%s'", cfg.Chart.Colors["task"])
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if cfg.Chart.StickDistance != 0.25 {
		t.Errorf("Expected default stick_distance, got %v", cfg.Chart.StickDistance)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[chart\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Errorf("Expected parse error")
	}
}

func TestEffectiveChart(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings["hue_step"] = "30"
	cfg.Set("stack_upwards", "true")
	cfg.Set("min_block_size", "2")
	cfg.Set("stick_distance", "bogus")

	chart := cfg.EffectiveChart()
	if !chart.StackUpwards {
		t.Errorf("Session setting should apply")
	}
	if chart.HueStep != 30 {
		t.Errorf("Persisted setting should apply, got %v", chart.HueStep)
	}
	if chart.StickDistance != 0.25 {
		t.Errorf("Invalid setting should be skipped, got %v", chart.StickDistance)
	}
	if cfg.Chart.StackUpwards {
		t.Errorf("EffectiveChart must not modify the [chart] section")
	}

	th := cfg.Thresholds()
	if th.MinBlockSize != 2 || th.StickDistance != 0.25 {
		t.Errorf("Unexpected thresholds %+v", th)
	}
	if cfg.HitRebuildDelay() != 16*time.Millisecond {
		t.Errorf("Unexpected delay %v", cfg.HitRebuildDelay())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"stack_upwards", "true", false},
		{"stack_upwards", "maybe", true},
		{"tooltip", "none", false},
		{"tooltip", "fancy", true},
		{"merge_order", "preorder", false},
		{"merge_order", "random", true},
		{"min_tick_spacing", "0", true},
		{"max_cluster_width", "0", false},
		{"stick_distance", "-1", true},
		{"hue_step", "NaN", true},
		{"hit_rebuild_delay_ms", "1.5", true},
		{"unknown", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := Validate(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}

	if !IsChartKey("stack_upwards") || IsChartKey("unknown") {
		t.Errorf("IsChartKey mismatch")
	}
	if len(ChartKeys()) != 15 {
		t.Errorf("Expected 15 chart keys, got %d", len(ChartKeys()))
	}
}

func TestChartValue(t *testing.T) {
	chart := DefaultChart()
	for _, key := range ChartKeys() {
		value, ok := chart.Value(key)
		if !ok {
			t.Errorf("Value(%q) not found", key)
			continue
		}
		// every formatted default must parse back
		if err := Validate(key, value); err != nil {
			t.Errorf("Value(%q) = %q does not validate: %v", key, value, err)
		}
	}

	if v, _ := chart.Value("stick_distance"); v != "0.25" {
		t.Errorf("Expected 0.25, got %q", v)
	}
	if _, ok := chart.Value("unknown"); ok {
		t.Errorf("Unknown key should not have a value")
	}
}

func TestPersistAndSaveToFile(t *testing.T) {
	cfg := Default()
	cfg.Theme = "default"
	cfg.Set("stick_distance", "0.5")
	cfg.Chart.Colors = map[string]string{"cpu": "#ff0000"}
	cfg.Persist()

	if cfg.Settings["stick_distance"] != "0.5" {
		t.Fatalf("Persist did not move the session setting, got %v", cfg.Settings)
	}
	if got := cfg.Get("stick_distance"); got != "0.5" {
		t.Errorf("Expected setting to survive Persist, got %q", got)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Theme != "default" {
		t.Errorf("Expected theme 'default', got %q", loaded.Theme)
	}
	if got := loaded.Thresholds().StickDistance; got != 0.5 {
		t.Errorf("Expected stick distance 0.5, got %v", got)
	}
	if got := loaded.Chart.Colors["cpu"]; got != "#ff0000" {
		t.Errorf("Expected cpu color '#ff0000', got %q", got)
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if want := filepath.Join(dir, "tui-flamechart"); got != want {
		t.Errorf("GetConfigDir = %q, want %q", got, want)
	}

	cfg := Default()
	cfg.Settings["stick_distance"] = "0.25"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Get("stick_distance") != "0.25" {
		t.Errorf("saved setting not loaded back: %v", loaded.Settings)
	}
}
