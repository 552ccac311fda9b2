package config

import (
	"fmt"
	"maps"
	"math"
	"sort"
	"strconv"
)

// Tooltip modes
const (
	TooltipDefault = "default"
	TooltipNone    = "none"
)

// Merge orders
const (
	MergeOrderRows     = "rows"
	MergeOrderPreorder = "preorder"
)

// ChartConfig is the [chart] section
type ChartConfig struct {
	StackUpwards      bool              `toml:"stack_upwards"`
	NonSequential     bool              `toml:"non_sequential"`
	Tooltip           string            `toml:"tooltip"`
	TimeUnits         string            `toml:"time_units"`
	MergeOrder        string            `toml:"merge_order"`
	MinTickSpacing    float64           `toml:"min_tick_spacing"`
	HueStep           float64           `toml:"hue_step"`
	MinDrawableWidth  float64           `toml:"min_drawable_width"`
	MinTextWidth      float64           `toml:"min_text_width"`
	BlockHeight       float64           `toml:"block_height"`
	BadgeSize         float64           `toml:"badge_size"`
	HitRebuildDelayMS int               `toml:"hit_rebuild_delay_ms"`
	StickDistance     float64           `toml:"stick_distance"`
	MinBlockSize      float64           `toml:"min_block_size"`
	MaxClusterWidth   float64           `toml:"max_cluster_width"`
	Colors            map[string]string `toml:"colors"`
}

// DefaultChart returns the chart settings used when nothing is configured
func DefaultChart() ChartConfig {
	return ChartConfig{
		StackUpwards:      false,
		NonSequential:     false,
		Tooltip:           TooltipDefault,
		TimeUnits:         "ms",
		MergeOrder:        MergeOrderRows,
		MinTickSpacing:    85,
		HueStep:           27,
		MinDrawableWidth:  0.25,
		MinTextWidth:      4,
		BlockHeight:       1,
		BadgeSize:         1,
		HitRebuildDelayMS: 16,
		StickDistance:     0.25,
		MinBlockSize:      1,
		MaxClusterWidth:   0,
		Colors:            make(map[string]string),
	}
}

func (c ChartConfig) clone() ChartConfig {
	c.Colors = maps.Clone(c.Colors)
	if c.Colors == nil {
		c.Colors = make(map[string]string)
	}
	return c
}

// ChartKeys returns the setting names that change the chart, sorted
func ChartKeys() []string {
	keys := make([]string, 0, len(chartSetters))
	for k := range chartSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsChartKey reports whether key is one of the chart settings
func IsChartKey(key string) bool {
	_, ok := chartSetters[key]
	return ok
}

// Validate checks that value parses for key. Unknown keys are accepted as
// free-form settings.
func Validate(key, value string) error {
	c := DefaultChart()
	return c.apply(key, value)
}

func (c *ChartConfig) apply(key, value string) error {
	set, ok := chartSetters[key]
	if !ok {
		return nil
	}
	if err := set(c, value); err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return nil
}

type chartSetter func(c *ChartConfig, value string) error

var chartSetters = map[string]chartSetter{
	"stack_upwards":  boolSetter(func(c *ChartConfig) *bool { return &c.StackUpwards }),
	"non_sequential": boolSetter(func(c *ChartConfig) *bool { return &c.NonSequential }),
	"tooltip": func(c *ChartConfig, value string) error {
		switch value {
		case TooltipDefault, TooltipNone:
			c.Tooltip = value
			return nil
		}
		return fmt.Errorf("want %s or %s", TooltipDefault, TooltipNone)
	},
	"time_units": func(c *ChartConfig, value string) error {
		c.TimeUnits = value
		return nil
	},
	"merge_order": func(c *ChartConfig, value string) error {
		switch value {
		case MergeOrderRows, MergeOrderPreorder:
			c.MergeOrder = value
			return nil
		}
		return fmt.Errorf("want %s or %s", MergeOrderRows, MergeOrderPreorder)
	},
	"min_tick_spacing":   positiveSetter(func(c *ChartConfig) *float64 { return &c.MinTickSpacing }),
	"hue_step":           floatSetter(func(c *ChartConfig) *float64 { return &c.HueStep }),
	"min_drawable_width": floatSetter(func(c *ChartConfig) *float64 { return &c.MinDrawableWidth }),
	"min_text_width":     floatSetter(func(c *ChartConfig) *float64 { return &c.MinTextWidth }),
	"block_height":       positiveSetter(func(c *ChartConfig) *float64 { return &c.BlockHeight }),
	"badge_size":         floatSetter(func(c *ChartConfig) *float64 { return &c.BadgeSize }),
	"hit_rebuild_delay_ms": func(c *ChartConfig, value string) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("must not be negative")
		}
		c.HitRebuildDelayMS = v
		return nil
	},
	"stick_distance":    floatSetter(func(c *ChartConfig) *float64 { return &c.StickDistance }),
	"min_block_size":    floatSetter(func(c *ChartConfig) *float64 { return &c.MinBlockSize }),
	"max_cluster_width": floatSetter(func(c *ChartConfig) *float64 { return &c.MaxClusterWidth }),
}

func boolSetter(field func(c *ChartConfig) *bool) chartSetter {
	return func(c *ChartConfig, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func floatSetter(field func(c *ChartConfig) *float64) chartSetter {
	return func(c *ChartConfig, value string) error {
		v, err := parseNumber(value)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("must not be negative")
		}
		*field(c) = v
		return nil
	}
}

func positiveSetter(field func(c *ChartConfig) *float64) chartSetter {
	return func(c *ChartConfig, value string) error {
		v, err := parseNumber(value)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("must be positive")
		}
		*field(c) = v
		return nil
	}
}

func parseNumber(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be a finite number")
	}
	return v, nil
}

// Value formats the current value of the setting key. ok is false for keys
// that are not chart settings.
func (c ChartConfig) Value(key string) (value string, ok bool) {
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	switch key {
	case "stack_upwards":
		return strconv.FormatBool(c.StackUpwards), true
	case "non_sequential":
		return strconv.FormatBool(c.NonSequential), true
	case "tooltip":
		return c.Tooltip, true
	case "time_units":
		return c.TimeUnits, true
	case "merge_order":
		return c.MergeOrder, true
	case "min_tick_spacing":
		return num(c.MinTickSpacing), true
	case "hue_step":
		return num(c.HueStep), true
	case "min_drawable_width":
		return num(c.MinDrawableWidth), true
	case "min_text_width":
		return num(c.MinTextWidth), true
	case "block_height":
		return num(c.BlockHeight), true
	case "badge_size":
		return num(c.BadgeSize), true
	case "hit_rebuild_delay_ms":
		return strconv.Itoa(c.HitRebuildDelayMS), true
	case "stick_distance":
		return num(c.StickDistance), true
	case "min_block_size":
		return num(c.MinBlockSize), true
	case "max_cluster_width":
		return num(c.MaxClusterWidth), true
	}
	return "", false
}
