package config

import "sort"

// Presets are alternative scene layouts. Each builder starts from DefaultConfig
// so window, physics and palette settings stay at their reference values.
var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"tower": func() *Config {
		cfg := DefaultConfig()
		cfg.Scene.Stacks = []StackConfig{
			{X: 380, Count: 10, Size: DefaultCubeSize, Density: 1},
		}
		return cfg
	},
	"stairs": func() *Config {
		cfg := DefaultConfig()
		cfg.Scene.Stacks = nil
		for i := 0; i < 5; i++ {
			cfg.Scene.Stacks = append(cfg.Scene.Stacks, StackConfig{
				X: 300 + float64(i)*DefaultCubeSize, Count: i + 1, Size: DefaultCubeSize, Density: 1,
			})
		}
		return cfg
	},
	"rubble": func() *Config {
		cfg := DefaultConfig()
		cfg.Scene.Stacks = []StackConfig{
			{X: 250, Count: 3, Size: 30, Density: 0.5},
			{X: 320, Count: 3, Size: 30, Density: 0.5},
			{X: 390, Count: 3, Size: 30, Density: 0.5},
			{X: 460, Count: 3, Size: 30, Density: 0.5},
		}
		cfg.Scene.Drag.Size = 60
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
