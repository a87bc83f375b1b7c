package config

import "sort"

// Presets are named starting points for the composition.
var Presets = map[string]*Config{
	"dense": {
		Width: 1280, Height: 800, Wheels: 40, ColorGroups: 5,
		Audio: AudioConfig{Source: "synth"},
	},
	"sparse": {
		Width: 1024, Height: 640, Wheels: 12, ColorGroups: 3,
		MinRadius: 48, MaxRadius: 120,
		Audio: AudioConfig{Source: "synth"},
	},
	"calm": {
		Width: 1024, Height: 640, Wheels: 18, ColorGroups: 2,
		Audio: AudioConfig{Source: "synth"},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
