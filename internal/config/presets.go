package config

import "sort"

var Presets = map[string][]PageConfig{
	"default": {
		{Name: "clock", Kind: KindText, Font: "7x13", Center: true, Color: "#00a000"},
		{Name: "life", Kind: KindLife, Color: "#00c040", Seed: "random", Density: DefaultDensity, ReseedEvery: 500},
		{Name: "chaser", Kind: KindChaser, Color: "#ff6020", Seed: "random", Density: 1},
	},
	"life": {
		{Name: "soup", Kind: KindLife, Color: "#00c040", Seed: "random", Density: DefaultDensity, ReseedEvery: 400},
		{Name: "glider", Kind: KindLife, Color: "#40a0ff", Seed: "glider"},
		{Name: "acorn", Kind: KindLife, Color: "#ffc000", Seed: "acorn", ReseedEvery: 1000},
		{Name: "r-pentomino", Kind: KindLife, Color: "#ff4080", Seed: "r-pentomino", ReseedEvery: 1200},
	},
	"chaser": {
		{Name: "ember", Kind: KindChaser, Color: "#ff6020", Seed: "random", Density: 1},
		{Name: "ice", Kind: KindChaser, Color: "#20a0ff", Seed: "random", Density: 1},
		{Name: "moss", Kind: KindChaser, Color: "#60ff40", Seed: "random", Density: 1},
	},
	"text": {
		{Name: "clock", Kind: KindText, Font: "7x13", Center: true, Color: "#00a000"},
		{Name: "clock-small", Kind: KindText, Font: "gomono:8", Color: "#a0a0ff"},
	},
}

// GetPreset returns a copy of the named page set, or nil.
func GetPreset(name string) []PageConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return clonePages(p)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clonePages(p []PageConfig) []PageConfig {
	return append([]PageConfig(nil), p...)
}
