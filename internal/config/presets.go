package config

import (
	"fmt"
	"sort"

	"github.com/jinzhu/copier"

	"github.com/san-kum/squish/internal/softbody"
)

var Presets = map[string]*Config{
	"jelly": {
		Dt: DefaultDt, Duration: 10, RecordEvery: 1, TimeScale: 5,
		Gravity: Vec{Y: -200}, Bounds: Vec{X: 400, Y: 300}, DragStrength: 1,
		Springs: softbody.Params{
			Ring:       softbody.Spring{Strength: 3, Damping: 1},
			Constraint: softbody.Spring{Strength: 3, Damping: 1},
			Shape:      softbody.Spring{Strength: 2, Damping: 0.5},
		},
		Bodies: []BodyConfig{{Points: 20, Radius: 70, Mass: 1}},
	},
	"stiff": {
		Dt: DefaultDt, Duration: 10, RecordEvery: 1, TimeScale: 5,
		Gravity: Vec{Y: -200}, Bounds: Vec{X: 400, Y: 300}, DragStrength: 2,
		Springs: softbody.Params{
			Ring:       softbody.Spring{Strength: 20, Damping: 2},
			Constraint: softbody.Spring{Strength: 20, Damping: 2},
			Shape:      softbody.Spring{Strength: 15, Damping: 2},
		},
		Bodies: []BodyConfig{{Points: 16, Radius: 60, Mass: 1}},
	},
	"wobbly": {
		Dt: DefaultDt, Duration: 15, RecordEvery: 1, TimeScale: 5,
		Gravity: Vec{Y: -200}, Bounds: Vec{X: 400, Y: 300}, DragStrength: 1,
		Springs: softbody.Params{
			Ring:       softbody.Spring{Strength: 2, Damping: 0.2},
			Constraint: softbody.Spring{Strength: 1, Damping: 0.2},
			Shape:      softbody.Spring{Strength: 0.5, Damping: 0.2},
		},
		Bodies: []BodyConfig{{Points: 24, Radius: 80, Mass: 1}},
	},
	"pair": {
		Dt: DefaultDt, Duration: 10, RecordEvery: 1, TimeScale: 5,
		Gravity: Vec{Y: -200}, Bounds: Vec{X: 400, Y: 300}, DragStrength: 1,
		Springs: softbody.DefaultParams(),
		Bodies: []BodyConfig{
			{Points: 12, Radius: 50, Mass: 1, X: -150},
			{Points: 18, Radius: 70, Mass: 2, X: 150, Y: 100},
		},
	},
	"drop": {
		Dt: DefaultDt, Duration: 8, RecordEvery: 1, TimeScale: 5,
		Gravity: Vec{Y: -400}, Bounds: Vec{X: 400, Y: 300}, DragStrength: 1,
		Springs: softbody.DefaultParams(),
		Bodies: []BodyConfig{{Points: 16, Radius: 60, Mass: 1, Y: 200}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

// Clone returns a deep copy of c. Config holds only plain fields, so a copy
// failure is a programming error.
func (c *Config) Clone() *Config {
	cfg := &Config{}
	if err := copier.CopyWithOption(cfg, c, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
