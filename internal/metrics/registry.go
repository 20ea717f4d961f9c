package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/squish/internal/sim"
)

var registry = map[string]func() sim.Metric{
	"kinetic_energy":  func() sim.Metric { return NewKineticEnergy() },
	"momentum":        func() sim.Metric { return NewMomentum() },
	"max_deformation": func() sim.Metric { return NewDeformation() },
	"wall_contacts":   func() sim.Metric { return NewWallContacts() },
}

// All returns a fresh instance of every metric.
func All() []sim.Metric {
	out := make([]sim.Metric, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name]())
	}
	return out
}

func ByName(name string) (sim.Metric, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return f(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
