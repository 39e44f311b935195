// Package scenario provides canned charge arrangements for the viewer, the
// terminal preview, and the bench command. A scenario seeds a tracker and
// optionally keeps mutating it every tick, which is what exercises the diff
// queue with realistic add/move/remove traffic.
package scenario

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/fieldlab/internal/field"
)

type Scenario interface {
	Name() string
	Description() string
	// Setup seeds the tracker with the initial arrangement.
	Setup(t *field.Tracker, rng *rand.Rand)
	// Step advances the arrangement by one tick. Static scenarios no-op.
	Step(t *field.Tracker, rng *rand.Rand, tick int)
}

type Registry struct {
	scenarios map[string]func() Scenario
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]func() Scenario)}

	r.scenarios["dipole"] = func() Scenario { return &Dipole{} }
	r.scenarios["lattice"] = func() Scenario { return &Lattice{Rows: 4, Cols: 4, Spacing: 1.5} }
	r.scenarios["orbit"] = func() Scenario { return &Orbit{Radius: 2.5} }
	r.scenarios["churn"] = func() Scenario { return &Churn{MaxCharges: 24} }

	return r
}

func (r *Registry) Get(name string) (Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
