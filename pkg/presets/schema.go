// pkg/presets/schema.go
package presets

import "workforce-workers/internal/scenario"

// Registry is a versioned collection of named scenario baselines.
type Registry struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Presets     []scenario.Inputs `json:"presets"`
}

// Find returns the preset with the given name, or false when absent.
func (r *Registry) Find(name string) (scenario.Inputs, bool) {
	for _, p := range r.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return scenario.Inputs{}, false
}
