// pkg/presets/presets.go
package presets

import (
	"encoding/json"
	"os"

	"workforce-workers/internal/scenario"
)

// BaselineName is the built-in current-state preset shipped with the engine.
const BaselineName = "FCB Current State"

// Builtin returns the embedded preset registry. It is the fallback when no
// registry file is configured.
func Builtin() *Registry {
	return &Registry{
		Version: "1.0",
		Presets: []scenario.Inputs{
			{
				Name:         BaselineName,
				FTE:          46,
				StaffCost:    6600550,
				Revenue:      11904526,
				AvgSalary:    143490,
				AIInvestment: 250000,
			},
		},
	}
}

// LoadRegistry reads a preset registry from a JSON file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg Registry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}
