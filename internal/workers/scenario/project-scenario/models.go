// internal/workers/scenario/project-scenario/models.go
package projectscenario

import "workforce-workers/internal/scenario"

// Input names either an inline scenario or a registered preset. Parameters
// outside the supported range are clamped, never rejected.
type Input struct {
	Scenario   *scenario.Inputs `json:"scenario,omitempty"`
	Preset     string           `json:"preset,omitempty"`
	Parameters scenario.Params  `json:"parameters"`
}

type Output struct {
	Scenario   scenario.Inputs     `json:"scenario"`
	Parameters scenario.Params     `json:"parameters"`
	Projection scenario.Projection `json:"projection"`
	Risks      []scenario.Risk     `json:"risks"`
}
