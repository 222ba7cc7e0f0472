// internal/workers/ai/extract-scenario/models.go
package extractscenario

import "workforce-workers/internal/scenario"

type Input struct {
	Description  string `json:"description"`
	DocumentText string `json:"documentText,omitempty"`
}

// Confidence levels per extracted field: high means the value was explicit in
// the text, medium derived from other figures, low inferred by the model.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

type Output struct {
	Scenario            scenario.Inputs   `json:"scenario"`
	SuggestedParameters scenario.Params   `json:"suggestedParameters"`
	Confidence          map[string]string `json:"confidence"`
	Assumptions         []string          `json:"assumptions"`
	MissingFields       []string          `json:"missingFields"`
}
