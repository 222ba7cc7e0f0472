// internal/workers/scoring/rank-roles/models.go
package rankroles

import "workforce-workers/internal/models"

// Rank modes: by composite score on a horizon, or by redesign priority tier.
const (
	ModeScore    = "score"
	ModePriority = "priority"
)

type Input struct {
	Scores  []models.RoleScore `json:"scores"`
	Mode    string             `json:"mode"`
	Horizon string             `json:"horizon,omitempty"`
	Limit   int                `json:"limit,omitempty"`
}

type Output struct {
	Ranked []models.RoleScore `json:"ranked"`
	Count  int                `json:"count"`
	Mode   string             `json:"mode"`
}
