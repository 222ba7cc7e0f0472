// internal/workers/scoring/score-roles/models.go
package scoreroles

import (
	"workforce-workers/internal/models"
	"workforce-workers/internal/scoring"
)

// RoleScoreInput carries one role's ratings into the batch. CompositeScore is
// optional precomputed data; it is trusted only on the pass-through path.
type RoleScoreInput struct {
	RoleID         string                  `json:"roleId"`
	RoleName       string                  `json:"roleName"`
	RoleFamily     models.RoleFamily       `json:"roleFamily"`
	Dimensions     scoring.Dimensions      `json:"dimensions"`
	CompositeScore *scoring.CompositeScore `json:"compositeScore,omitempty"`
}

type Input struct {
	RoleScores []RoleScoreInput `json:"roleScores"`
	Weights    *scoring.Weights `json:"weights,omitempty"`
}

type Output struct {
	Scores      []models.RoleScore `json:"scores"`
	WeightsUsed scoring.Weights    `json:"weightsUsed"`
	Recomputed  bool               `json:"recomputed"`
	CacheHit    bool               `json:"cacheHit"`
}
