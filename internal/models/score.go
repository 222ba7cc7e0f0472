// internal/models/score.go
package models

import "workforce-workers/internal/scoring"

// RoleScore is a role's dimension ratings plus everything derived from them.
// CompositeScore may arrive precomputed from the score catalog or be
// recomputed from Dimensions with custom weights; RedesignPriority and Wave
// are always recomputable from the composite pair.
type RoleScore struct {
	RoleID           string                 `json:"roleId"`
	RoleName         string                 `json:"roleName"`
	RoleFamily       RoleFamily             `json:"roleFamily"`
	Dimensions       scoring.Dimensions     `json:"dimensions"`
	CompositeScore   scoring.CompositeScore `json:"compositeScore"`
	RedesignPriority scoring.PriorityLevel  `json:"redesignPriority"`
	Wave             scoring.WaveBucket     `json:"wave,omitempty"`
	Recommendations  []string               `json:"recommendations,omitempty"`
}
