// internal/workers/analytics/aggregate-kpis/models.go
package aggregatekpis

import (
	"workforce-workers/internal/analytics"
	"workforce-workers/internal/models"
)

// Input carries the four source collections. All four must be present; the
// rollup never runs on partial data. Empty collections are fine, missing
// ones are not.
type Input struct {
	Roles         []models.Role         `json:"roles"`
	Scores        []models.RoleScore    `json:"scores"`
	Bottlenecks   []models.Bottleneck   `json:"bottlenecks"`
	HiringSignals []models.HiringSignal `json:"hiringSignals"`
}

type Output struct {
	KPIs               analytics.KPIData         `json:"kpis"`
	FamilyTrends       []analytics.Trend         `json:"familyTrends"`
	FamilyDistribution map[models.RoleFamily]int `json:"familyDistribution"`
}
