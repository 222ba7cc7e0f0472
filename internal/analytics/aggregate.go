// internal/analytics/aggregate.go
package analytics

import (
	"math"
	"sort"

	"workforce-workers/internal/models"
	"workforce-workers/internal/scoring"
)

// KPIData is the dashboard headline rollup. Bottleneck and hiring-signal
// counts are pass-through from external collaborators.
type KPIData struct {
	TotalRoles         int `json:"totalRoles"`
	AvgAutomationScore int `json:"avgAutomationScore"`
	AvgFutureScore     int `json:"avgFutureScore"`
	BottleneckCount    int `json:"bottleneckCount"`
	HighPriorityRoles  int `json:"highPriorityRoles"`
	TotalTasks         int `json:"totalTasks"`
	HiringSignals      int `json:"hiringSignals"`
}

// Trend is a per-family now/future average pair.
type Trend struct {
	Category models.RoleFamily `json:"category"`
	Now      int               `json:"now"`
	Future   int               `json:"future"`
}

// KPIs rolls roles, scores and collaborator signals into headline numbers.
// Intermediate means stay unrounded; rounding happens once at output.
func KPIs(roles []models.Role, scores []models.RoleScore, bottlenecks []models.Bottleneck, signals []models.HiringSignal) KPIData {
	var nowSum, futureSum float64
	highPriority := 0
	for _, s := range scores {
		nowSum += float64(s.CompositeScore.Now)
		futureSum += float64(s.CompositeScore.Future)
		if s.RedesignPriority == scoring.PriorityCritical || s.RedesignPriority == scoring.PriorityHigh {
			highPriority++
		}
	}

	avgNow, avgFuture := 0, 0
	if len(scores) > 0 {
		avgNow = int(math.Round(nowSum / float64(len(scores))))
		avgFuture = int(math.Round(futureSum / float64(len(scores))))
	}

	totalTasks := 0
	for _, r := range roles {
		totalTasks += len(r.Tasks)
	}

	return KPIData{
		TotalRoles:         len(roles),
		AvgAutomationScore: avgNow,
		AvgFutureScore:     avgFuture,
		BottleneckCount:    len(bottlenecks),
		HighPriorityRoles:  highPriority,
		TotalTasks:         totalTasks,
		HiringSignals:      len(signals),
	}
}

// FamilyTrends averages now/future scores within each role family. Families
// with no scored roles are absent from the output. Results are ordered by
// family name for stable display.
func FamilyTrends(scores []models.RoleScore) []Trend {
	type acc struct {
		nowSum, futureSum float64
		count             int
	}
	byFamily := make(map[models.RoleFamily]*acc)
	for _, s := range scores {
		a, ok := byFamily[s.RoleFamily]
		if !ok {
			a = &acc{}
			byFamily[s.RoleFamily] = a
		}
		a.nowSum += float64(s.CompositeScore.Now)
		a.futureSum += float64(s.CompositeScore.Future)
		a.count++
	}

	trends := make([]Trend, 0, len(byFamily))
	for family, a := range byFamily {
		trends = append(trends, Trend{
			Category: family,
			Now:      int(math.Round(a.nowSum / float64(a.count))),
			Future:   int(math.Round(a.futureSum / float64(a.count))),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Category < trends[j].Category })
	return trends
}

// FamilyDistribution counts roles per family. Families with no roles are
// absent from the map.
func FamilyDistribution(roles []models.Role) map[models.RoleFamily]int {
	dist := make(map[models.RoleFamily]int)
	for _, r := range roles {
		dist[r.Family]++
	}
	return dist
}

// FilterByFamily returns the roles in a family; an empty or "all" family
// returns the input unchanged.
func FilterByFamily(roles []models.Role, family string) []models.Role {
	if family == "" || family == "all" {
		return roles
	}
	out := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		if string(r.Family) == family {
			out = append(out, r)
		}
	}
	return out
}
