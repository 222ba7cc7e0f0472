// internal/analytics/rank.go
package analytics

import (
	"sort"

	"workforce-workers/internal/models"
	"workforce-workers/internal/scoring"
)

// TopByScore returns the n highest-scoring roles for a horizon, descending.
// The input slice is not modified.
func TopByScore(scores []models.RoleScore, n int, horizon scoring.Horizon) []models.RoleScore {
	ranked := make([]models.RoleScore, len(scores))
	copy(ranked, scores)

	sort.Slice(ranked, func(i, j int) bool {
		if horizon == scoring.HorizonFuture {
			return ranked[i].CompositeScore.Future > ranked[j].CompositeScore.Future
		}
		return ranked[i].CompositeScore.Now > ranked[j].CompositeScore.Now
	})

	return firstN(ranked, n)
}

// TopByPriority returns the n most urgent roles, Critical first.
func TopByPriority(scores []models.RoleScore, n int) []models.RoleScore {
	ranked := make([]models.RoleScore, len(scores))
	copy(ranked, scores)

	sort.Slice(ranked, func(i, j int) bool {
		return scoring.PriorityOrder[ranked[i].RedesignPriority] < scoring.PriorityOrder[ranked[j].RedesignPriority]
	})

	return firstN(ranked, n)
}

func firstN(scores []models.RoleScore, n int) []models.RoleScore {
	if n <= 0 || n > len(scores) {
		n = len(scores)
	}
	return scores[:n]
}
