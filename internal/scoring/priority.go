// internal/scoring/priority.go
package scoring

// PriorityLevel is the qualitative redesign-urgency tier for a role.
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "Critical"
	PriorityHigh     PriorityLevel = "High"
	PriorityMedium   PriorityLevel = "Medium"
	PriorityLow      PriorityLevel = "Low"
)

// PriorityOrder maps tiers to sort rank, Critical first.
var PriorityOrder = map[PriorityLevel]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Priority derives the redesign tier from the score level and its trajectory.
// Rules are evaluated in order, first match wins.
func Priority(nowScore, futureScore int) PriorityLevel {
	delta := float64(futureScore - nowScore)
	avg := float64(nowScore+futureScore) / 2

	switch {
	case avg >= 70 && delta >= 15:
		return PriorityCritical
	case avg >= 60 || delta >= 20:
		return PriorityHigh
	case avg >= 40 || delta >= 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
