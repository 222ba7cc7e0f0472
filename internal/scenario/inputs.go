// internal/scenario/inputs.go
package scenario

// Inputs are organization-level aggregates. They are independent of any
// individual role record; the financial model operates on these five numbers
// plus the two control parameters only.
type Inputs struct {
	Name         string  `json:"name"`
	FTE          int     `json:"fte"`
	StaffCost    float64 `json:"staffCost"`
	Revenue      float64 `json:"revenue"`
	AvgSalary    float64 `json:"avgSalary"`
	AIInvestment float64 `json:"aiInvestment"`
}

// Params are the user-controlled scenario knobs.
type Params struct {
	ReductionPct   float64 `json:"reductionPercentage"`
	TimelineMonths int     `json:"timelineMonths"`
}

const (
	MinReductionPct = 5
	MaxReductionPct = 60

	DefaultReductionPct   = 20
	DefaultTimelineMonths = 12
)

// validTimelines are the only accepted timeline values, ascending.
var validTimelines = []int{6, 12, 18, 24}

// Clamp normalizes out-of-range parameters to the nearest valid value instead
// of rejecting them. Extractor output and manual input both pass through here.
func (p Params) Clamp() Params {
	out := p

	if out.ReductionPct < MinReductionPct {
		out.ReductionPct = MinReductionPct
	} else if out.ReductionPct > MaxReductionPct {
		out.ReductionPct = MaxReductionPct
	}

	out.TimelineMonths = nearestTimeline(out.TimelineMonths)
	return out
}

func nearestTimeline(months int) int {
	if months == 0 {
		return DefaultTimelineMonths
	}
	best := validTimelines[0]
	for _, t := range validTimelines {
		if abs(months-t) < abs(months-best) {
			best = t
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
