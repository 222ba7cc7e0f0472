// internal/scenario/project.go
package scenario

import "math"

const (
	// DefaultOverheadRate is the business-overhead share of revenue.
	DefaultOverheadRate = 0.13

	// DefaultEfficiencyDiscount shrinks target-state overhead by a fixed 5%.
	// The constant comes from the source financial model and is kept
	// overridable because its justification is not derivable from the rest
	// of the model.
	DefaultEfficiencyDiscount = 0.95
)

// Options carries the configuration constants the model depends on but does
// not own.
type Options struct {
	OverheadRate       float64
	EfficiencyDiscount float64
}

func DefaultOptions() Options {
	return Options{
		OverheadRate:       DefaultOverheadRate,
		EfficiencyDiscount: DefaultEfficiencyDiscount,
	}
}

// Snapshot is one financial state, before or after the reduction.
type Snapshot struct {
	FTE             int     `json:"fte"`
	StaffCost       float64 `json:"staffCost"`
	AvgSalary       float64 `json:"avgSalary"`
	Revenue         float64 `json:"revenue"`
	RevenuePerFTE   float64 `json:"revenuePerFTE"`
	GrossMargin     float64 `json:"grossMargin"`
	OperatingMargin float64 `json:"operatingMargin"`
	Overhead        float64 `json:"overhead"`
}

// Projection is the full derived scenario state. Every field is recomputed
// from inputs plus the reduction percentage; nothing is mutated in place.
type Projection struct {
	Current       Snapshot `json:"current"`
	Target        Snapshot `json:"target"`
	FTEReduction  int      `json:"fteReduction"`
	Savings       float64  `json:"savings"`
	NetBenefit    float64  `json:"netBenefit"`
	ROI           float64  `json:"roi"`
	PaybackMonths int      `json:"paybackMonths"`
}

// Project computes the before/after financial state for a reduction
// percentage. Revenue is held constant; cost scales linearly with headcount.
// Every division is zero-guarded so degenerate inputs (zero FTE, zero
// investment) yield zeros rather than NaN/Inf.
func Project(inputs Inputs, reductionPct float64, opts Options) Projection {
	factor := 1 - reductionPct/100

	targetFTE := int(math.Round(float64(inputs.FTE) * factor))
	targetStaffCost := inputs.StaffCost * factor

	// The efficiency discount models overhead shed by the transformation, so
	// a zero-reduction scenario keeps overhead untouched and target state
	// mirrors current state exactly.
	discount := opts.EfficiencyDiscount
	if reductionPct == 0 {
		discount = 1
	}

	currentOverhead := inputs.Revenue * opts.OverheadRate
	targetOverhead := inputs.Revenue * opts.OverheadRate * discount

	current := Snapshot{
		FTE:             inputs.FTE,
		StaffCost:       inputs.StaffCost,
		AvgSalary:       safeDiv(inputs.StaffCost, float64(inputs.FTE)),
		Revenue:         inputs.Revenue,
		RevenuePerFTE:   safeDiv(inputs.Revenue, float64(inputs.FTE)),
		GrossMargin:     safeDiv(inputs.Revenue-inputs.StaffCost, inputs.Revenue),
		OperatingMargin: safeDiv(inputs.Revenue-inputs.StaffCost-currentOverhead, inputs.Revenue),
		Overhead:        currentOverhead,
	}

	target := Snapshot{
		FTE:             targetFTE,
		StaffCost:       targetStaffCost,
		AvgSalary:       safeDiv(targetStaffCost, float64(targetFTE)),
		Revenue:         inputs.Revenue,
		RevenuePerFTE:   safeDiv(inputs.Revenue, float64(targetFTE)),
		GrossMargin:     safeDiv(inputs.Revenue-targetStaffCost, inputs.Revenue),
		OperatingMargin: safeDiv(inputs.Revenue-targetStaffCost-targetOverhead, inputs.Revenue),
		Overhead:        targetOverhead,
	}

	savings := inputs.StaffCost - targetStaffCost
	netBenefit := savings - inputs.AIInvestment

	// A scenario that produces no savings has no payback period and no
	// meaningful return; both report zero rather than negatives or Inf.
	roi := 0.0
	paybackMonths := 0
	if savings > 0 {
		roi = safeDiv(netBenefit, inputs.AIInvestment)
		paybackMonths = int(math.Ceil(inputs.AIInvestment / savings * 12))
	}

	return Projection{
		Current:       current,
		Target:        target,
		FTEReduction:  inputs.FTE - targetFTE,
		Savings:       savings,
		NetBenefit:    netBenefit,
		ROI:           roi,
		PaybackMonths: paybackMonths,
	}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
