// internal/scoring/composite.go
package scoring

import (
	"fmt"
	"math"
)

// Dimensions holds the seven per-role automation ratings, each on a 0-5 scale.
// Repeatability, DataAvailability and ToolMaturity are positive-polarity
// (higher rating = more automatable); the remaining four are negative-polarity
// and are inverted inside Composite.
type Dimensions struct {
	Repeatability          int `json:"repeatability"`
	DataAvailability       int `json:"dataAvailability"`
	ToolMaturity           int `json:"toolMaturity"`
	HumanJudgment          int `json:"humanJudgment"`
	StakeholderInteraction int `json:"stakeholderInteraction"`
	ComplianceRisk         int `json:"complianceRisk"`
	Accountability         int `json:"accountability"`
}

// Validate rejects ratings outside [0,5]. A violation indicates a broken
// upstream data contract, not a runtime condition.
func (d Dimensions) Validate() error {
	for name, v := range map[string]int{
		"repeatability":          d.Repeatability,
		"dataAvailability":       d.DataAvailability,
		"toolMaturity":           d.ToolMaturity,
		"humanJudgment":          d.HumanJudgment,
		"stakeholderInteraction": d.StakeholderInteraction,
		"complianceRisk":         d.ComplianceRisk,
		"accountability":         d.Accountability,
	} {
		if v < 0 || v > 5 {
			return fmt.Errorf("dimension %s rating %d outside [0,5]", name, v)
		}
	}
	return nil
}

// Horizon selects the multiplier table applied to dimension ratings.
type Horizon string

const (
	HorizonNow    Horizon = "now"
	HorizonFuture Horizon = "future"
)

// multipliers mirrors Weights field-for-field so the two tables stay in sync
// at compile time when a dimension is added.
type multipliers struct {
	repeatability          float64
	dataAvailability       float64
	toolMaturity           float64
	humanJudgment          float64
	stakeholderInteraction float64
	complianceRisk         float64
	accountability         float64
}

var nowMultipliers = multipliers{1, 1, 1, 1, 1, 1, 1}

// futureMultipliers encodes the expected 12-18 month technology drift.
var futureMultipliers = multipliers{
	repeatability:          1.0,
	dataAvailability:       1.2,
	toolMaturity:           1.4,
	humanJudgment:          0.85,
	stakeholderInteraction: 0.9,
	complianceRisk:         0.95,
	accountability:         1.0,
}

// Composite maps dimension ratings onto a single 0-100 automation score for
// the given horizon. Higher = more automatable. The weighted sum is divided
// by the actual weight total, so scaling every weight by the same constant
// leaves the score unchanged.
func Composite(dims Dimensions, weights Weights, horizon Horizon) int {
	mult := nowMultipliers
	if horizon == HorizonFuture {
		mult = futureMultipliers
	}

	positive := float64(dims.Repeatability)*mult.repeatability*weights.Repeatability +
		float64(dims.DataAvailability)*mult.dataAvailability*weights.DataAvailability +
		float64(dims.ToolMaturity)*mult.toolMaturity*weights.ToolMaturity

	// Negative factors contribute inverted: a low human-judgment requirement
	// is a high automatability signal.
	negative := float64(6-dims.HumanJudgment)*mult.humanJudgment*weights.HumanJudgment +
		float64(6-dims.StakeholderInteraction)*mult.stakeholderInteraction*weights.StakeholderInteraction +
		float64(6-dims.ComplianceRisk)*mult.complianceRisk*weights.ComplianceRisk +
		float64(6-dims.Accountability)*mult.accountability*weights.Accountability

	totalWeight := weights.Sum()
	if totalWeight <= 0 {
		return 0
	}

	raw := (positive + negative) / totalWeight
	// Rescale the theoretical [1,6] raw range onto [0,100]; the clamp is the
	// safety net for weight vectors far from the default.
	normalized := ((raw - 1) / 4) * 100

	return int(math.Round(math.Min(100, math.Max(0, normalized))))
}

// CompositeScore is the derived now/future score pair attached to a role.
type CompositeScore struct {
	Now    int `json:"now"`
	Future int `json:"future"`
}

// Score computes both horizons with a single weight vector.
func Score(dims Dimensions, weights Weights) CompositeScore {
	return CompositeScore{
		Now:    Composite(dims, weights, HorizonNow),
		Future: Composite(dims, weights, HorizonFuture),
	}
}
