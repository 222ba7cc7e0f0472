// internal/scoring/weights.go
package scoring

import (
	"fmt"
	"math"
)

// Weights defines the relative importance of each scoring dimension.
// The default vector sums to 1.0 but any positive vector is accepted;
// Composite normalizes by the actual sum.
type Weights struct {
	Repeatability          float64 `json:"repeatability"`
	DataAvailability       float64 `json:"dataAvailability"`
	ToolMaturity           float64 `json:"toolMaturity"`
	HumanJudgment          float64 `json:"humanJudgment"`
	StakeholderInteraction float64 `json:"stakeholderInteraction"`
	ComplianceRisk         float64 `json:"complianceRisk"`
	Accountability         float64 `json:"accountability"`
}

// DefaultWeights returns the supported default weight distribution.
// Custom vectors are accepted but treated as experimental.
func DefaultWeights() Weights {
	return Weights{
		Repeatability:          0.20,
		DataAvailability:       0.15,
		ToolMaturity:           0.20,
		HumanJudgment:          0.15,
		StakeholderInteraction: 0.10,
		ComplianceRisk:         0.10,
		Accountability:         0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Repeatability + w.DataAvailability + w.ToolMaturity +
		w.HumanJudgment + w.StakeholderInteraction + w.ComplianceRisk +
		w.Accountability
}

// Validate checks that no weight is negative and the vector is not all-zero.
func (w Weights) Validate() error {
	for _, v := range []float64{
		w.Repeatability, w.DataAvailability, w.ToolMaturity,
		w.HumanJudgment, w.StakeholderInteraction, w.ComplianceRisk,
		w.Accountability,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("weight vector sums to %.4f, must be positive", w.Sum())
	}
	return nil
}

// IsZero reports whether the vector is entirely unset, which callers use to
// decide between the pass-through and recompute scoring paths.
func (w Weights) IsZero() bool {
	return w == Weights{}
}
