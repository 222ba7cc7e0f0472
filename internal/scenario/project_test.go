// internal/scenario/project_test.go
package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baselineInputs() Inputs {
	return Inputs{
		Name:         "FCB Media baseline",
		FTE:          46,
		StaffCost:    6600550,
		Revenue:      11904526,
		AvgSalary:    143490,
		AIInvestment: 250000,
	}
}

func TestProject_ZeroReductionRoundTrip(t *testing.T) {
	p := Project(baselineInputs(), 0, DefaultOptions())

	assert.Equal(t, p.Current, p.Target)
	assert.Equal(t, 0, p.FTEReduction)
	assert.Zero(t, p.Savings)
	assert.Zero(t, p.ROI)
	assert.Zero(t, p.PaybackMonths)
}

func TestProject_MaxReductionExactArithmetic(t *testing.T) {
	p := Project(baselineInputs(), 60, DefaultOptions())

	assert.Equal(t, 18, p.Target.FTE) // round(46 * 0.4)
	assert.InDelta(t, 2640220, p.Target.StaffCost, 0.01)
	assert.InDelta(t, 3960330, p.Savings, 0.01)
	assert.Equal(t, 28, p.FTEReduction)
}

func TestProject_BaselinePresetAtTwentyPercent(t *testing.T) {
	p := Project(baselineInputs(), 20, DefaultOptions())

	assert.Equal(t, 37, p.Target.FTE)
	assert.InDelta(t, 1320110, p.Savings, 0.01)
	assert.InDelta(t, 1070110, p.NetBenefit, 0.01)
	assert.InDelta(t, 4.28, p.ROI, 0.005)
	assert.Equal(t, 3, p.PaybackMonths) // ceil(250000/1320110 * 12)
}

func TestProject_RevenueHeldConstant(t *testing.T) {
	p := Project(baselineInputs(), 30, DefaultOptions())

	assert.Equal(t, p.Current.Revenue, p.Target.Revenue)
	assert.Greater(t, p.Target.RevenuePerFTE, p.Current.RevenuePerFTE)
	assert.Greater(t, p.Target.GrossMargin, p.Current.GrossMargin)
}

func TestProject_TargetOverheadDiscounted(t *testing.T) {
	p := Project(baselineInputs(), 20, DefaultOptions())

	assert.InDelta(t, 11904526*0.13, p.Current.Overhead, 0.01)
	assert.InDelta(t, 11904526*0.13*0.95, p.Target.Overhead, 0.01)
}

func TestProject_OverridableConstants(t *testing.T) {
	opts := Options{OverheadRate: 0.20, EfficiencyDiscount: 1.0}
	p := Project(baselineInputs(), 20, opts)

	assert.InDelta(t, 11904526*0.20, p.Current.Overhead, 0.01)
	assert.Equal(t, p.Current.Overhead, p.Target.Overhead)
}

func TestProject_ZeroGuards(t *testing.T) {
	t.Run("zero investment", func(t *testing.T) {
		in := baselineInputs()
		in.AIInvestment = 0
		p := Project(in, 20, DefaultOptions())

		assert.Zero(t, p.ROI)
		assert.Zero(t, p.PaybackMonths)
		assert.InDelta(t, p.Savings, p.NetBenefit, 0.01)
	})

	t.Run("reduction to zero headcount", func(t *testing.T) {
		in := baselineInputs()
		p := Project(in, 100, DefaultOptions())

		require.Equal(t, 0, p.Target.FTE)
		assert.Zero(t, p.Target.AvgSalary)
		assert.Zero(t, p.Target.RevenuePerFTE)
	})

	t.Run("empty organization", func(t *testing.T) {
		p := Project(Inputs{}, 20, DefaultOptions())

		assert.Zero(t, p.Current.RevenuePerFTE)
		assert.Zero(t, p.Current.GrossMargin)
		assert.Zero(t, p.ROI)
		assert.Zero(t, p.PaybackMonths)
	})
}

func TestParams_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		expected Params
	}{
		{"in range untouched", Params{ReductionPct: 25, TimelineMonths: 18}, Params{ReductionPct: 25, TimelineMonths: 18}},
		{"reduction below floor", Params{ReductionPct: 2, TimelineMonths: 12}, Params{ReductionPct: 5, TimelineMonths: 12}},
		{"reduction above ceiling", Params{ReductionPct: 75, TimelineMonths: 24}, Params{ReductionPct: 60, TimelineMonths: 24}},
		{"timeline snapped to nearest", Params{ReductionPct: 20, TimelineMonths: 10}, Params{ReductionPct: 20, TimelineMonths: 12}},
		{"timeline above range", Params{ReductionPct: 20, TimelineMonths: 36}, Params{ReductionPct: 20, TimelineMonths: 24}},
		{"zero timeline defaults", Params{ReductionPct: 20}, Params{ReductionPct: 20, TimelineMonths: DefaultTimelineMonths}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Clamp())
		})
	}
}
