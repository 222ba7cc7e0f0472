// internal/scenario/risk.go
package scenario

// RiskType categorizes a scenario risk flag.
type RiskType string

const (
	RiskClient     RiskType = "client"
	RiskTimeline   RiskType = "timeline"
	RiskCapability RiskType = "capability"
	RiskFinancial  RiskType = "financial"
)

type RiskSeverity string

const (
	SeverityMedium RiskSeverity = "medium"
	SeverityHigh   RiskSeverity = "high"
)

// Risk is one qualitative flag raised against the chosen parameters.
type Risk struct {
	Type       RiskType     `json:"type"`
	Severity   RiskSeverity `json:"severity"`
	Message    string       `json:"message"`
	Mitigation string       `json:"mitigation"`
}

// Risks evaluates the flat rule list against the scenario parameters. Every
// matching rule is returned; no rule suppresses another.
func Risks(reductionPct float64, timelineMonths, paybackMonths int) []Risk {
	risks := []Risk{}

	if reductionPct > 40 {
		risks = append(risks, Risk{
			Type:       RiskClient,
			Severity:   SeverityHigh,
			Message:    "High client service risk with >40% reduction",
			Mitigation: "Phase changes between campaign cycles",
		})
	}

	if reductionPct > 30 && timelineMonths <= 6 {
		risks = append(risks, Risk{
			Type:       RiskTimeline,
			Severity:   SeverityMedium,
			Message:    "Aggressive timeline may cause disruption",
			Mitigation: "Consider 12-month phased approach",
		})
	}

	if reductionPct > 50 {
		risks = append(risks, Risk{
			Type:       RiskCapability,
			Severity:   SeverityHigh,
			Message:    "Strategy capability at risk",
			Mitigation: "Ensure AI augmentation tools in place",
		})
	}

	if paybackMonths > 24 {
		risks = append(risks, Risk{
			Type:       RiskFinancial,
			Severity:   SeverityMedium,
			Message:    "Payback period exceeds 24 months",
			Mitigation: "Reduce upfront AI investment or stage the rollout",
		})
	}

	return risks
}
