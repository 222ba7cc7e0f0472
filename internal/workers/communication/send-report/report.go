// internal/workers/communication/send-report/report.go
package sendreport

import (
	"fmt"
	"strings"
)

// renderSubject and renderBody turn a locked scenario into a plain-text
// report. Formatting stays deliberately simple; the figures carry the story.
func renderSubject(input *Input) string {
	name := input.Scenario.Name
	if name == "" {
		name = "Workforce scenario"
	}
	return fmt.Sprintf("%s: %.0f%% reduction over %d months",
		name, input.Parameters.ReductionPct, input.Parameters.TimelineMonths)
}

func renderBody(input *Input) string {
	var b strings.Builder
	proj := input.Projection

	fmt.Fprintf(&b, "Scenario: %s\n", input.Scenario.Name)
	fmt.Fprintf(&b, "Reduction: %.0f%% over %d months\n\n",
		input.Parameters.ReductionPct, input.Parameters.TimelineMonths)

	fmt.Fprintf(&b, "Current state: %d FTE, staff cost %.0f, revenue %.0f\n",
		proj.Current.FTE, proj.Current.StaffCost, proj.Current.Revenue)
	fmt.Fprintf(&b, "Target state:  %d FTE, staff cost %.0f, revenue %.0f\n\n",
		proj.Target.FTE, proj.Target.StaffCost, proj.Target.Revenue)

	fmt.Fprintf(&b, "FTE reduction: %d\n", proj.FTEReduction)
	fmt.Fprintf(&b, "Annual savings: %.0f\n", proj.Savings)
	fmt.Fprintf(&b, "Net benefit: %.0f\n", proj.NetBenefit)
	if proj.PaybackMonths > 0 {
		fmt.Fprintf(&b, "ROI: %.2f\n", proj.ROI)
		fmt.Fprintf(&b, "Payback: %d months\n", proj.PaybackMonths)
	} else {
		b.WriteString("No payback period: the scenario produces no savings\n")
	}

	if len(input.Risks) > 0 {
		b.WriteString("\nRisks:\n")
		for _, r := range input.Risks {
			fmt.Fprintf(&b, "- [%s/%s] %s (mitigation: %s)\n",
				r.Type, r.Severity, r.Message, r.Mitigation)
		}
	}

	return b.String()
}

// renderSMS is the short-form variant for the optional SMS channel.
func renderSMS(input *Input) string {
	proj := input.Projection
	return fmt.Sprintf("%s: -%d FTE, savings %.0f, payback %d mo, %d risk flags",
		renderSubject(input), proj.FTEReduction, proj.Savings,
		proj.PaybackMonths, len(input.Risks))
}
