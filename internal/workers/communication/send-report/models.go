// internal/workers/communication/send-report/models.go
package sendreport

import "workforce-workers/internal/scenario"

// Input is a locked scenario export request. The projection and risks come
// from the project-scenario step unchanged; this worker only renders and
// delivers them.
type Input struct {
	RecipientEmail string              `json:"recipientEmail"`
	RecipientPhone string              `json:"recipientPhone,omitempty"`
	Priority       string              `json:"priority,omitempty"`
	Scenario       scenario.Inputs     `json:"scenario"`
	Parameters     scenario.Params     `json:"parameters"`
	Projection     scenario.Projection `json:"projection"`
	Risks          []scenario.Risk     `json:"risks"`
}

type Output struct {
	ReportID  string `json:"reportId"`
	Status    string `json:"status"`
	SentAt    string `json:"sentAt"` // ISO 8601
	EmailSent bool   `json:"emailSent"`
	SMSSent   bool   `json:"smsSent"`
}

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"

	PriorityHigh = "high"
)
