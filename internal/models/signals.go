// internal/models/signals.go
package models

// Bottleneck is a workflow constraint reported by an external collaborator.
// The engine only counts them; mitigation detail is passed through untouched.
type Bottleneck struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	WorkflowStage string   `json:"workflowStage,omitempty"`
	ImpactedRoles []string `json:"impactedRoles,omitempty"`
	Severity      string   `json:"severity,omitempty"`
	RootCause     string   `json:"rootCause,omitempty"`
}

// HiringSignal is an observed external job posting used as a market signal.
type HiringSignal struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	CompanyGroup string   `json:"companyGroup,omitempty"`
	RoleTitle    string   `json:"roleTitle"`
	RoleCluster  string   `json:"roleCluster,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	DatePosted   string   `json:"datePosted,omitempty"`
	Location     string   `json:"location,omitempty"`
	SourceURL    string   `json:"sourceUrl,omitempty"`
}
