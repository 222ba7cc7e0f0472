// internal/models/role.go
package models

// RoleFamily is the fixed seven-category role taxonomy.
type RoleFamily string

const (
	FamilyStrategyPlanning RoleFamily = "Strategy & Planning"
	FamilyBuyingActivation RoleFamily = "Buying & Activation"
	FamilyDataAnalytics    RoleFamily = "Data & Analytics"
	FamilyCreativeContent  RoleFamily = "Creative & Content"
	FamilyTechnologyOps    RoleFamily = "Technology & Operations"
	FamilyClientServices   RoleFamily = "Client Services"
	FamilyFinanceAdmin     RoleFamily = "Finance & Administration"
)

type TaskFrequency string

const (
	FrequencyDaily     TaskFrequency = "Daily"
	FrequencyWeekly    TaskFrequency = "Weekly"
	FrequencyMonthly   TaskFrequency = "Monthly"
	FrequencyQuarterly TaskFrequency = "Quarterly"
	FrequencyAdHoc     TaskFrequency = "Ad-hoc"
)

// SalaryBand is an optional min/mid/max band per seniority level.
type SalaryBand struct {
	Min int `json:"min"`
	Mid int `json:"mid"`
	Max int `json:"max"`
}

type SalaryBands struct {
	Junior       SalaryBand `json:"junior"`
	Intermediate SalaryBand `json:"intermediate"`
	Senior       SalaryBand `json:"senior"`
	Lead         SalaryBand `json:"lead"`
	Director     SalaryBand `json:"director"`
}

// Role is a read-only workforce record loaded from the role catalog. A role
// exclusively owns its task list; tasks are never shared across roles.
type Role struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Family              RoleFamily   `json:"family"`
	Subgroup            string       `json:"subgroup,omitempty"`
	Description         string       `json:"description"`
	Seniority           string       `json:"seniority"`
	KeyResponsibilities []string     `json:"keyResponsibilities,omitempty"`
	Tasks               []Task       `json:"tasks"`
	SalaryBands         *SalaryBands `json:"salaryBands,omitempty"`
	ExternalMappings    []string     `json:"externalMappings,omitempty"`
}

// Task is a unit of role work. TimeAllocation is a percentage of the role's
// time; the allocations of a role's tasks are independent estimates and are
// not required to sum to 100. AutomationPotential carries pre-assigned
// estimates supplied with the data, not values re-derived from dimensions.
type Task struct {
	ID                  string              `json:"id"`
	RoleID              string              `json:"roleId"`
	Name                string              `json:"name"`
	Description         string              `json:"description,omitempty"`
	Frequency           TaskFrequency       `json:"frequency"`
	TimeAllocation      int                 `json:"timeAllocation"`
	AutomationPotential AutomationPotential `json:"automationPotential"`
}

// AutomationPotential is a now/future estimate pair in [0,100].
type AutomationPotential struct {
	Now    int `json:"now"`
	Future int `json:"future"`
}
