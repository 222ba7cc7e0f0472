// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "workforce-workers/internal/models"

type Input struct {
	QueryType string                 `json:"queryType"`
	RoleID    string                 `json:"roleId,omitempty"`
	Family    string                 `json:"family,omitempty"`
	Filters   map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

// Export constants for external use
var (
	QueryTypeRoles           = models.QueryTypeRoles
	QueryTypeRoleTasks       = models.QueryTypeRoleTasks
	QueryTypeRoleScores      = models.QueryTypeRoleScores
	QueryTypeBottlenecks     = models.QueryTypeBottlenecks
	QueryTypeHiringSignals   = models.QueryTypeHiringSignals
	QueryTypeScenarioPresets = models.QueryTypeScenarioPresets
)
