// internal/models/query_types.go
package models

// QueryType identifies a registered query in the query-postgresql worker.
type QueryType string

const (
	QueryTypeRoles           QueryType = "roles"
	QueryTypeRoleTasks       QueryType = "role-tasks"
	QueryTypeRoleScores      QueryType = "role-scores"
	QueryTypeBottlenecks     QueryType = "bottlenecks"
	QueryTypeHiringSignals   QueryType = "hiring-signals"
	QueryTypeScenarioPresets QueryType = "scenario-presets"
)
