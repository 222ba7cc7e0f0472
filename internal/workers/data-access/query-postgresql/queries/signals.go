// internal/workers/data-access/query-postgresql/queries/signals.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func Bottlenecks(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, workflow_stage, severity, root_cause
		FROM bottlenecks`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, name, workflowStage, severity, rootCause string
		if err := rows.Scan(&id, &name, &workflowStage, &severity, &rootCause); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":            id,
			"name":          name,
			"workflowStage": workflowStage,
			"severity":      severity,
			"rootCause":     rootCause,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func HiringSignals(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, company, role_title, role_cluster, date_posted, location
		FROM hiring_signals`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, company, roleTitle, roleCluster, datePosted, location string
		if err := rows.Scan(&id, &company, &roleTitle, &roleCluster, &datePosted, &location); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":          id,
			"company":     company,
			"roleTitle":   roleTitle,
			"roleCluster": roleCluster,
			"datePosted":  datePosted,
			"location":    location,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func ScenarioPresets(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT name, fte, staff_cost, revenue, avg_salary, ai_investment
		FROM scenario_presets`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var name string
		var fte int
		var staffCost, revenue, avgSalary, aiInvestment float64
		if err := rows.Scan(&name, &fte, &staffCost, &revenue, &avgSalary, &aiInvestment); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"name":         name,
			"fte":          fte,
			"staffCost":    staffCost,
			"revenue":      revenue,
			"avgSalary":    avgSalary,
			"aiInvestment": aiInvestment,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
