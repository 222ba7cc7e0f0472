// internal/workers/data-access/query-postgresql/queries/roles.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func Roles(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	query := `
		SELECT id, name, family, subgroup, description, seniority
		FROM roles`
	args := []interface{}{}

	if family, ok := params["family"].(string); ok && family != "" {
		query += ` WHERE family = $1`
		args = append(args, family)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, name, family, subgroup, description, seniority string
		if err := rows.Scan(&id, &name, &family, &subgroup, &description, &seniority); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":          id,
			"name":        name,
			"family":      family,
			"subgroup":    subgroup,
			"description": description,
			"seniority":   seniority,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func RoleTasks(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	roleID, ok := params["roleId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, role_id, name, frequency, time_allocation,
		       automation_now, automation_future
		FROM role_tasks
		WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, taskRoleID, name, frequency string
		var timeAllocation, automationNow, automationFuture int
		err := rows.Scan(&id, &taskRoleID, &name, &frequency, &timeAllocation, &automationNow, &automationFuture)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":             id,
			"roleId":         taskRoleID,
			"name":           name,
			"frequency":      frequency,
			"timeAllocation": timeAllocation,
			"automationPotential": map[string]interface{}{
				"now":    automationNow,
				"future": automationFuture,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func RoleScores(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT role_id, role_name, role_family,
		       repeatability, data_availability, tool_maturity, human_judgment,
		       stakeholder_interaction, compliance_risk, accountability,
		       composite_now, composite_future
		FROM role_scores`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var roleID, roleName, roleFamily string
		var repeatability, dataAvailability, toolMaturity, humanJudgment float64
		var stakeholderInteraction, complianceRisk, accountability float64
		var compositeNow, compositeFuture int
		err := rows.Scan(
			&roleID, &roleName, &roleFamily,
			&repeatability, &dataAvailability, &toolMaturity, &humanJudgment,
			&stakeholderInteraction, &complianceRisk, &accountability,
			&compositeNow, &compositeFuture,
		)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"roleId":     roleID,
			"roleName":   roleName,
			"roleFamily": roleFamily,
			"dimensions": map[string]interface{}{
				"repeatability":          repeatability,
				"dataAvailability":       dataAvailability,
				"toolMaturity":           toolMaturity,
				"humanJudgment":          humanJudgment,
				"stakeholderInteraction": stakeholderInteraction,
				"complianceRisk":         complianceRisk,
				"accountability":         accountability,
			},
			"compositeScore": map[string]interface{}{
				"now":    compositeNow,
				"future": compositeFuture,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
