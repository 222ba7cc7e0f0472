// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workforce-workers/internal/common/config"
	"workforce-workers/internal/common/database"
	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/models"
	"workforce-workers/internal/scenario"
	"workforce-workers/internal/scoring"

	// Import all worker packages
	extractscenario "workforce-workers/internal/workers/ai/extract-scenario"
	aggregatekpis "workforce-workers/internal/workers/analytics/aggregate-kpis"
	sendreport "workforce-workers/internal/workers/communication/send-report"
	querypostgresql "workforce-workers/internal/workers/data-access/query-postgresql"
	searchroles "workforce-workers/internal/workers/data-access/search-roles"
	projectscenario "workforce-workers/internal/workers/scenario/project-scenario"
	rankroles "workforce-workers/internal/workers/scoring/rank-roles"
	scoreroles "workforce-workers/internal/workers/scoring/score-roles"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	var err error

	// Initialize Zeebe client with real connection
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to Zeebe: %v", err))
	}

	// Initialize logger
	zapLog, _ = zap.NewProduction()

	// Run tests
	code := m.Run()

	// Cleanup
	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Load config
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	// 1. Check all external services are available
	assertAllServicesConnectivity(t, cfg)

	// 2. Create DB tables if needed and insert test data
	createDatabaseTables(t, cfg)

	// 3. Deploy all BPMN files
	deployAllBPMN(t, cfg, zapLog)

	// 4. Test all 8 workers with real execution
	testAllWorkers(t, cfg, zapLog)

	t.Log("✅ ALL TESTS PASSED — Full E2E workflow successful!")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("🔍 Checking service connectivity...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	// --- PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "❌ PostgreSQL ping failed")
	db.Close()
	t.Log("✅ PostgreSQL connected")

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "❌ Redis ping failed")
	t.Log("✅ Redis connected")

	// --- Elasticsearch ---
	esURL := cfg.Database.Elasticsearch.GetURL()
	t.Logf("🔗 Elasticsearch URL: %s", esURL)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	require.NoError(t, err, "❌ Elasticsearch client creation failed")

	res, err := es.Info()
	require.NoError(t, err, "❌ Elasticsearch info request failed")
	assert.False(t, res.IsError(), "❌ Elasticsearch returned error")
	res.Body.Close()
	t.Log("✅ Elasticsearch connected")

	// --- Zeebe ---
	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "❌ Zeebe topology request failed")
	t.Log("✅ Zeebe connected")
}

// ==========================
// 2. Database Tables Setup + Test Data
// ==========================
func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Creating database tables and inserting test data...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	// Create test tables if they don't exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS roles (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			family VARCHAR(100) NOT NULL,
			subgroup VARCHAR(100) DEFAULT '',
			description TEXT DEFAULT '',
			seniority VARCHAR(50) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS role_tasks (
			id VARCHAR(255) PRIMARY KEY,
			role_id VARCHAR(255) REFERENCES roles(id),
			name VARCHAR(255) NOT NULL,
			frequency VARCHAR(50),
			time_allocation INTEGER,
			automation_now INTEGER,
			automation_future INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS role_scores (
			role_id VARCHAR(255) PRIMARY KEY,
			role_name VARCHAR(255),
			role_family VARCHAR(100),
			repeatability NUMERIC,
			data_availability NUMERIC,
			tool_maturity NUMERIC,
			human_judgment NUMERIC,
			stakeholder_interaction NUMERIC,
			compliance_risk NUMERIC,
			accountability NUMERIC,
			composite_now INTEGER,
			composite_future INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bottlenecks (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255),
			workflow_stage VARCHAR(100),
			severity VARCHAR(50),
			root_cause TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS hiring_signals (
			id VARCHAR(255) PRIMARY KEY,
			company VARCHAR(255),
			role_title VARCHAR(255),
			role_cluster VARCHAR(100),
			date_posted VARCHAR(50),
			location VARCHAR(100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS scenario_presets (
			name VARCHAR(255) PRIMARY KEY,
			fte INTEGER,
			staff_cost NUMERIC,
			revenue NUMERIC,
			avg_salary NUMERIC,
			ai_investment NUMERIC,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to create table: %v", err)
		}
	}

	// Insert test data
	testData := []string{
		`INSERT INTO roles (id, name, family, subgroup, description, seniority)
		 VALUES ('role-media-analyst', 'Media Performance Analyst', 'Data & Analytics', 'Reporting', 'Builds campaign dashboards', 'Intermediate')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO roles (id, name, family, subgroup, description, seniority)
		 VALUES ('role-strategy-director', 'Strategy Director', 'Strategy & Planning', 'Leadership', 'Owns client strategy', 'Director')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO role_tasks (id, role_id, name, frequency, time_allocation, automation_now, automation_future)
		 VALUES ('task-weekly-report', 'role-media-analyst', 'Compile weekly performance report', 'Weekly', 30, 75, 90)
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO role_tasks (id, role_id, name, frequency, time_allocation, automation_now, automation_future)
		 VALUES ('task-qbr-prep', 'role-strategy-director', 'Prepare quarterly business review', 'Quarterly', 20, 25, 45)
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO role_scores (role_id, role_name, role_family,
			repeatability, data_availability, tool_maturity, human_judgment,
			stakeholder_interaction, compliance_risk, accountability,
			composite_now, composite_future)
		 VALUES ('role-media-analyst', 'Media Performance Analyst', 'Data & Analytics', 5, 5, 4, 2, 1, 2, 2, 86, 94)
		 ON CONFLICT (role_id) DO NOTHING`,
		`INSERT INTO bottlenecks (id, name, workflow_stage, severity, root_cause)
		 VALUES ('btl-manual-reporting', 'Manual report assembly', 'Reporting', 'high', 'Data scattered across platforms')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO hiring_signals (id, company, role_title, role_cluster, date_posted, location)
		 VALUES ('hs-001', 'Acme Agency', 'AI Operations Lead', 'Technology & Operations', '2026-08-01', 'London')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO scenario_presets (name, fte, staff_cost, revenue, avg_salary, ai_investment)
		 VALUES ('FCB Current State', 46, 6600550, 11904526, 143490, 250000)
		 ON CONFLICT (name) DO NOTHING`,
	}

	for _, query := range testData {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to insert test data: %v", err)
		}
	}

	t.Log("✅ Database tables created/verified with test data")
}

// ==========================
// 3. Deploy All BPMN Files
// ==========================
func deployAllBPMN(t *testing.T, _ *config.Config, _ *zap.Logger) {
	t.Log("🏗️ Deploying BPMN files...")

	client := zeebeClient

	// Try multiple possible paths for BPMN directory
	possiblePaths := []string{
		"bpmn",
		"../bpmn",
		"../../bpmn",
		"./bpmn",
	}

	var bpmnDir string
	var files []os.DirEntry
	var err error

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			files, err = os.ReadDir(path)
			if err == nil {
				bpmnDir = path
				t.Logf("📁 Found BPMN directory: %s", bpmnDir)
				break
			}
		}
	}

	if bpmnDir == "" {
		t.Log("⚠️ BPMN directory not found in any expected location, skipping deployment")
		return
	}

	require.NoError(t, err, "❌ Cannot read BPMN directory")

	bpmnCount := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name()), ".bpmn") {
			continue
		}

		path := fmt.Sprintf("%s/%s", bpmnDir, f.Name())
		t.Logf("📄 Deploying BPMN: %s", path)

		_, err := client.NewDeployResourceCommand().AddResourceFile(path).Send(context.Background())
		if err != nil {
			t.Logf("⚠️ Failed to deploy BPMN %s: %v", f.Name(), err)
			// Continue with other files instead of failing
		} else {
			t.Logf("✅ Deployed: %s", f.Name())
			bpmnCount++
		}
	}

	if bpmnCount == 0 {
		t.Log("ℹ️ No BPMN files were successfully deployed")
	} else {
		t.Logf("✅ Successfully deployed %d BPMN files", bpmnCount)
	}
}

// ==========================
// 4. Test All 8 Workers
// ==========================
func testAllWorkers(t *testing.T, cfg *config.Config, log *zap.Logger) {
	t.Log("🧪 Testing all 8 workers with real execution...")

	// Get clients for all services
	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	esURL := cfg.Database.Elasticsearch.GetURL()
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})
	require.NoError(t, err)

	rdbClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdbClient.Close()

	rdb := rdbClient.GetClient()

	// Worker test cases
	testCases := []struct {
		name   string
		testFn func(*testing.T, *config.Config, *zap.Logger, *sql.DB, *elasticsearch.Client, *redis.Client)
	}{
		{"query-postgresql", testQueryPostgreSQL},
		{"search-roles", testSearchRoles},
		{"score-roles", testScoreRoles},
		{"rank-roles", testRankRoles},
		{"aggregate-kpis", testAggregateKPIs},
		{"project-scenario", testProjectScenario},
		{"extract-scenario", testExtractScenario},
		{"send-report", testSendReport},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.testFn(t, cfg, log, db, es, rdb)
		})
	}
}

// ==========================
// Worker Test Functions
// ==========================

func testQueryPostgreSQL(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := querypostgresql.NewHandler(&querypostgresql.Config{
		Timeout: 5 * time.Second,
	}, db, logger.NewZapAdapter(log))

	input := &querypostgresql.Input{
		QueryType: string(models.QueryTypeRoles),
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, result.RowCount, 2, "Should return seeded roles")

	// Unknown query type must fail, not silently return an empty result
	_, err = handler.Execute(context.Background(), &querypostgresql.Input{QueryType: "unknown"})
	assert.Error(t, err)
}

func testSearchRoles(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := searchroles.NewHandler(&searchroles.Config{
		Timeout:      10 * time.Second,
		DefaultIndex: "roles",
	}, es, logger.NewZapAdapter(log))

	input := &searchroles.Input{
		IndexName: "nonexistent",
		QueryType: "role_index",
	}
	_, err := handler.Execute(context.Background(), input)
	assert.Error(t, err)
}

func testScoreRoles(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := scoreroles.NewHandler(&scoreroles.Config{
		Timeout:      5 * time.Second,
		CacheEnabled: true,
		CacheTTL:     time.Minute,
	}, rdb, logger.NewZapAdapter(log))

	input := &scoreroles.Input{
		RoleScores: []scoreroles.RoleScoreInput{
			{
				RoleID:     "role-media-analyst",
				RoleName:   "Media Performance Analyst",
				RoleFamily: models.FamilyDataAnalytics,
				Dimensions: scoring.Dimensions{
					Repeatability:          5,
					DataAvailability:       5,
					ToolMaturity:           4,
					HumanJudgment:          2,
					StakeholderInteraction: 1,
					ComplianceRisk:         2,
					Accountability:         2,
				},
			},
		},
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	require.Len(t, result.Scores, 1)
	assert.Equal(t, 86, result.Scores[0].CompositeScore.Now)
	assert.Equal(t, 94, result.Scores[0].CompositeScore.Future)
}

func testRankRoles(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := rankroles.NewHandler(&rankroles.Config{
		Timeout:      5 * time.Second,
		DefaultLimit: 5,
	}, logger.NewZapAdapter(log))

	input := &rankroles.Input{
		Scores: []models.RoleScore{
			{RoleID: "a", CompositeScore: scoring.CompositeScore{Now: 40, Future: 50}},
			{RoleID: "b", CompositeScore: scoring.CompositeScore{Now: 86, Future: 94}},
		},
		Mode: rankroles.ModeScore,
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "b", result.Ranked[0].RoleID)
}

func testAggregateKPIs(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := aggregatekpis.NewHandler(&aggregatekpis.Config{
		Timeout: 5 * time.Second,
	}, logger.NewZapAdapter(log))

	input := &aggregatekpis.Input{
		Roles:         []models.Role{},
		Scores:        []models.RoleScore{},
		Bottlenecks:   []models.Bottleneck{},
		HiringSignals: []models.HiringSignal{},
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.KPIs.TotalRoles)
}

func testProjectScenario(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := projectscenario.NewHandler(&projectscenario.Config{
		Timeout: 5 * time.Second,
	}, logger.NewZapAdapter(log))

	input := &projectscenario.Input{
		Parameters: scenario.Params{
			ReductionPct:   20,
			TimelineMonths: 12,
		},
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 37, result.Projection.Target.FTE)
}

func testExtractScenario(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := extractscenario.NewHandler(&extractscenario.Config{
		GenAIBaseURL: "http://localhost:8080/mock",
		Timeout:      5 * time.Second,
		MaxRetries:   1,
	}, logger.NewZapAdapter(log))

	input := &extractscenario.Input{Description: "A 46 person media team"}
	_, err := handler.Execute(context.Background(), input)
	assert.Error(t, err)
}

func testSendReport(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler, err := sendreport.NewHandler(&sendreport.Config{
		EmailEnabled: false,
		SMSEnabled:   false,
		AWSRegion:    "us-east-1",
		Timeout:      5 * time.Second,
	}, logger.NewZapAdapter(log))
	require.NoError(t, err)

	input := &sendreport.Input{
		RecipientEmail: "analyst@example.com",
		Scenario:       scenario.Inputs{Name: "Test", FTE: 46, StaffCost: 6600550, Revenue: 11904526},
		Parameters:     scenario.Params{ReductionPct: 20, TimelineMonths: 12},
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, sendreport.StatusDisabled, result.Status)
}

// ==========================
// Benchmark Tests
// ==========================
func BenchmarkHandler_QueryPostgreSQL(b *testing.B) {
	cfg, _ := config.Load()
	dbClient, _ := database.NewPostgres(cfg.Database.Postgres)
	defer dbClient.Close()
	db := dbClient.GetDB()

	handler := querypostgresql.NewHandler(&querypostgresql.Config{
		Timeout: 5 * time.Second,
	}, db, logger.NewStructured("info", "json"))

	input := &querypostgresql.Input{
		QueryType: string(models.QueryTypeRoles),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_SearchRoles(b *testing.B) {
	cfg, _ := config.Load()
	esURL := cfg.Database.Elasticsearch.GetURL()
	es, _ := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})

	handler := searchroles.NewHandler(&searchroles.Config{
		Timeout:      10 * time.Second,
		DefaultIndex: "roles",
	}, es, logger.NewStructured("info", "json"))

	input := &searchroles.Input{
		QueryType: "role_index",
		Filters:   map[string]interface{}{"query": "analyst"},
		Pagination: searchroles.Pagination{
			From: 0,
			Size: 10,
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_ScoreRoles(b *testing.B) {
	cfg, _ := config.Load()
	rdbClient, _ := database.NewRedis(cfg.Database.Redis)
	defer rdbClient.Close()
	rdb := rdbClient.GetClient()

	handler := scoreroles.NewHandler(&scoreroles.Config{
		Timeout:      5 * time.Second,
		CacheEnabled: true,
		CacheTTL:     time.Minute,
	}, rdb, logger.NewStructured("info", "json"))

	input := &scoreroles.Input{
		RoleScores: []scoreroles.RoleScoreInput{
			{
				RoleID:     "role-media-analyst",
				RoleName:   "Media Performance Analyst",
				RoleFamily: models.FamilyDataAnalytics,
				Dimensions: scoring.Dimensions{
					Repeatability:          5,
					DataAvailability:       5,
					ToolMaturity:           4,
					HumanJudgment:          2,
					StakeholderInteraction: 1,
					ComplianceRisk:         2,
					Accountability:         2,
				},
			},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_RankRoles(b *testing.B) {
	handler := rankroles.NewHandler(&rankroles.Config{
		Timeout:      5 * time.Second,
		DefaultLimit: 5,
	}, logger.NewStructured("info", "json"))

	input := &rankroles.Input{
		Scores: []models.RoleScore{
			{RoleID: "a", CompositeScore: scoring.CompositeScore{Now: 40, Future: 50}},
			{RoleID: "b", CompositeScore: scoring.CompositeScore{Now: 86, Future: 94}},
			{RoleID: "c", CompositeScore: scoring.CompositeScore{Now: 61, Future: 70}},
		},
		Mode: rankroles.ModeScore,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_ProjectScenario(b *testing.B) {
	handler := projectscenario.NewHandler(&projectscenario.Config{
		Timeout: 5 * time.Second,
	}, logger.NewStructured("info", "json"))

	input := &projectscenario.Input{
		Parameters: scenario.Params{
			ReductionPct:   20,
			TimelineMonths: 12,
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_AggregateKPIs(b *testing.B) {
	handler := aggregatekpis.NewHandler(&aggregatekpis.Config{
		Timeout: 5 * time.Second,
	}, logger.NewStructured("info", "json"))

	input := &aggregatekpis.Input{
		Roles: []models.Role{
			{ID: "role-media-analyst", Name: "Media Performance Analyst", Family: models.FamilyDataAnalytics},
		},
		Scores: []models.RoleScore{
			{
				RoleID:         "role-media-analyst",
				RoleFamily:     models.FamilyDataAnalytics,
				CompositeScore: scoring.CompositeScore{Now: 86, Future: 94},
			},
		},
		Bottlenecks:   []models.Bottleneck{},
		HiringSignals: []models.HiringSignal{},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
