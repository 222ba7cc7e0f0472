package rankroles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/models"
	"workforce-workers/internal/scoring"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultLimit: 5,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func score(id string, now, future int) models.RoleScore {
	return models.RoleScore{
		RoleID:           id,
		RoleName:         "Role " + id,
		RoleFamily:       models.FamilyDataAnalytics,
		CompositeScore:   scoring.CompositeScore{Now: now, Future: future},
		RedesignPriority: scoring.Priority(now, future),
		Wave:             scoring.Wave(now),
	}
}

func TestHandler_Execute_ScoreModeNow(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	input := &Input{
		Scores: []models.RoleScore{
			score("a", 40, 50),
			score("b", 85, 95),
			score("c", 60, 70),
		},
		Mode:  ModeScore,
		Limit: 2,
	}

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, 2, output.Count)
	assert.Equal(t, ModeScore, output.Mode)
	require.Len(t, output.Ranked, 2)
	assert.Equal(t, "b", output.Ranked[0].RoleID)
	assert.Equal(t, "c", output.Ranked[1].RoleID)
}

func TestHandler_Execute_ScoreModeFutureHorizon(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	input := &Input{
		Scores: []models.RoleScore{
			score("low-now-high-future", 30, 90),
			score("high-now-flat", 70, 72),
		},
		Mode:    ModeScore,
		Horizon: "future",
		Limit:   1,
	}

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Ranked, 1)
	assert.Equal(t, "low-now-high-future", output.Ranked[0].RoleID)
}

func TestHandler_Execute_PriorityMode(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	input := &Input{
		Scores: []models.RoleScore{
			score("low", 20, 25),      // Low
			score("critical", 75, 95), // Critical
			score("medium", 45, 50),   // Medium
		},
		Mode: ModePriority,
	}

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Ranked, 3)

	assert.Equal(t, scoring.PriorityCritical, output.Ranked[0].RedesignPriority)
	assert.Equal(t, "critical", output.Ranked[0].RoleID)
	assert.Equal(t, scoring.PriorityLow, output.Ranked[2].RedesignPriority)
}

func TestHandler_Execute_Defaults(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	scores := []models.RoleScore{
		score("a", 90, 95), score("b", 80, 85), score("c", 70, 75),
		score("d", 60, 65), score("e", 50, 55), score("f", 40, 45),
		score("g", 30, 35),
	}

	// No mode and no limit: score mode, config default limit.
	output, err := handler.Execute(context.Background(), &Input{Scores: scores})
	require.NoError(t, err)
	assert.Equal(t, ModeScore, output.Mode)
	assert.Equal(t, 5, output.Count)
	assert.Equal(t, "a", output.Ranked[0].RoleID)
}

func TestHandler_Execute_LimitBeyondInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Scores: []models.RoleScore{score("a", 50, 55)},
		Mode:   ModeScore,
		Limit:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
}

func TestHandler_Execute_EmptyScores(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Mode: ModePriority})
	require.NoError(t, err)
	assert.Equal(t, 0, output.Count)
	assert.Empty(t, output.Ranked)
}

func TestHandler_Execute_Errors(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), nil)
		require.Error(t, err)
		assert.Nil(t, output)
		assert.ErrorIs(t, err, ErrNilInput)
	})

	t.Run("unknown mode", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), &Input{
			Scores: []models.RoleScore{score("a", 50, 55)},
			Mode:   "alphabetical",
		})
		require.Error(t, err)
		assert.Nil(t, output)
		assert.ErrorIs(t, err, ErrInvalidMode)
	})
}
