package scoreroles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
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
		CacheEnabled: true,
		CacheTTL:     30 * time.Minute,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}), mr
}

func highAutomationInput() RoleScoreInput {
	return RoleScoreInput{
		RoleID:     "role-reporting-analyst",
		RoleName:   "Reporting Analyst",
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
	}
}

func lowAutomationInput() RoleScoreInput {
	return RoleScoreInput{
		RoleID:     "role-client-partner",
		RoleName:   "Client Partner",
		RoleFamily: models.FamilyClientServices,
		Dimensions: scoring.Dimensions{
			Repeatability:          1,
			DataAvailability:       2,
			ToolMaturity:           2,
			HumanJudgment:          5,
			StakeholderInteraction: 5,
			ComplianceRisk:         3,
			Accountability:         5,
		},
	}
}

func TestHandler_Execute_DefaultWeights(t *testing.T) {
	redisClient, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), redisClient, createTestLogger(t))

	input := &Input{
		RoleScores: []RoleScoreInput{highAutomationInput(), lowAutomationInput()},
	}

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, output)
	require.Len(t, output.Scores, 2)

	assert.Equal(t, scoring.DefaultWeights(), output.WeightsUsed)
	assert.False(t, output.Recomputed)
	assert.False(t, output.CacheHit)

	high := output.Scores[0]
	low := output.Scores[1]

	assert.Equal(t, "role-reporting-analyst", high.RoleID)
	assert.Greater(t, high.CompositeScore.Now, low.CompositeScore.Now)
	assert.GreaterOrEqual(t, high.CompositeScore.Future, high.CompositeScore.Now)

	// Priority and wave are always derived, never taken from the input.
	assert.Equal(t, scoring.Priority(high.CompositeScore.Now, high.CompositeScore.Future), high.RedesignPriority)
	assert.Equal(t, scoring.Wave(high.CompositeScore.Now), high.Wave)
	assert.Equal(t, scoring.Retained, low.Wave)
}

func TestHandler_Execute_PassThroughPrecomputed(t *testing.T) {
	redisClient, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), redisClient, createTestLogger(t))

	role := highAutomationInput()
	role.CompositeScore = &scoring.CompositeScore{Now: 81, Future: 96}

	output, err := handler.Execute(context.Background(), &Input{
		RoleScores: []RoleScoreInput{role},
	})
	require.NoError(t, err)
	require.Len(t, output.Scores, 1)

	// Without custom weights the precomputed composite wins.
	assert.Equal(t, 81, output.Scores[0].CompositeScore.Now)
	assert.Equal(t, 96, output.Scores[0].CompositeScore.Future)
	assert.Equal(t, scoring.PriorityCritical, output.Scores[0].RedesignPriority)
	assert.Equal(t, scoring.Wave1, output.Scores[0].Wave)
}

func TestHandler_Execute_CustomWeightsRecompute(t *testing.T) {
	redisClient, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), redisClient, createTestLogger(t))

	role := highAutomationInput()
	role.CompositeScore = &scoring.CompositeScore{Now: 5, Future: 5}

	weights := scoring.Weights{
		Repeatability:          0.40,
		DataAvailability:       0.10,
		ToolMaturity:           0.10,
		HumanJudgment:          0.10,
		StakeholderInteraction: 0.10,
		ComplianceRisk:         0.10,
		Accountability:         0.10,
	}

	output, err := handler.Execute(context.Background(), &Input{
		RoleScores: []RoleScoreInput{role},
		Weights:    &weights,
	})
	require.NoError(t, err)
	require.Len(t, output.Scores, 1)

	assert.True(t, output.Recomputed)
	assert.Equal(t, weights, output.WeightsUsed)

	// Custom weights force a recompute, the precomputed pair is discarded.
	expected := scoring.Score(role.Dimensions, weights)
	assert.Equal(t, expected, output.Scores[0].CompositeScore)
	assert.NotEqual(t, 5, output.Scores[0].CompositeScore.Now)
}

func TestHandler_Execute_CacheRoundTrip(t *testing.T) {
	redisClient, mr := setupRedis(t)
	handler := NewHandler(createTestConfig(), redisClient, createTestLogger(t))

	input := &Input{
		RoleScores: []RoleScoreInput{highAutomationInput(), lowAutomationInput()},
	}

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Scores, second.Scores)

	// A different weight vector must miss.
	weights := scoring.DefaultWeights()
	weights.Repeatability = 0.35
	third, err := handler.Execute(context.Background(), &Input{
		RoleScores: input.RoleScores,
		Weights:    &weights,
	})
	require.NoError(t, err)
	assert.False(t, third.CacheHit)

	// Expired entries recompute.
	mr.FastForward(time.Hour)
	fourth, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, fourth.CacheHit)
	assert.Equal(t, first.Scores, fourth.Scores)
}

func TestHandler_Execute_CacheDisabled(t *testing.T) {
	redisClient, _ := setupRedis(t)
	config := createTestConfig()
	config.CacheEnabled = false
	handler := NewHandler(config, redisClient, createTestLogger(t))

	input := &Input{RoleScores: []RoleScoreInput{highAutomationInput()}}

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, second.CacheHit)
}

func TestHandler_Execute_NilRedis(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		RoleScores: []RoleScoreInput{highAutomationInput()},
	})
	require.NoError(t, err)
	require.Len(t, output.Scores, 1)
	assert.False(t, output.CacheHit)
}

func TestHandler_Execute_RedisFailureDegradesToCompute(t *testing.T) {
	db, mock := redismock.NewClientMock()
	handler := NewHandler(createTestConfig(), db, createTestLogger(t))

	input := &Input{RoleScores: []RoleScoreInput{highAutomationInput()}}
	key := handler.cacheKey(input.RoleScores, scoring.DefaultWeights(), false)

	mock.ExpectGet(key).SetErr(errors.New("connection refused"))

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Scores, 1)
	assert.False(t, output.CacheHit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CorruptCacheEntryRecomputes(t *testing.T) {
	db, mock := redismock.NewClientMock()
	handler := NewHandler(createTestConfig(), db, createTestLogger(t))

	input := &Input{RoleScores: []RoleScoreInput{highAutomationInput()}}
	key := handler.cacheKey(input.RoleScores, scoring.DefaultWeights(), false)

	mock.ExpectGet(key).SetVal("{not json")

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Scores, 1)
	assert.False(t, output.CacheHit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	redisClient, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), redisClient, createTestLogger(t))

	t.Run("dimension out of range", func(t *testing.T) {
		role := highAutomationInput()
		role.Dimensions.Repeatability = 9

		output, err := handler.Execute(context.Background(), &Input{
			RoleScores: []RoleScoreInput{role},
		})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		assert.Contains(t, err.Error(), "role-reporting-analyst")
		assert.Equal(t, "INVALID_DIMENSIONS", handler.mapErrorToCode(err))
		assert.Equal(t, int32(0), handler.getRetryCount(err))
	})

	t.Run("negative weight", func(t *testing.T) {
		weights := scoring.DefaultWeights()
		weights.ToolMaturity = -0.2

		output, err := handler.Execute(context.Background(), &Input{
			RoleScores: []RoleScoreInput{highAutomationInput()},
			Weights:    &weights,
		})

		require.Error(t, err)
		assert.Nil(t, output)
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), nil)
		require.Error(t, err)
		assert.Nil(t, output)
	})
}

func TestHandler_Execute_EmptyBatch(t *testing.T) {
	redisClient, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), redisClient, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Empty(t, output.Scores)
	assert.False(t, output.CacheHit)
	assert.Equal(t, scoring.DefaultWeights(), output.WeightsUsed)
}
