package scoreroles

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/common/metrics"
	"workforce-workers/internal/models"
	"workforce-workers/internal/scoring"
)

const (
	TaskType = "score-roles"
)

var (
	ErrInvalidDimensions = errors.New("INVALID_DIMENSIONS")
	ErrInvalidWeights    = errors.New("INVALID_WEIGHTS")
	ErrScoreFailed       = errors.New("SCORE_FAILED")
)

type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
}

// NewHandler builds the batch scoring handler. The redis client is optional;
// a nil client disables caching.
func NewHandler(config *Config, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := h.mapErrorToCode(err)
		retries := h.getRetryCount(err)
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	weights := scoring.DefaultWeights()
	recompute := false
	if input.Weights != nil && !input.Weights.IsZero() {
		if err := input.Weights.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
		}
		weights = *input.Weights
		recompute = true
	}

	// An empty batch is a valid request, not a failure.
	if len(input.RoleScores) == 0 {
		return &Output{Scores: []models.RoleScore{}, WeightsUsed: weights, Recomputed: recompute}, nil
	}

	cacheKey := h.cacheKey(input.RoleScores, weights, recompute)
	if cached := h.cacheGet(ctx, cacheKey); cached != nil {
		metrics.RolesScored.WithLabelValues("hit").Add(float64(len(cached)))
		return &Output{
			Scores:      cached,
			WeightsUsed: weights,
			Recomputed:  recompute,
			CacheHit:    true,
		}, nil
	}

	scores := make([]models.RoleScore, 0, len(input.RoleScores))
	for _, rs := range input.RoleScores {
		if err := rs.Dimensions.Validate(); err != nil {
			return nil, fmt.Errorf("%w: role %s: %v", ErrInvalidDimensions, rs.RoleID, err)
		}

		var composite scoring.CompositeScore
		if !recompute && rs.CompositeScore != nil {
			// Pass-through path: the catalog already carries composites
			// computed with the default weights.
			composite = *rs.CompositeScore
		} else {
			composite = scoring.Score(rs.Dimensions, weights)
		}

		scores = append(scores, models.RoleScore{
			RoleID:           rs.RoleID,
			RoleName:         rs.RoleName,
			RoleFamily:       rs.RoleFamily,
			Dimensions:       rs.Dimensions,
			CompositeScore:   composite,
			RedesignPriority: scoring.Priority(composite.Now, composite.Future),
			Wave:             scoring.Wave(composite.Now),
		})
	}

	h.cacheSet(ctx, cacheKey, scores)
	metrics.RolesScored.WithLabelValues("miss").Add(float64(len(scores)))

	h.logger.Info("batch scored", map[string]interface{}{
		"roles":      len(scores),
		"recomputed": recompute,
	})

	return &Output{
		Scores:      scores,
		WeightsUsed: weights,
		Recomputed:  recompute,
	}, nil
}

// cacheKey fingerprints the batch contents and the weight vector so a changed
// rating or weight never serves a stale score set.
func (h *Handler) cacheKey(roleScores []RoleScoreInput, weights scoring.Weights, recompute bool) string {
	payload, _ := json.Marshal(struct {
		Roles     []RoleScoreInput `json:"roles"`
		Weights   scoring.Weights  `json:"weights"`
		Recompute bool             `json:"recompute"`
	}{roleScores, weights, recompute})

	sum := sha256.Sum256(payload)
	return "scores:batch:" + hex.EncodeToString(sum[:])
}

func (h *Handler) cacheGet(ctx context.Context, key string) []models.RoleScore {
	if h.redis == nil || !h.config.CacheEnabled {
		return nil
	}

	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		return nil
	}

	var scores []models.RoleScore
	if err := json.Unmarshal([]byte(val), &scores); err != nil {
		return nil
	}
	return scores
}

func (h *Handler) cacheSet(ctx context.Context, key string, scores []models.RoleScore) {
	if h.redis == nil || !h.config.CacheEnabled {
		return
	}

	data, err := json.Marshal(scores)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache score set", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrInvalidDimensions) {
		return "INVALID_DIMENSIONS"
	} else if errors.Is(err, ErrInvalidWeights) {
		return "INVALID_WEIGHTS"
	} else if errors.Is(err, ErrScoreFailed) {
		return "SCORE_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrScoreFailed) {
		return 3
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
