package rankroles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"workforce-workers/internal/analytics"
	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/models"
	"workforce-workers/internal/scoring"
)

const (
	TaskType = "rank-roles"
)

var (
	ErrNilInput    = errors.New("input cannot be nil")
	ErrInvalidMode = errors.New("INVALID_RANK_MODE")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		if errors.Is(err, ErrInvalidMode) {
			h.failJob(client, job, "INVALID_RANK_MODE", err.Error(), 0)
			return
		}
		h.failJob(client, job, "RANKING_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}

	mode := input.Mode
	if mode == "" {
		mode = ModeScore
	}

	horizon := scoring.HorizonNow
	if input.Horizon == string(scoring.HorizonFuture) {
		horizon = scoring.HorizonFuture
	}

	var ranked []models.RoleScore
	switch mode {
	case ModeScore:
		ranked = analytics.TopByScore(input.Scores, limit, horizon)
	case ModePriority:
		ranked = analytics.TopByPriority(input.Scores, limit)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	h.logger.Info("roles ranked", map[string]interface{}{
		"mode":    mode,
		"horizon": string(horizon),
		"in":      len(input.Scores),
		"out":     len(ranked),
	})

	return &Output{
		Ranked: ranked,
		Count:  len(ranked),
		Mode:   mode,
	}, nil
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
