package aggregatekpis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"workforce-workers/internal/analytics"
	"workforce-workers/internal/common/logger"
)

const (
	TaskType = "aggregate-kpis"
)

var (
	ErrDataUnavailable = errors.New("DATA_UNAVAILABLE")
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
		h.failJob(client, job, "DATA_UNAVAILABLE", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrDataUnavailable
	}

	// Absent collections and empty ones are different things: [] rolls up,
	// null refuses.
	missing := []string{}
	if input.Roles == nil {
		missing = append(missing, "roles")
	}
	if input.Scores == nil {
		missing = append(missing, "scores")
	}
	if input.Bottlenecks == nil {
		missing = append(missing, "bottlenecks")
	}
	if input.HiringSignals == nil {
		missing = append(missing, "hiringSignals")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing collections: %v", ErrDataUnavailable, missing)
	}

	kpis := analytics.KPIs(input.Roles, input.Scores, input.Bottlenecks, input.HiringSignals)

	h.logger.Info("kpis aggregated", map[string]interface{}{
		"totalRoles":    kpis.TotalRoles,
		"avgScore":      kpis.AvgAutomationScore,
		"highPriority":  kpis.HighPriorityRoles,
		"hiringSignals": kpis.HiringSignals,
	})

	return &Output{
		KPIs:               kpis,
		FamilyTrends:       analytics.FamilyTrends(input.Scores),
		FamilyDistribution: analytics.FamilyDistribution(input.Roles),
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
