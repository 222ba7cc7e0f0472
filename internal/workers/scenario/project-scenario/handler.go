package projectscenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/common/metrics"
	"workforce-workers/internal/scenario"
	"workforce-workers/pkg/presets"
)

const (
	TaskType = "project-scenario"
)

var (
	ErrProjectionFailed = errors.New("PROJECTION_FAILED")
)

type Handler struct {
	config  *Config
	presets *presets.Registry
	logger  logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	reg := presets.Builtin()
	if config.PresetsPath != "" {
		loaded, err := presets.LoadRegistry(config.PresetsPath)
		if err != nil {
			log.Warn("failed to load preset registry, using builtin", map[string]interface{}{
				"path":  config.PresetsPath,
				"error": err,
			})
		} else {
			reg = loaded
		}
	}

	return &Handler{
		config:  config,
		presets: reg,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "PROJECTION_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrProjectionFailed)
	}

	inputs, err := h.resolveScenario(input)
	if err != nil {
		return nil, err
	}

	params := input.Parameters
	if params.ReductionPct == 0 {
		params.ReductionPct = scenario.DefaultReductionPct
	}
	params = params.Clamp()

	projection := scenario.Project(inputs, params.ReductionPct, h.config.options())
	risks := scenario.Risks(params.ReductionPct, params.TimelineMonths, projection.PaybackMonths)

	metrics.ScenarioProjections.Inc()

	h.logger.Info("scenario projected", map[string]interface{}{
		"scenario":     inputs.Name,
		"reductionPct": params.ReductionPct,
		"timeline":     params.TimelineMonths,
		"savings":      projection.Savings,
		"risks":        len(risks),
	})

	return &Output{
		Scenario:   inputs,
		Parameters: params,
		Projection: projection,
		Risks:      risks,
	}, nil
}

// resolveScenario prefers inline inputs; a preset name is looked up in the
// registry, and the builtin baseline covers the empty request.
func (h *Handler) resolveScenario(input *Input) (scenario.Inputs, error) {
	if input.Scenario != nil {
		return *input.Scenario, nil
	}

	name := input.Preset
	if name == "" {
		name = presets.BaselineName
	}

	preset, ok := h.presets.Find(name)
	if !ok {
		return scenario.Inputs{}, fmt.Errorf("%w: unknown preset %q", ErrProjectionFailed, name)
	}
	return preset, nil
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
