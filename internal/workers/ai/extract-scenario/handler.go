package extractscenario

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	commonhttp "workforce-workers/internal/common/http"
	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/scenario"
)

const (
	TaskType = "extract-scenario"
)

var (
	ErrExtractionFailed  = errors.New("EXTRACTION_FAILED")
	ErrExtractionInvalid = errors.New("EXTRACTION_INVALID")
	ErrLLMTimeout        = errors.New("LLM_TIMEOUT")
)

// responseSchema is the contract the extraction provider must satisfy. A
// well-formed HTTP response that violates it is a provider bug, not a
// transient failure.
var responseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"scenario"},
	"properties": map[string]interface{}{
		"scenario": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"fte", "staffCost", "revenue"},
			"properties": map[string]interface{}{
				"name":         map[string]interface{}{"type": "string"},
				"fte":          map[string]interface{}{"type": "number"},
				"staffCost":    map[string]interface{}{"type": "number"},
				"revenue":      map[string]interface{}{"type": "number"},
				"avgSalary":    map[string]interface{}{"type": "number"},
				"aiInvestment": map[string]interface{}{"type": "number"},
			},
		},
		"suggestedParameters": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"reductionPercentage": map[string]interface{}{"type": "number"},
				"timelineMonths":      map[string]interface{}{"type": "number"},
			},
		},
		"confidence": map[string]interface{}{
			"type": "object",
		},
		"assumptions": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
}

type providerResponse struct {
	Scenario            scenario.Inputs   `json:"scenario"`
	SuggestedParameters *scenario.Params  `json:"suggestedParameters"`
	Confidence          map[string]string `json:"confidence"`
	Assumptions         []string          `json:"assumptions"`
}

type Handler struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
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
	if input == nil || input.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrExtractionInvalid)
	}

	raw, err := h.callProvider(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := h.validateResponse(raw); err != nil {
		return nil, err
	}

	var parsed providerResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrExtractionInvalid, err)
	}

	return h.buildOutput(&parsed), nil
}

func (h *Handler) callProvider(ctx context.Context, input *Input) ([]byte, error) {
	requestBody := map[string]interface{}{
		"description": input.Description,
	}
	if input.DocumentText != "" {
		requestBody["documentText"] = input.DocumentText
	}
	if h.config.Model != "" {
		requestBody["model"] = h.config.Model
	}

	body, _ := json.Marshal(requestBody)

	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrLLMTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", h.config.GenAIBaseURL+"/api/ai/extract-scenario", bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if h.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
		}

		resp, err := h.client.Do(req)
		if ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return nil, ErrLLMTimeout
		}
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}

		var buf bytes.Buffer
		_, err = buf.ReadFrom(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, lastErr)
}

func (h *Handler) validateResponse(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(responseSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: validation error: %v", ErrExtractionInvalid, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: response violates contract: %v", ErrExtractionInvalid, errs)
	}

	return nil
}

// buildOutput normalizes a valid provider response: average salary is always
// derived from the extracted aggregates, suggested parameters go through the
// same clamp as manual input, and non-positive headline figures are reported
// as missing rather than failing the job.
func (h *Handler) buildOutput(parsed *providerResponse) *Output {
	extracted := parsed.Scenario
	confidence := parsed.Confidence
	if confidence == nil {
		confidence = map[string]string{}
	}
	assumptions := parsed.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}

	if extracted.FTE > 0 {
		extracted.AvgSalary = extracted.StaffCost / float64(extracted.FTE)
		if confidence["avgSalary"] == "" {
			confidence["avgSalary"] = ConfidenceMedium
		}
	}

	missing := []string{}
	if extracted.FTE <= 0 {
		missing = append(missing, "fte")
	}
	if extracted.Revenue <= 0 {
		missing = append(missing, "revenue")
	}

	params := scenario.Params{
		ReductionPct:   scenario.DefaultReductionPct,
		TimelineMonths: scenario.DefaultTimelineMonths,
	}
	if parsed.SuggestedParameters != nil {
		if parsed.SuggestedParameters.ReductionPct > 0 {
			params.ReductionPct = parsed.SuggestedParameters.ReductionPct
		}
		if parsed.SuggestedParameters.TimelineMonths > 0 {
			params.TimelineMonths = parsed.SuggestedParameters.TimelineMonths
		}
	}
	params = params.Clamp()

	h.logger.Info("scenario extracted", map[string]interface{}{
		"scenario":      extracted.Name,
		"fte":           extracted.FTE,
		"missingFields": missing,
		"assumptions":   len(assumptions),
	})

	return &Output{
		Scenario:            extracted,
		SuggestedParameters: params,
		Confidence:          confidence,
		Assumptions:         assumptions,
		MissingFields:       missing,
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
	if errors.Is(err, ErrLLMTimeout) {
		return "LLM_TIMEOUT"
	} else if errors.Is(err, ErrExtractionInvalid) {
		return "EXTRACTION_INVALID"
	} else if errors.Is(err, ErrExtractionFailed) {
		return "EXTRACTION_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrExtractionFailed) {
		return 2
	} else if errors.Is(err, ErrLLMTimeout) {
		return 1
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
