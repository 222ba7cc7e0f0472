package sendreport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workforce-workers/internal/common/logger"
	"workforce-workers/internal/scenario"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "reports@workforce.example.com",
		AWSRegion:    "us-east-1",
		Timeout:      30 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createTestHandler(t *testing.T, config *Config, sesMock SESService, snsMock SNSService) *Handler {
	return &Handler{
		config:    config,
		logger:    createTestLogger(t).WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesMock,
		snsClient: snsMock,
	}
}

func createTestInput() *Input {
	return &Input{
		RecipientEmail: "cfo@agency.example.com",
		RecipientPhone: "+15550001111",
		Priority:       PriorityHigh,
		Scenario: scenario.Inputs{
			Name:         "FCB Current State",
			FTE:          46,
			StaffCost:    6600550,
			Revenue:      11904526,
			AIInvestment: 250000,
		},
		Parameters: scenario.Params{ReductionPct: 20, TimelineMonths: 12},
		Projection: scenario.Projection{
			Current:       scenario.Snapshot{FTE: 46, StaffCost: 6600550, Revenue: 11904526},
			Target:        scenario.Snapshot{FTE: 37, StaffCost: 5280440, Revenue: 11904526},
			FTEReduction:  9,
			Savings:       1320110,
			NetBenefit:    1070110,
			ROI:           4.28,
			PaybackMonths: 3,
		},
		Risks: []scenario.Risk{
			{Type: scenario.RiskClient, Severity: scenario.SeverityHigh, Message: "High client service risk", Mitigation: "Phase changes"},
		},
	}
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_EmailAndSMS(t *testing.T) {
	var sentEmail *ses.SendEmailInput
	var sentSMS *sns.PublishInput

	sesMock := &MockSESService{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			sentEmail = params
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			sentSMS = params
			return &sns.PublishOutput{}, nil
		},
	}

	handler := createTestHandler(t, createTestConfig(), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, StatusSent, output.Status)
	assert.True(t, output.EmailSent)
	assert.True(t, output.SMSSent)
	assert.NotEmpty(t, output.ReportID)
	assert.NotEmpty(t, output.SentAt)

	require.NotNil(t, sentEmail)
	assert.Equal(t, []string{"cfo@agency.example.com"}, sentEmail.Destination.ToAddresses)
	assert.Equal(t, "reports@workforce.example.com", *sentEmail.Source)
	assert.Contains(t, *sentEmail.Message.Subject.Data, "FCB Current State")
	assert.Contains(t, *sentEmail.Message.Subject.Data, "20% reduction over 12 months")

	body := *sentEmail.Message.Body.Text.Data
	assert.Contains(t, body, "FTE reduction: 9")
	assert.Contains(t, body, "Annual savings: 1320110")
	assert.Contains(t, body, "Payback: 3 months")
	assert.Contains(t, body, "High client service risk")

	require.NotNil(t, sentSMS)
	assert.Equal(t, "+15550001111", *sentSMS.PhoneNumber)
	assert.Contains(t, *sentSMS.Message, "-9 FTE")
}

func TestHandler_Execute_NormalPrioritySkipsSMS(t *testing.T) {
	snsCalled := false
	sesMock := &MockSESService{
		SendEmailFunc: func(_ context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(_ context.Context, _ *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			snsCalled = true
			return &sns.PublishOutput{}, nil
		},
	}

	handler := createTestHandler(t, createTestConfig(), sesMock, snsMock)

	input := createTestInput()
	input.Priority = ""

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.False(t, snsCalled)
	assert.Equal(t, StatusSent, output.Status)
}

func TestHandler_Execute_EmailFailureFailsJob(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(_ context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("ses throttled")
		},
	}

	handler := createTestHandler(t, createTestConfig(), sesMock, &MockSNSService{})

	output, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrReportSendFailed)
}

func TestHandler_Execute_SMSFailureIsBestEffort(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(_ context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(_ context.Context, _ *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("sns unavailable")
		},
	}

	handler := createTestHandler(t, createTestConfig(), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.Equal(t, StatusSent, output.Status)
}

func TestHandler_Execute_AllChannelsDisabled(t *testing.T) {
	config := createTestConfig()
	config.EmailEnabled = false
	config.SMSEnabled = false

	handler := createTestHandler(t, config, &MockSESService{}, &MockSNSService{})

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.False(t, output.EmailSent)
	assert.False(t, output.SMSSent)
}

func TestHandler_Execute_MissingRecipient(t *testing.T) {
	handler := createTestHandler(t, createTestConfig(), &MockSESService{}, &MockSNSService{})

	input := createTestInput()
	input.RecipientEmail = ""

	output, err := handler.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrMissingRecipient)
}

func TestRenderBody_NoSavings(t *testing.T) {
	input := createTestInput()
	input.Projection.Savings = 0
	input.Projection.PaybackMonths = 0
	input.Risks = nil

	body := renderBody(input)
	assert.Contains(t, body, "no savings")
	assert.NotContains(t, body, "Risks:")
}
