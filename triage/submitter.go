// Package triage submits patient cases to the cloud symptom checker agent.
// Lab reports are summarized by the local model through the summarize_lab_report tool,
// the raw report is scrubbed from the conversation once the tool has run.
package triage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bububa/hybrid-triage/agents"
	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/config"
	"github.com/bububa/hybrid-triage/schema"
	"github.com/bububa/hybrid-triage/tools"
	"github.com/bububa/hybrid-triage/tools/labsummary"
)

// Result is the triage guidance of one case
type Result struct {
	RunID       string               `json:"run_id"`
	Guidance    string               `json:"guidance"`
	ToolInvoked bool                 `json:"tool_invoked"`
	ToolCalls   []string             `json:"tool_calls,omitempty"`
	Steps       int                  `json:"steps"`
	Usage       *components.LLMUsage `json:"usage,omitempty"`
}

// Submitter sends cases to the cloud agent with the local summarizer tool registered
type Submitter struct {
	client      any
	model       string
	temperature float32
	maxTokens   int
	maxSteps    int
	reportMode  string
	leakRun     int
	logger      *slog.Logger
	toolOptions []tools.Option
	store       *labsummary.ReportStore
	tool        *labsummary.Tool
	registry    *tools.Registry
}

type Option func(s *Submitter)

func WithModel(model string) Option {
	return func(s *Submitter) {
		s.model = model
	}
}

func WithTemperature(t float32) Option {
	return func(s *Submitter) {
		s.temperature = t
	}
}

func WithMaxTokens(n int) Option {
	return func(s *Submitter) {
		s.maxTokens = n
	}
}

func WithMaxSteps(n int) Option {
	return func(s *Submitter) {
		s.maxSteps = n
	}
}

// WithReportMode selects inline or reference lab report transmission
func WithReportMode(mode string) Option {
	return func(s *Submitter) {
		s.reportMode = mode
	}
}

func WithLeakRunLength(n int) Option {
	return func(s *Submitter) {
		s.leakRun = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = l
	}
}

// WithToolOptions sets options of the summarize_lab_report tool, such as hooks
func WithToolOptions(opts ...tools.Option) Option {
	return func(s *Submitter) {
		s.toolOptions = append(s.toolOptions, opts...)
	}
}

// NewSubmitter returns a Submitter calling the cloud client, *openai.Client or *anthropic.Client
func NewSubmitter(client any, summarizer labsummary.Summarizer, opts ...Option) (*Submitter, error) {
	s := &Submitter{
		client:     client,
		maxTokens:  1024,
		reportMode: config.ReportModeInline,
		leakRun:    labsummary.DefaultLeakRunLength,
		store:      labsummary.NewReportStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	switch s.reportMode {
	case config.ReportModeInline, config.ReportModeReference:
	default:
		return nil, fmt.Errorf("%w: report mode %q", config.ErrUnknownMode, s.reportMode)
	}
	s.tool = labsummary.New(summarizer,
		labsummary.WithStore(s.store),
		labsummary.WithLogger(s.logger),
		labsummary.WithLeakRunLength(s.leakRun),
		labsummary.WithToolOptions(s.toolOptions...),
	)
	registry, err := tools.NewRegistry(s.tool)
	if err != nil {
		return nil, err
	}
	s.registry = registry
	return s, nil
}

// Tool returns the registered summarize_lab_report tool
func (s *Submitter) Tool() *labsummary.Tool {
	return s.tool
}

// Submit runs one case through the agent in a fresh conversation
func (s *Submitter) Submit(ctx context.Context, req CaseRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logger := s.logger.With(slog.String("run_id", runID))
	agent := agents.NewToolAgent(s.registry,
		agents.WithClient(s.client),
		agents.WithName(AgentName),
		agents.WithModel(s.model),
		agents.WithTemperature(s.temperature),
		agents.WithMaxTokens(s.maxTokens),
		agents.WithMaxSteps(s.maxSteps),
		agents.WithLogger(logger),
		agents.WithSystemPromptGenerator(NewInstructions()),
	)
	message := req.InlineMessage()
	if req.HasLabReport() {
		switch s.reportMode {
		case config.ReportModeReference:
			ref, err := s.store.Put(req.LabReport)
			if err != nil {
				return nil, err
			}
			defer s.store.Delete(ref)
			message = req.ReferenceMessage(ref)
		default:
			agent.Protect(req.LabReport)
		}
	}
	logger.InfoContext(ctx, "submitting case", slog.String("report_mode", s.reportMode), slog.Bool("lab_report", req.HasLabReport()))
	var (
		answer  agents.Answer
		llmResp components.LLMResponse
	)
	if err := agent.Run(ctx, schema.String(message), &answer, &llmResp); err != nil {
		return nil, fmt.Errorf("triage run %s: %w", runID, err)
	}
	logger.InfoContext(ctx, "case triaged", slog.Bool("tool_invoked", answer.ToolInvoked()), slog.Int("steps", answer.Steps))
	return &Result{
		RunID:       runID,
		Guidance:    answer.Text,
		ToolInvoked: answer.ToolInvoked(),
		ToolCalls:   answer.ToolCalls,
		Steps:       answer.Steps,
		Usage:       llmResp.Usage,
	}, nil
}
