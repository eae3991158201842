package labsummary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/agents"
	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/components/systemprompt/cot"
	"github.com/bububa/hybrid-triage/schema"
)

const (
	DefaultModel       = "Phi-4-mini-instruct-cuda-gpu:5"
	DefaultMaxTokens   = 256
	DefaultTemperature = 0.2
)

var (
	ErrEmptyCompletion  = errors.New("local model returned no content")
	ErrMalformedSummary = errors.New("local model returned a malformed summary")
)

// Summarizer turns raw lab report text into a structured summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*Output, error)
}

type summarizerConfig struct {
	model       string
	maxTokens   int
	temperature float32
	logger      *slog.Logger
}

type SummarizerOption func(c *summarizerConfig)

func WithModel(model string) SummarizerOption {
	return func(c *summarizerConfig) {
		if model != "" {
			c.model = model
		}
	}
}

func WithMaxTokens(n int) SummarizerOption {
	return func(c *summarizerConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

func WithTemperature(t float32) SummarizerOption {
	return func(c *summarizerConfig) {
		c.temperature = t
	}
}

func WithSummarizerLogger(l *slog.Logger) SummarizerOption {
	return func(c *summarizerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newSummarizerConfig(opts ...SummarizerOption) summarizerConfig {
	c := summarizerConfig{
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// PlainSummarizer sends one chat completion to an openai compatible local endpoint
// and decodes the answer as JSON.
type PlainSummarizer struct {
	summarizerConfig
	client *openai.Client
}

var _ Summarizer = (*PlainSummarizer)(nil)

func NewPlainSummarizer(clt *openai.Client, opts ...SummarizerOption) *PlainSummarizer {
	return &PlainSummarizer{
		summarizerConfig: newSummarizerConfig(opts...),
		client:           clt,
	}
}

func (s *PlainSummarizer) Summarize(ctx context.Context, text string) (*Output, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}
	res, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("local model %s: %w", s.model, err)
	}
	if len(res.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}
	content := messageText(res.Choices[0].Message)
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyCompletion
	}
	s.logger.DebugContext(ctx, "local model raw content", slog.String("model", s.model), slog.String("content", content))
	out := new(Output)
	if err := json.Unmarshal([]byte(stripCodeFences(content)), out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSummary, err)
	}
	return out, nil
}

// messageText joins the text parts of a multi part answer
func messageText(msg openai.ChatCompletionMessage) string {
	if msg.Content != "" || len(msg.MultiContent) == 0 {
		return msg.Content
	}
	var b strings.Builder
	for _, part := range msg.MultiContent {
		if part.Type == openai.ChatMessagePartTypeText {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// StructuredSummarizer runs a structured agent over an instructor client,
// which extracts the JSON from the local model answer and re-asks on invalid output.
type StructuredSummarizer struct {
	summarizerConfig
	mu    sync.Mutex
	agent *agents.Agent[schema.String, Output]
}

var _ Summarizer = (*StructuredSummarizer)(nil)

// NewStructuredSummarizer accepts an agents.OpenAIStructuredClient or agents.AnthropicStructuredClient
func NewStructuredSummarizer(clt any, opts ...SummarizerOption) *StructuredSummarizer {
	cfg := newSummarizerConfig(opts...)
	return &StructuredSummarizer{
		summarizerConfig: cfg,
		agent: agents.NewAgent[schema.String, Output](
			agents.WithClient(clt),
			agents.WithName("local-lab-summarizer"),
			agents.WithModel(cfg.model),
			agents.WithMaxTokens(cfg.maxTokens),
			agents.WithTemperature(cfg.temperature),
			agents.WithLogger(cfg.logger),
			agents.WithSystemPromptGenerator(cot.New(
				cot.WithBackground(structuredBackground),
				cot.WithSteps(structuredSteps),
				cot.WithOutputInstructs(structuredOutput),
			)),
		),
	}
}

// Summarize runs one single turn conversation, history is dropped between reports
func (s *StructuredSummarizer) Summarize(ctx context.Context, text string) (*Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agent.ResetMemory()
	var (
		in      = schema.String(text)
		out     = new(Output)
		llmResp components.LLMResponse
	)
	if err := s.agent.Run(ctx, &in, out, &llmResp); err != nil {
		return nil, fmt.Errorf("local model %s: %w", s.model, err)
	}
	if llmResp.Usage != nil {
		s.logger.DebugContext(ctx, "local model usage", slog.String("model", s.model), slog.Int64("input_tokens", llmResp.Usage.InputTokens), slog.Int64("output_tokens", llmResp.Usage.OutputTokens))
	}
	return out, nil
}
