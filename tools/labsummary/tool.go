// Package labsummary implements the lab report summarizer tool.
// The raw report is summarized by a model running on the local machine, only the
// structured summary is returned to the calling agent.
package labsummary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/atomic"

	"github.com/bububa/hybrid-triage/tools"
)

// RedactedText replaces lab_text in the stored tool call arguments
const RedactedText = "[REDACTED]"

// Tool is the summarize_lab_report tool
type Tool struct {
	tools.Config
	summarizer  Summarizer
	store       *ReportStore
	logger      *slog.Logger
	leakRun     int
	invocations atomic.Int64
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ tools.AnonymousTool       = (*Tool)(nil)
	_ tools.Redactor            = (*Tool)(nil)
)

type Option func(t *Tool)

// WithStore resolves report_ref arguments from store
func WithStore(store *ReportStore) Option {
	return func(t *Tool) {
		t.store = store
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tool) {
		t.logger = l
	}
}

// WithLeakRunLength sets the verbatim run length logged as a leak
func WithLeakRunLength(n int) Option {
	return func(t *Tool) {
		t.leakRun = n
	}
}

// WithToolOptions applies generic tool options, such as hooks
func WithToolOptions(opts ...tools.Option) Option {
	return func(t *Tool) {
		for _, opt := range opts {
			opt(&t.Config)
		}
	}
}

// New returns the summarize_lab_report tool backed by summarizer
func New(summarizer Summarizer, opts ...Option) *Tool {
	ret := &Tool{
		summarizer: summarizer,
		leakRun:    DefaultLeakRunLength,
	}
	ret.SetTitle(ToolName)
	ret.SetDescription(ToolDescription)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Invocations returns the number of runs so far
func (t *Tool) Invocations() int64 {
	return t.invocations.Load()
}

func (t *Tool) Parameters() any {
	return new(Input)
}

func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	output, err := t.run(ctx, input)
	if err != nil {
		t.OnError(ctx, t, input, err)
		return nil, err
	}
	t.OnEnd(ctx, t, input, output)
	return output, nil
}

func (t *Tool) RunAnonymous(ctx context.Context, arguments string) (any, error) {
	input := new(Input)
	if err := json.Unmarshal([]byte(arguments), input); err != nil {
		return nil, fmt.Errorf("decode %s arguments: %w", ToolName, err)
	}
	output, err := t.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// RedactArguments drops the raw report text from executed call arguments
func (t *Tool) RedactArguments(arguments string) string {
	input := new(Input)
	if err := json.Unmarshal([]byte(arguments), input); err != nil {
		input = &Input{LabText: RedactedText}
	} else if input.LabText != "" {
		input.LabText = RedactedText
	}
	bs, _ := json.Marshal(input)
	return string(bs)
}

func (t *Tool) run(ctx context.Context, input *Input) (*Output, error) {
	n := t.invocations.Inc()
	text, err := t.resolve(input)
	if err != nil {
		return nil, err
	}
	t.logger.InfoContext(ctx, "summarizing lab report locally", slog.Int64("invocation", n), slog.Int("chars", len(text)))
	output, err := t.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarize lab report: %w", err)
	}
	if runs := VerbatimRuns(text, output.String(), t.leakRun); len(runs) > 0 {
		t.logger.WarnContext(ctx, "lab summary repeats report text verbatim", slog.Int("runs", len(runs)))
	}
	if unknown := output.UnknownSeverities(); len(unknown) > 0 {
		t.logger.WarnContext(ctx, "lab summary uses unknown severities", slog.Any("severities", unknown))
	}
	t.logger.InfoContext(ctx, "lab report summarized", slog.Int64("invocation", n), slog.Any("flagged", output.Flagged()))
	return output, nil
}

func (t *Tool) resolve(input *Input) (string, error) {
	if input == nil {
		return "", ErrEmptyReport
	}
	if strings.TrimSpace(input.LabText) != "" {
		return input.LabText, nil
	}
	if input.ReportRef == "" {
		return "", ErrEmptyReport
	}
	if t.store == nil {
		return "", fmt.Errorf("%w: %q", ErrReportNotFound, input.ReportRef)
	}
	return t.store.Get(input.ReportRef)
}
