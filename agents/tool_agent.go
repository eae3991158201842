package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/schema"
	"github.com/bububa/hybrid-triage/tools"
)

const (
	DefaultMaxSteps = 5
	// ProtectedPlaceholder replaces protected text in history once a tool has run
	ProtectedPlaceholder = "[lab report summarized locally]"
)

// Answer is the final output of a ToolAgent run
type Answer struct {
	// Text is the model answer
	Text string `json:"text"`
	// ToolCalls lists the names of the executed tools in call order
	ToolCalls []string `json:"tool_calls,omitempty"`
	// Steps is the number of model calls
	Steps int `json:"steps"`
}

// ToolInvoked reports whether the model called at least one tool
func (a Answer) ToolInvoked() bool {
	return len(a.ToolCalls) > 0
}

// ToolAgent represent agent with tool callback.
// The model decides whether to call the registered tools; results are fed back
// until the model answers without requesting any tool.
type ToolAgent struct {
	Config
	registry  *tools.Registry
	protected []string
	startHook func(context.Context, *ToolAgent, schema.Schema)
	endHook   func(context.Context, *ToolAgent, schema.Schema, *Answer, *components.LLMResponse)
	errorHook func(context.Context, *ToolAgent, schema.Schema, error)
}

// stepResult is one model call result
type stepResult struct {
	text  string
	calls []components.ToolCall
	resp  components.LLMResponse
}

// NewToolAgent returns a new ToolAgent instance.
// The registry is also registered as a system prompt context provider.
func NewToolAgent(registry *tools.Registry, options ...Option) *ToolAgent {
	ret := &ToolAgent{
		Config:   newConfig(options...),
		registry: registry,
	}
	if ret.maxSteps <= 0 {
		ret.maxSteps = DefaultMaxSteps
	}
	if registry != nil {
		ret.RegisterSystemPromptContextProvider(registry)
	}
	return ret
}

func (t *ToolAgent) SetStartHook(fn func(context.Context, *ToolAgent, schema.Schema)) {
	t.startHook = fn
}

func (t *ToolAgent) SetEndHook(fn func(context.Context, *ToolAgent, schema.Schema, *Answer, *components.LLMResponse)) {
	t.endHook = fn
}

func (t *ToolAgent) SetErrorHook(fn func(context.Context, *ToolAgent, schema.Schema, error)) {
	t.errorHook = fn
}

// Protect marks texts that must disappear from history once any tool has been invoked
func (t *ToolAgent) Protect(texts ...string) {
	for _, v := range texts {
		if strings.TrimSpace(v) != "" {
			t.protected = append(t.protected, v)
		}
	}
}

// Run runs the agent with the given user input synchronously.
// llmResp receives the last provider response with the usage of every step merged.
func (t *ToolAgent) Run(ctx context.Context, userInput schema.Schema, output *Answer, llmResp *components.LLMResponse) error {
	if fn := t.startHook; fn != nil {
		fn(ctx, t, userInput)
	}
	if err := t.run(ctx, userInput, output, llmResp); err != nil {
		if fn := t.errorHook; fn != nil {
			fn(ctx, t, userInput, err)
		}
		return err
	}
	if fn := t.endHook; fn != nil {
		fn(ctx, t, userInput, output, llmResp)
	}
	return nil
}

func (t *ToolAgent) run(ctx context.Context, userInput schema.Schema, output *Answer, llmResp *components.LLMResponse) error {
	if t.registry == nil {
		return ErrNoRegistry
	}
	if userInput != nil {
		t.memory.NewTurn()
		t.memory.NewMessage(components.UserRole, userInput)
	}
	usage := new(components.LLMUsage)
	for n := 1; n <= t.maxSteps; n++ {
		st, err := t.step(ctx)
		if err != nil {
			return fmt.Errorf("agent %s step %d: %w", t.name, n, err)
		}
		usage.Merge(st.resp.Usage)
		output.Steps = n
		if len(st.calls) == 0 {
			if strings.TrimSpace(st.text) == "" {
				return fmt.Errorf("agent %s step %d: %w", t.name, n, ErrEmptyResponse)
			}
			t.memory.NewMessage(components.AssistantRole, schema.String(st.text))
			output.Text = st.text
			if llmResp != nil {
				*llmResp = st.resp
				llmResp.Usage = usage
			}
			if !output.ToolInvoked() && t.registry.Len() > 0 {
				t.logger.WarnContext(ctx, "model answered without calling any tool", slog.String("agent", t.name))
			}
			return nil
		}
		if st.text != "" {
			t.logger.DebugContext(ctx, "model text alongside tool calls", slog.String("agent", t.name), slog.String("text", st.text))
		}
		t.memory.AddMessage(components.NewToolCallMessage(st.calls))
		callbacks := make([]components.ToolCallback, 0, len(st.calls))
		for _, call := range st.calls {
			t.logger.InfoContext(ctx, "executing tool call", slog.String("agent", t.name), slog.String("tool", call.Name), slog.String("call_id", call.ID))
			cb, err := t.registry.Execute(ctx, call)
			if err != nil {
				return err
			}
			callbacks = append(callbacks, cb)
			output.ToolCalls = append(output.ToolCalls, call.Name)
		}
		t.memory.AddMessage(components.NewToolCallbackMessage(callbacks))
		t.redact(st.calls)
	}
	return fmt.Errorf("agent %s: %w (%d)", t.name, ErrMaxSteps, t.maxSteps)
}

// redact scrubs executed tool arguments and protected texts from history
func (t *ToolAgent) redact(calls []components.ToolCall) {
	for _, call := range calls {
		if args, ok := t.registry.Redact(call); ok {
			t.memory.RewriteToolArguments(call.ID, func(string) string { return args })
		}
	}
	for _, secret := range t.protected {
		t.memory.Redact(secret, ProtectedPlaceholder)
	}
}

func (t *ToolAgent) step(ctx context.Context) (*stepResult, error) {
	switch clt := t.client.(type) {
	case *openai.Client:
		return t.openAIStep(ctx, clt)
	case *anthropic.Client:
		return t.anthropicStep(ctx, clt)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedClient, t.client)
}
