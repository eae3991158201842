package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/schema"
	"github.com/bububa/hybrid-triage/tools"
)

const secretReport = "Patient: Alex Thompson\nWBC 14.5 HIGH"

func newTestAgent(t *testing.T, clt any, tool *echoTool, opts ...Option) *ToolAgent {
	registry, err := tools.NewRegistry(tool)
	require.NoError(t, err)
	opts = append([]Option{
		WithClient(clt),
		WithModel("test-model"),
		WithMaxTokens(512),
		WithName("test-agent"),
	}, opts...)
	return NewToolAgent(registry, opts...)
}

func TestToolAgentOpenAIToolRoundTrip(t *testing.T) {
	srv := newScriptedServer(t,
		openAIToolCall("call_1", "echo", `{"text":"`+"Patient: Alex Thompson\\nWBC 14.5 HIGH"+`"}`),
		openAIText("Your white cell count is high. This is not medical advice."),
	)
	tool := newEchoTool()
	agent := newTestAgent(t, srv.openAIClient(), tool)
	agent.Protect(secretReport)

	var (
		started, ended bool
		answer         Answer
		llmResp        components.LLMResponse
	)
	agent.SetStartHook(func(context.Context, *ToolAgent, schema.Schema) { started = true })
	agent.SetEndHook(func(context.Context, *ToolAgent, schema.Schema, *Answer, *components.LLMResponse) { ended = true })

	err := agent.Run(context.Background(), schema.String("case\n"+secretReport), &answer, &llmResp)
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, ended)
	assert.Equal(t, "Your white cell count is high. This is not medical advice.", answer.Text)
	assert.Equal(t, []string{"echo"}, answer.ToolCalls)
	assert.True(t, answer.ToolInvoked())
	assert.Equal(t, 2, answer.Steps)
	assert.Equal(t, []string{secretReport}, tool.calls)
	require.NotNil(t, llmResp.Usage)
	assert.EqualValues(t, 30, llmResp.Usage.InputTokens)
	assert.EqualValues(t, 12, llmResp.Usage.OutputTokens)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Contains(t, reqs[0], `"tools"`)
	assert.Contains(t, reqs[0], `"name":"echo"`)
	assert.Contains(t, reqs[0], "Alex Thompson", "the first request carries the raw case")

	assert.NotContains(t, reqs[1], "Alex Thompson", "nothing raw after the tool ran")
	assert.Contains(t, reqs[1], ProtectedPlaceholder)
	assert.Contains(t, reqs[1], `[REDACTED]`)
	assert.Contains(t, reqs[1], `"tool_call_id":"call_1"`)
	assert.Contains(t, reqs[1], `"role":"tool"`)
}

func TestToolAgentOpenAIWithoutToolCall(t *testing.T) {
	srv := newScriptedServer(t, openAIText("Rest and hydrate. This is not medical advice."))
	tool := newEchoTool()
	agent := newTestAgent(t, srv.openAIClient(), tool)

	var answer Answer
	err := agent.Run(context.Background(), schema.String("mild headache"), &answer, nil)
	require.NoError(t, err)
	assert.False(t, answer.ToolInvoked())
	assert.Equal(t, 1, answer.Steps)
	assert.Empty(t, tool.calls)
}

func TestToolAgentMaxSteps(t *testing.T) {
	srv := newScriptedServer(t,
		openAIToolCall("call_1", "echo", `{"text":"a"}`),
		openAIToolCall("call_2", "echo", `{"text":"b"}`),
	)
	agent := newTestAgent(t, srv.openAIClient(), newEchoTool(), WithMaxSteps(2))

	var answer Answer
	err := agent.Run(context.Background(), schema.String("loop"), &answer, nil)
	assert.ErrorIs(t, err, ErrMaxSteps)
	assert.Equal(t, []string{"echo", "echo"}, answer.ToolCalls)
}

func TestToolAgentToolErrorPropagates(t *testing.T) {
	srv := newScriptedServer(t, openAIToolCall("call_1", "echo", `{"text":"a"}`))
	tool := newEchoTool()
	tool.fail = errors.New("connection refused")
	agent := newTestAgent(t, srv.openAIClient(), tool)

	var hookErr error
	agent.SetErrorHook(func(_ context.Context, _ *ToolAgent, _ schema.Schema, err error) { hookErr = err })
	var answer Answer
	err := agent.Run(context.Background(), schema.String("labs"), &answer, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, err, hookErr)
	assert.Len(t, srv.Requests(), 1)
}

func TestToolAgentUnknownTool(t *testing.T) {
	srv := newScriptedServer(t, openAIToolCall("call_1", "missing", `{}`))
	agent := newTestAgent(t, srv.openAIClient(), newEchoTool())
	var answer Answer
	err := agent.Run(context.Background(), schema.String("labs"), &answer, nil)
	assert.ErrorIs(t, err, tools.ErrToolUnregistered)
}

func TestToolAgentEmptyAnswer(t *testing.T) {
	srv := newScriptedServer(t, openAIText("  "))
	agent := newTestAgent(t, srv.openAIClient(), newEchoTool())
	var answer Answer
	err := agent.Run(context.Background(), schema.String("hello"), &answer, nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestToolAgentAnthropic(t *testing.T) {
	srv := newScriptedServer(t,
		map[string]any{
			"id":    "msg_1",
			"type":  "message",
			"role":  "assistant",
			"model": "claude-test",
			"content": []map[string]any{
				{"type": "text", "text": "Let me summarize the labs."},
				{"type": "tool_use", "id": "toolu_1", "name": "echo", "input": map[string]any{"text": secretReport}},
			},
			"stop_reason": "tool_use",
			"usage":       map[string]any{"input_tokens": 11, "output_tokens": 3},
		},
		map[string]any{
			"id":          "msg_2",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-test",
			"content":     []map[string]any{{"type": "text", "text": "See a clinician soon. This is not medical advice."}},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 21, "output_tokens": 9},
		},
	)
	tool := newEchoTool()
	agent := newTestAgent(t, srv.anthropicClient(), tool)
	agent.Protect(secretReport)

	var (
		answer  Answer
		llmResp components.LLMResponse
	)
	err := agent.Run(context.Background(), schema.String("case\n"+secretReport), &answer, &llmResp)
	require.NoError(t, err)
	assert.Equal(t, "See a clinician soon. This is not medical advice.", answer.Text)
	assert.Equal(t, []string{secretReport}, tool.calls)
	assert.Equal(t, "claude-test", llmResp.Model)
	assert.EqualValues(t, 32, llmResp.Usage.InputTokens)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Contains(t, reqs[0], `"input_schema"`)
	assert.Contains(t, reqs[1], `"tool_result"`)
	assert.Contains(t, reqs[1], `"tool_use_id":"toolu_1"`)
	assert.NotContains(t, reqs[1], "Alex Thompson")
}

func TestToolAgentUnsupportedClient(t *testing.T) {
	agent := newTestAgent(t, struct{}{}, newEchoTool())
	var answer Answer
	err := agent.Run(context.Background(), schema.String("hello"), &answer, nil)
	assert.ErrorIs(t, err, ErrUnsupportedClient)

	agent = NewToolAgent(nil)
	err = agent.Run(context.Background(), schema.String("hello"), &answer, nil)
	assert.ErrorIs(t, err, ErrNoRegistry)
}

func TestToolAgentSystemPromptListsTools(t *testing.T) {
	agent := newTestAgent(t, nil, newEchoTool())
	assert.Contains(t, agent.SystemPrompt(), "## Available tools\n- `echo`: Echo text back")
}
