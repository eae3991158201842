package agents

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/tools"
)

// scriptedServer answers each request with the next scripted body and records request bodies
type scriptedServer struct {
	*httptest.Server
	mu       sync.Mutex
	bodies   []any
	requests []string
}

func newScriptedServer(t *testing.T, bodies ...any) *scriptedServer {
	s := &scriptedServer{bodies: bodies}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bs, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		idx := len(s.requests)
		s.requests = append(s.requests, string(bs))
		s.mu.Unlock()
		if idx >= len(s.bodies) {
			http.Error(w, `{"error":{"message":"script exhausted"}}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.bodies[idx])
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *scriptedServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]string, len(s.requests))
	copy(ret, s.requests)
	return ret
}

func (s *scriptedServer) openAIClient() *openai.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = s.URL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func (s *scriptedServer) anthropicClient() *anthropic.Client {
	return anthropic.NewClient("test-key", anthropic.WithBaseURL(s.URL+"/v1"))
}

func openAIToolCall(id string, name string, args string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-" + id,
		Model: "gpt-test",
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{{
					ID:       id,
					Type:     openai.ToolTypeFunction,
					Function: openai.FunctionCall{Name: name, Arguments: args},
				}},
			},
			FinishReason: openai.FinishReasonToolCalls,
		}},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func openAIText(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-final",
		Model: "gpt-test",
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: text,
			},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{PromptTokens: 20, CompletionTokens: 7, TotalTokens: 27},
	}
}

type echoInput struct {
	Text string `json:"text" jsonschema:"title=text,description=Text to echo"`
}

type echoTool struct {
	tools.Config
	calls []string
	fail  error
}

func newEchoTool() *echoTool {
	ret := new(echoTool)
	ret.SetTitle("echo")
	ret.SetDescription("Echo text back")
	return ret
}

func (t *echoTool) Parameters() any {
	return new(echoInput)
}

func (t *echoTool) RunAnonymous(_ context.Context, arguments string) (any, error) {
	in := new(echoInput)
	if err := json.Unmarshal([]byte(arguments), in); err != nil {
		return nil, err
	}
	t.calls = append(t.calls, in.Text)
	if t.fail != nil {
		return nil, t.fail
	}
	return map[string]int{"length": len(in.Text)}, nil
}

func (t *echoTool) RedactArguments(string) string {
	return `{"text":"[REDACTED]"}`
}
