package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/hybrid-triage/config"
	"github.com/bububa/hybrid-triage/triage"
)

func serve(t *testing.T, responses ...openai.ChatCompletionResponse) *httptest.Server {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idx := int(calls.Add(1)) - 1
		if idx >= len(responses) {
			idx = len(responses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responses[idx])
	}))
	t.Cleanup(srv.Close)
	return srv
}

func message(msg openai.ChatCompletionMessage) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{ID: "chatcmpl", Choices: []openai.ChatCompletionChoice{{Message: msg}}}
}

func TestRun(t *testing.T) {
	cloud := serve(t,
		message(openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleAssistant,
			ToolCalls: []openai.ToolCall{{
				ID:       "call_1",
				Type:     openai.ToolTypeFunction,
				Function: openai.FunctionCall{Name: "summarize_lab_report", Arguments: `{"lab_text":"WBC 14.5 HIGH"}`},
			}},
		}),
		message(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "- Rest and drink fluids.\nThis is not medical advice."}),
	)
	local := serve(t, message(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: `{"overall_assessment":"High white cells.","notable_abnormal_results":[{"test":"WBC","value":"14.5","unit":null,"reference_range":null,"severity":"mild"}]}`,
	}))

	for _, key := range []string{config.EnvConfigPath, "AZURE_OPENAI_ENDPOINT", "HYBRID_TRIAGE_REPORT", "HYBRID_TRIAGE_CASE", "FOUNDRY_LOCAL_MODEL", "OPENAI_MODEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_BASE_URL", cloud.URL+"/v1")
	t.Setenv("FOUNDRY_LOCAL_BASE_URL", local.URL+"/v1")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	err := run(context.Background(), &out, new(slog.LevelVar))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[LOCAL TOOL] POST "+local.URL+"/v1/chat/completions")
	assert.Contains(t, out.String(), "[LOCAL TOOL] Parsed lab summary JSON:")
	assert.Contains(t, out.String(), `"overall_assessment": "High white cells."`)
	assert.Contains(t, out.String(), "=== Symptom Checker (Hybrid: Local Tool + Cloud Agent) ===")
	assert.Contains(t, out.String(), "This is not medical advice.")
}

func TestRunInvalidConfig(t *testing.T) {
	for _, key := range []string{config.EnvConfigPath, "OPENAI_API_KEY", "AZURE_OPENAI_ENDPOINT"} {
		t.Setenv(key, "")
	}
	err := run(context.Background(), new(bytes.Buffer), new(slog.LevelVar))
	assert.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestLoadCase(t *testing.T) {
	req, err := loadCase(context.Background(), config.CaseConfig{})
	require.NoError(t, err)
	assert.Equal(t, triage.DemoCase(), req)

	req, err = loadCase(context.Background(), config.CaseConfig{Narrative: "patient reports fatigue"})
	require.NoError(t, err)
	assert.Equal(t, "patient reports fatigue", req.Narrative)
	assert.False(t, req.HasLabReport())

	path := filepath.Join(t.TempDir(), "labs.txt")
	require.NoError(t, os.WriteFile(path, []byte("TSH 7.9 mIU/L HIGH\n"), 0o600))
	req, err = loadCase(context.Background(), config.CaseConfig{ReportFile: path})
	require.NoError(t, err)
	assert.Equal(t, triage.DemoNarrative, req.Narrative)
	assert.Contains(t, req.LabReport, "TSH 7.9")

	_, err = loadCase(context.Background(), config.CaseConfig{ReportFile: filepath.Join(t.TempDir(), "missing.pdf")})
	assert.Error(t, err)
}
