package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/hybrid-triage/schema"
)

func TestMemoryOverflow(t *testing.T) {
	mem := NewMemory(2)
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.String("one"))
	mem.NewMessage(AssistantRole, schema.String("two"))
	mem.NewMessage(UserRole, schema.String("three"))
	history := mem.History()
	require.Len(t, history, 2)
	assert.Equal(t, "two", schema.Stringify(history[0].Content()))
	assert.Equal(t, "three", schema.Stringify(history[1].Content()))
}

func TestMemoryDeleteTurn(t *testing.T) {
	mem := NewMemory(0)
	first := mem.NewTurn()
	mem.NewMessage(UserRole, schema.String("first"))
	second := mem.NewTurn()
	mem.NewMessage(UserRole, schema.String("second"))

	require.NoError(t, mem.DeleteTurn(second))
	assert.Equal(t, 1, mem.MessageCount())
	assert.Equal(t, first, mem.TurnID())
	assert.Error(t, mem.DeleteTurn("missing"))

	mem.Reset()
	assert.Equal(t, 0, mem.MessageCount())
	assert.Empty(t, mem.TurnID())
}

func TestMemoryRedact(t *testing.T) {
	const secret = "WBC 14.5 HIGH\nPatient: Alex"
	mem := NewMemory(0)
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.String("case\n"+secret+"\nplease help"))
	mem.AddMessage(NewToolCallMessage([]ToolCall{{ID: "c1", Name: "sum", Arguments: "prefix " + secret}}))
	mem.AddMessage(NewToolCallbackMessage([]ToolCallback{{ID: "c1", Content: `{"ok":true}`}}))

	changed := mem.Redact(secret, "[gone]")
	assert.Equal(t, 2, changed)
	for _, msg := range mem.History() {
		assert.NotContains(t, schema.Stringify(msg.Content()), secret)
		for _, call := range msg.ToolCalls() {
			assert.NotContains(t, call.Arguments, secret)
		}
	}
	assert.Equal(t, "case\n[gone]\nplease help", schema.Stringify(mem.History()[0].Content()))
	assert.Zero(t, mem.Redact("   ", "x"))
}

func TestMemoryRewriteToolArguments(t *testing.T) {
	mem := NewMemory(0)
	calls := []ToolCall{{ID: "c1", Name: "sum", Arguments: `{"lab_text":"raw"}`}}
	mem.AddMessage(NewToolCallMessage(calls))

	ok := mem.RewriteToolArguments("c1", func(string) string { return `{"lab_text":"[REDACTED]"}` })
	require.True(t, ok)
	assert.Equal(t, `{"lab_text":"[REDACTED]"}`, mem.History()[0].ToolCalls()[0].Arguments)
	// the caller's slice is untouched
	assert.Equal(t, `{"lab_text":"raw"}`, calls[0].Arguments)
	assert.False(t, mem.RewriteToolArguments("c2", func(s string) string { return s }))
}
