package components

import (
	"encoding/json"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ToolCall is a tool invocation requested by the model
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ToolCallFromOpenAI converts an openai tool call
func ToolCallFromOpenAI(v openai.ToolCall) ToolCall {
	return ToolCall{
		ID:        v.ID,
		Name:      v.Function.Name,
		Arguments: v.Function.Arguments,
	}
}

// ToolCallFromAnthropic converts an anthropic tool_use block
func ToolCallFromAnthropic(v *anthropic.MessageContentToolUse) ToolCall {
	args := string(v.Input)
	if args == "" {
		args = "{}"
	}
	return ToolCall{
		ID:        v.ID,
		Name:      v.Name,
		Arguments: args,
	}
}

// ToolCallsToOpenAI fill an assistant message with tool calls
func ToolCallsToOpenAI(src []ToolCall, dist *openai.ChatCompletionMessage) {
	dist.Role = openai.ChatMessageRoleAssistant
	dist.ToolCalls = make([]openai.ToolCall, 0, len(src))
	for _, v := range src {
		dist.ToolCalls = append(dist.ToolCalls, openai.ToolCall{
			ID:   v.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      v.Name,
				Arguments: v.Arguments,
			},
		})
	}
}

// ToolCallsToAnthropic appends tool_use blocks to an assistant message
func ToolCallsToAnthropic(src []ToolCall, dist *anthropic.Message) {
	dist.Role = anthropic.RoleAssistant
	for _, v := range src {
		args := json.RawMessage(v.Arguments)
		if !json.Valid(args) {
			args = json.RawMessage("{}")
		}
		dist.Content = append(dist.Content, anthropic.NewToolUseMessageContent(v.ID, v.Name, args))
	}
}

// ToolCallback is the result of a tool call sent back to the model
type ToolCallback struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// ToolCallbacksToOpenAI returns one tool message per callback
func ToolCallbacksToOpenAI(src []ToolCallback) []openai.ChatCompletionMessage {
	list := make([]openai.ChatCompletionMessage, 0, len(src))
	for _, v := range src {
		list = append(list, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    v.Content,
			Name:       v.Name,
			ToolCallID: v.ID,
		})
	}
	return list
}

// ToolCallbacksToAnthropic packs callbacks into a single user message of tool_result blocks
func ToolCallbacksToAnthropic(src []ToolCallback, dist *anthropic.Message) {
	list := make([]anthropic.MessageContent, 0, len(src))
	for _, v := range src {
		list = append(list, anthropic.NewToolResultMessageContent(v.ID, v.Content, v.IsError))
	}
	dist.Role = anthropic.RoleUser
	dist.Content = list
}
