package components

import (
	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// Message  Represents a message in the chat history.
type Message struct {
	content schema.Schema
	// role is the role of the message sender (e.g., 'user', 'system', 'tool')
	role MessageRole
	//	turnID is Unique identifier for the turn this message belongs to.
	turnID string
	// toolCalls are the tool invocations requested by an assistant message
	toolCalls []ToolCall
	// toolCallbacks are the tool results carried by a tool message
	toolCallbacks []ToolCallback
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolCallMessage returns an assistant message requesting tool calls
func NewToolCallMessage(calls []ToolCall) *Message {
	return &Message{
		role:      AssistantRole,
		content:   schema.String(""),
		toolCalls: calls,
	}
}

// NewToolCallbackMessage returns a tool message carrying tool results
func NewToolCallbackMessage(callbacks []ToolCallback) *Message {
	return &Message{
		role:          ToolRole,
		content:       schema.String(""),
		toolCallbacks: callbacks,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToolCalls returns the tool calls requested by the message
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToolCallbacks returns the tool results carried by the message
func (m Message) ToolCallbacks() []ToolCallback {
	return m.toolCallbacks
}

// ToOpenAI convert message to openai ChatCompletionMessages.
// A tool message expands to one openai message per callback.
func (m Message) ToOpenAI() []openai.ChatCompletionMessage {
	switch {
	case len(m.toolCallbacks) > 0:
		return ToolCallbacksToOpenAI(m.toolCallbacks)
	case len(m.toolCalls) > 0:
		var msg openai.ChatCompletionMessage
		ToolCallsToOpenAI(m.toolCalls, &msg)
		msg.Content = schema.Stringify(m.content)
		return []openai.ChatCompletionMessage{msg}
	}
	return []openai.ChatCompletionMessage{{
		Role:    m.role,
		Content: schema.Stringify(m.content),
	}}
}

// ToAnthropic convert message to anthropic Message
func (m Message) ToAnthropic(dist *anthropic.Message) {
	switch {
	case len(m.toolCallbacks) > 0:
		ToolCallbacksToAnthropic(m.toolCallbacks, dist)
		return
	case len(m.toolCalls) > 0:
		dist.Content = nil
		if txt := schema.Stringify(m.content); txt != "" {
			dist.Content = append(dist.Content, anthropic.NewTextMessageContent(txt))
		}
		ToolCallsToAnthropic(m.toolCalls, dist)
		return
	}
	dist.Role = anthropic.ChatRole(m.role)
	dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(schema.Stringify(m.content))}
}
