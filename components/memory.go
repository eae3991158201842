package components

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bububa/hybrid-triage/schema"
)

// Memory Manages the chat history for an AI agent.
// threadsafe
type Memory struct {
	//	history is a list of messages representing the chat history.
	history []Message
	//	turnID is the ID of the current turn.
	turnID string
	// maxMessages is the maximum number of messages to keep in history.
	// When exceeded, oldest messages are removed first.
	maxMessages int
	// mtx sync lock
	mtx *sync.RWMutex
}

// NewMemory initializes the Memory with an empty history and optional constraints.
func NewMemory(maxMessages int) *Memory {
	return &Memory{
		maxMessages: maxMessages,
		history:     make([]Message, 0, maxMessages+1),
		mtx:         new(sync.RWMutex),
	}
}

// MaxMessages returns the max number of messages
func (m *Memory) MaxMessages() int {
	return m.maxMessages
}

// TurnID returns the current turn ID
func (m *Memory) TurnID() string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.turnID
}

// NewTurn initializes a new turn by generating a random turn ID.
func (m *Memory) NewTurn() string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.turnID = NewTurnID()
	return m.turnID
}

// NewMessage adds a message to the chat history and manages overflow.
func (m *Memory) NewMessage(role MessageRole, content schema.Schema) *Message {
	return m.AddMessage(NewMessage(role, content))
}

// AddMessage appends a prepared message to the chat history within the current turn.
func (m *Memory) AddMessage(msg *Message) *Message {
	m.mtx.Lock()
	msg.SetTurnID(m.turnID)
	m.history = append(m.history, *msg)
	if l := len(m.history); m.maxMessages > 0 && l > m.maxMessages {
		m.history = m.history[l-m.maxMessages:]
	}
	m.mtx.Unlock()
	return msg
}

// History returns a copy of the chat history.
func (m *Memory) History() []Message {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	ret := make([]Message, len(m.history))
	copy(ret, m.history)
	return ret
}

// Reset clears the chat history
func (m *Memory) Reset() {
	m.mtx.Lock()
	m.history = make([]Message, 0, m.maxMessages+1)
	m.turnID = ""
	m.mtx.Unlock()
}

// DeleteTurn delete messages from the memory by its turn ID.
// returns Error if the specified turn ID is not found in the memory
func (m *Memory) DeleteTurn(turnID string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	l := len(m.history)
	list := make([]Message, 0, l)
	for _, v := range m.history {
		if v.TurnID() == turnID {
			continue
		}
		list = append(list, v)
	}
	m.history = list
	num := len(list)
	if num == l {
		return fmt.Errorf("TurnID %s not found in memory", turnID)
	}
	if num == 0 {
		m.turnID = ""
	} else if turnID == m.turnID {
		m.turnID = m.history[num-1].TurnID()
	}
	return nil
}

// MessageCount returns the number of messages in the chat history.
func (m *Memory) MessageCount() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.history)
}

// Redact replaces every occurrence of secret in message contents and tool payloads
// with replacement. Returns the number of messages changed.
func (m *Memory) Redact(secret string, replacement string) int {
	if strings.TrimSpace(secret) == "" {
		return 0
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()
	var changed int
	for idx := range m.history {
		msg := &m.history[idx]
		dirty := false
		if txt := schema.Stringify(msg.content); strings.Contains(txt, secret) {
			msg.content = schema.String(strings.ReplaceAll(txt, secret, replacement))
			dirty = true
		}
		if len(msg.toolCalls) > 0 {
			calls := make([]ToolCall, len(msg.toolCalls))
			for i, call := range msg.toolCalls {
				if strings.Contains(call.Arguments, secret) {
					call.Arguments = strings.ReplaceAll(call.Arguments, secret, replacement)
					dirty = true
				}
				calls[i] = call
			}
			msg.toolCalls = calls
		}
		if len(msg.toolCallbacks) > 0 {
			callbacks := make([]ToolCallback, len(msg.toolCallbacks))
			for i, cb := range msg.toolCallbacks {
				if strings.Contains(cb.Content, secret) {
					cb.Content = strings.ReplaceAll(cb.Content, secret, replacement)
					dirty = true
				}
				callbacks[i] = cb
			}
			msg.toolCallbacks = callbacks
		}
		if dirty {
			changed++
		}
	}
	return changed
}

// RewriteToolArguments replaces the arguments of the tool call identified by callID.
// Returns false if no such call is in history.
func (m *Memory) RewriteToolArguments(callID string, fn func(string) string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for idx := range m.history {
		msg := &m.history[idx]
		for i, call := range msg.toolCalls {
			if call.ID != callID {
				continue
			}
			calls := make([]ToolCall, len(msg.toolCalls))
			copy(calls, msg.toolCalls)
			calls[i].Arguments = fn(call.Arguments)
			msg.toolCalls = calls
			return true
		}
	}
	return false
}
