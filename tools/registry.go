package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/components/systemprompt"
	"github.com/bububa/hybrid-triage/schema"
)

var (
	ErrToolUnregistered = errors.New("tool is not registered")
	ErrToolNameEmpty    = errors.New("tool name is empty")
	ErrToolDuplicated   = errors.New("tool is already registered")
)

// Definition declares a callable tool to the model
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type entry struct {
	tool       AnonymousTool
	definition Definition
}

// Registry stores tools by name and executes tool calls.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]int
}

var _ systemprompt.ContextProvider = (*Registry)(nil)

// NewRegistry returns a Registry with the given tools registered.
func NewRegistry(list ...AnonymousTool) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(list))}
	for _, t := range list {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool, deriving its parameters JSON schema from the tool input.
func (r *Registry) Register(t AnonymousTool) error {
	name := t.Title()
	if name == "" {
		return ErrToolNameEmpty
	}
	params, err := schema.JSONSchema(t.Parameters())
	if err != nil {
		return fmt.Errorf("tool %q parameters schema: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.index[name]; found {
		return fmt.Errorf("%w: %q", ErrToolDuplicated, name)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry{
		tool: t,
		definition: Definition{
			Name:        name,
			Description: t.Description(),
			Parameters:  params,
		},
	})
	return nil
}

// Lookup returns the tool registered under name
func (r *Registry) Lookup(name string) (AnonymousTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, found := r.index[name]
	if !found {
		return nil, false
	}
	return r.entries[idx].tool, true
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Definitions returns the tool definitions in registration order
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]Definition, 0, len(r.entries))
	for _, e := range r.entries {
		ret = append(ret, e.definition)
	}
	return ret
}

// ToOpenAI returns the tool definitions as openai function tools
func (r *Registry) ToOpenAI() []openai.Tool {
	defs := r.Definitions()
	ret := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		ret = append(ret, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return ret
}

// ToAnthropic returns the tool definitions as anthropic tool definitions
func (r *Registry) ToAnthropic() []anthropic.ToolDefinition {
	defs := r.Definitions()
	ret := make([]anthropic.ToolDefinition, 0, len(defs))
	for _, def := range defs {
		ret = append(ret, anthropic.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Parameters,
		})
	}
	return ret
}

// Execute runs one tool call and returns the callback to send back to the model.
// Tool errors are returned as is, they are not turned into error callbacks.
func (r *Registry) Execute(ctx context.Context, call components.ToolCall) (components.ToolCallback, error) {
	if err := ctx.Err(); err != nil {
		return components.ToolCallback{}, err
	}
	if call.Name == "" {
		return components.ToolCallback{}, fmt.Errorf("%w: call %q", ErrToolNameEmpty, call.ID)
	}
	t, found := r.Lookup(call.Name)
	if !found {
		return components.ToolCallback{}, fmt.Errorf("%w: %q", ErrToolUnregistered, call.Name)
	}
	output, err := t.RunAnonymous(ctx, call.Arguments)
	if err != nil {
		return components.ToolCallback{}, fmt.Errorf("tool %q: %w", call.Name, err)
	}
	content, err := encodeOutput(output)
	if err != nil {
		return components.ToolCallback{}, fmt.Errorf("tool %q output: %w", call.Name, err)
	}
	return components.ToolCallback{
		ID:      call.ID,
		Name:    call.Name,
		Content: content,
	}, nil
}

// Redact returns the arguments to keep in history for an executed call
func (r *Registry) Redact(call components.ToolCall) (string, bool) {
	t, found := r.Lookup(call.Name)
	if !found {
		return call.Arguments, false
	}
	if redactor, ok := t.(Redactor); ok {
		return redactor.RedactArguments(call.Arguments), true
	}
	return call.Arguments, false
}

// Title implements systemprompt.ContextProvider
func (r *Registry) Title() string {
	return "Available tools"
}

// Info lists the registered tools for the system prompt
func (r *Registry) Info() string {
	defs := r.Definitions()
	lines := make([]string, 0, len(defs))
	for _, def := range defs {
		lines = append(lines, fmt.Sprintf("- `%s`: %s", def.Name, def.Description))
	}
	return strings.Join(lines, "\n")
}

func encodeOutput(output any) (string, error) {
	switch v := output.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case schema.String:
		return string(v), nil
	}
	bs, err := json.Marshal(output)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
