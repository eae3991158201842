// Package agents runs chat agents against cloud or local language models.
//
// Agent is a single-turn structured agent: the model answer is decoded into an output
// schema by an instructor client. ToolAgent is a plain-text agent that lets the model
// call tools from a registry before answering.
package agents

import (
	"context"
	"fmt"
	"log/slog"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/components/systemprompt"
	"github.com/bububa/hybrid-triage/components/systemprompt/cot"
	"github.com/bububa/hybrid-triage/schema"
)

// OpenAIStructuredClient is an openai client decoding the completion into responseType,
// as implemented by the openai instructor of instructor-go
type OpenAIStructuredClient interface {
	Chat(ctx context.Context, request *openai.ChatCompletionRequest, responseType any, response *openai.ChatCompletionResponse) error
}

// AnthropicStructuredClient is an anthropic client decoding the message into responseType,
// as implemented by the anthropic instructor of instructor-go
type AnthropicStructuredClient interface {
	Chat(ctx context.Context, request *anthropic.MessagesRequest, responseType any, response *anthropic.MessagesResponse) error
}

// Config represents general agents configuration
type Config struct {
	// client Client for interacting with the language model
	client any
	//	memory  Memory component for storing chat history.
	memory *components.Memory
	//	systemPromptGenerator Component for generating system prompts.
	systemPromptGenerator systemprompt.Generator
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// name is Agent name presentation
	name string
	// maxSteps bounds model calls per run (ToolAgent only)
	maxSteps int
	logger   *slog.Logger
}

func newConfig(options ...Option) Config {
	var c Config
	for _, opt := range options {
		opt(&c)
	}
	if c.memory == nil {
		c.memory = components.NewMemory(0)
	}
	if c.systemPromptGenerator == nil {
		c.systemPromptGenerator = cot.New()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

func (c Config) Name() string {
	return c.name
}

func (c Config) Model() string {
	return c.model
}

// Memory returns the agent chat history
func (c Config) Memory() *components.Memory {
	return c.memory
}

// ResetMemory clears the chat history
func (c *Config) ResetMemory() {
	c.memory.Reset()
}

// SystemPrompt returns the system prompt
func (c Config) SystemPrompt() string {
	return c.systemPromptGenerator.Generate()
}

// RegisterSystemPromptContextProvider registers a new context provider
func (c *Config) RegisterSystemPromptContextProvider(provider systemprompt.ContextProvider) {
	c.systemPromptGenerator.AddContextProviders(provider)
}

// UnregisterSystemPromptContextProvider Unregisters an existing context provider.
func (c *Config) UnregisterSystemPromptContextProvider(title string) {
	c.systemPromptGenerator.RemoveContextProviders(title)
}

// Agent is a structured chat agent.
// The model answer is decoded into O by an instructor client.
type Agent[I schema.Schema, O schema.Schema] struct {
	Config
	startHook func(context.Context, *Agent[I, O], *I)
	endHook   func(context.Context, *Agent[I, O], *I, *O, *components.LLMResponse)
	errorHook func(context.Context, *Agent[I, O], *I, *components.LLMResponse, error)
}

// NewAgent initializes the Agent
func NewAgent[I schema.Schema, O schema.Schema](options ...Option) *Agent[I, O] {
	return &Agent[I, O]{
		Config: newConfig(options...),
	}
}

func (a *Agent[I, O]) SetStartHook(fn func(context.Context, *Agent[I, O], *I)) {
	a.startHook = fn
}

func (a *Agent[I, O]) SetEndHook(fn func(context.Context, *Agent[I, O], *I, *O, *components.LLMResponse)) {
	a.endHook = fn
}

func (a *Agent[I, O]) SetErrorHook(fn func(context.Context, *Agent[I, O], *I, *components.LLMResponse, error)) {
	a.errorHook = fn
}

// response obtains a structured response from the language model synchronously
func (a *Agent[I, O]) response(ctx context.Context, response *O, llmResp *components.LLMResponse) error {
	systemPrompt := a.SystemPrompt()
	history := a.memory.History()
	switch clt := a.client.(type) {
	case OpenAIStructuredClient:
		req := openai.ChatCompletionRequest{
			Model:       a.model,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
			Messages: []openai.ChatCompletionMessage{{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			}},
		}
		for _, msg := range history {
			req.Messages = append(req.Messages, msg.ToOpenAI()...)
		}
		var res openai.ChatCompletionResponse
		if err := clt.Chat(ctx, &req, response, &res); err != nil {
			return err
		}
		if llmResp != nil {
			llmResp.FromOpenAI(&res)
		}
	case AnthropicStructuredClient:
		temperature := a.temperature
		req := anthropic.MessagesRequest{
			Model:       anthropic.Model(a.model),
			System:      systemPrompt,
			Temperature: &temperature,
			MaxTokens:   a.maxTokens,
		}
		for _, msg := range history {
			v := new(anthropic.Message)
			msg.ToAnthropic(v)
			req.Messages = append(req.Messages, *v)
		}
		var res anthropic.MessagesResponse
		if err := clt.Chat(ctx, &req, response, &res); err != nil {
			return err
		}
		if llmResp != nil {
			llmResp.FromAnthropic(&res)
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedClient, a.client)
	}
	return nil
}

// Run runs the agent with the given user input synchronously.
func (a *Agent[I, O]) Run(ctx context.Context, userInput *I, output *O, llmResp *components.LLMResponse) error {
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	if userInput != nil {
		a.memory.NewTurn()
		a.memory.NewMessage(components.UserRole, *userInput)
	}
	if err := a.response(ctx, output, llmResp); err != nil {
		if fn := a.errorHook; fn != nil {
			fn(ctx, a, userInput, llmResp, err)
		}
		return err
	}
	a.memory.NewMessage(components.AssistantRole, *output)
	if fn := a.endHook; fn != nil {
		fn(ctx, a, userInput, output, llmResp)
	}
	return nil
}
