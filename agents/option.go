package agents

import (
	"log/slog"

	"github.com/bububa/hybrid-triage/components"
	"github.com/bububa/hybrid-triage/components/systemprompt"
)

type Option func(a *Config)

// WithClient sets the llm client.
// Agent expects a structured (instructor) client, ToolAgent a raw *openai.Client or *anthropic.Client.
func WithClient(clt any) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(c *Config) {
		c.systemPromptGenerator = g
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithMaxSteps bounds the number of model calls of a ToolAgent run
func WithMaxSteps(n int) Option {
	return func(c *Config) {
		c.maxSteps = n
	}
}
