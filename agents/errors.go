package agents

import "errors"

var (
	// ErrUnsupportedClient is returned when the configured client is not a known provider client
	ErrUnsupportedClient = errors.New("unsupported llm client")
	// ErrEmptyResponse is returned when the provider answers without any choice or content
	ErrEmptyResponse = errors.New("empty llm response")
	// ErrMaxSteps is returned when the model keeps requesting tools past the step limit
	ErrMaxSteps = errors.New("max agent steps exceeded")
	// ErrNoRegistry is returned when a ToolAgent runs without a tool registry
	ErrNoRegistry = errors.New("tool registry is not set")
)
