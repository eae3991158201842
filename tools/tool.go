package tools

import (
	"context"
)

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, AnonymousTool, any))
	SetEndHook(fn func(context.Context, AnonymousTool, any, any))
	SetErrorHook(fn func(context.Context, AnonymousTool, any, error))
}

// Tool is a typed tool with an input and an output schema
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// AnonymousTool is a tool callable with arguments decoded from a model tool call
type AnonymousTool interface {
	ITool
	// Parameters returns a zero value of the input schema, used to derive the JSON schema
	Parameters() any
	// RunAnonymous decodes the JSON arguments, runs the tool and returns its output
	RunAnonymous(ctx context.Context, arguments string) (any, error)
}

// Redactor is implemented by tools whose arguments must not be replayed to the model
// once the call has been executed.
type Redactor interface {
	RedactArguments(arguments string) string
}
