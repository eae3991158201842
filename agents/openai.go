package agents

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/components"
)

// openAIStep sends system prompt, history and tool definitions to an openai compatible endpoint
func (t *ToolAgent) openAIStep(ctx context.Context, clt *openai.Client) (*stepResult, error) {
	history := t.memory.History()
	req := openai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: t.temperature,
		MaxTokens:   t.maxTokens,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(history)+1),
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: t.SystemPrompt(),
	})
	for _, msg := range history {
		req.Messages = append(req.Messages, msg.ToOpenAI()...)
	}
	if t.registry.Len() > 0 {
		req.Tools = t.registry.ToOpenAI()
	}
	res, err := clt.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	ret := new(stepResult)
	ret.resp.FromOpenAI(&res)
	msg := res.Choices[0].Message
	ret.text = msg.Content
	for _, call := range msg.ToolCalls {
		ret.calls = append(ret.calls, components.ToolCallFromOpenAI(call))
	}
	return ret, nil
}
