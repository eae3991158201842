package agents

import (
	"context"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/bububa/hybrid-triage/components"
)

// anthropicStep sends system prompt, history and tool definitions to the anthropic messages API
func (t *ToolAgent) anthropicStep(ctx context.Context, clt *anthropic.Client) (*stepResult, error) {
	history := t.memory.History()
	temperature := t.temperature
	req := anthropic.MessagesRequest{
		Model:       anthropic.Model(t.model),
		System:      t.SystemPrompt(),
		Temperature: &temperature,
		MaxTokens:   t.maxTokens,
		Messages:    make([]anthropic.Message, 0, len(history)),
	}
	for _, msg := range history {
		v := new(anthropic.Message)
		msg.ToAnthropic(v)
		req.Messages = append(req.Messages, *v)
	}
	if t.registry.Len() > 0 {
		req.Tools = t.registry.ToAnthropic()
	}
	res, err := clt.CreateMessages(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Content) == 0 {
		return nil, ErrEmptyResponse
	}
	ret := new(stepResult)
	ret.resp.FromAnthropic(&res)
	var text strings.Builder
	for _, content := range res.Content {
		switch content.Type {
		case anthropic.MessagesContentTypeText:
			text.WriteString(content.GetText())
		case anthropic.MessagesContentTypeToolUse:
			if content.MessageContentToolUse != nil {
				ret.calls = append(ret.calls, components.ToolCallFromAnthropic(content.MessageContentToolUse))
			}
		}
	}
	ret.text = text.String()
	return ret, nil
}
