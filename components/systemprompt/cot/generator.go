package cot

import (
	"fmt"
	"strings"

	"github.com/bububa/hybrid-triage/components/systemprompt"
)

// Generator is Chain-of-Thought system prompt generator
type Generator struct {
	systemprompt.BaseGenerator
	background      []string
	steps           []string
	outputInstructs []string
	freeText        bool
}

var _ systemprompt.Generator = (*Generator)(nil)

// New returns a new system prompt Generator
func New(options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.background) == 0 {
		ret.background = []string{"- This is a conversation with a helpful and friendly AI assistant."}
	}
	instructs := make([]string, 0, len(ret.outputInstructs)+2)
	instructs = append(instructs, ret.outputInstructs...)
	if !ret.freeText {
		instructs = append(instructs, "- Always respond using the proper JSON schema.")
	}
	ret.outputInstructs = append(instructs, "- Always use the available additional information and context to enhance the response.")
	return ret
}

func (g *Generator) Generate() string {
	var (
		titles   = []string{"IDENTITY and PURPOSE", "INTERNAL ASSISTANT STEPS", "OUTPUT INSTRUCTIONS"}
		sections = map[string][]string{
			titles[0]: g.background,
			titles[1]: g.steps,
			titles[2]: g.outputInstructs,
		}
		promptParts []string
	)
	for _, title := range titles {
		content := sections[title]
		if len(content) > 0 {
			promptParts = append(promptParts, fmt.Sprintf("# %s", title))
			promptParts = append(promptParts, content...)
			promptParts = append(promptParts, "")
		}
	}
	var extra []string
	for _, provider := range g.ContextProviders() {
		if info := provider.Info(); info != "" {
			extra = append(extra, fmt.Sprintf("## %s", provider.Title()), info, "")
		}
	}
	if len(extra) > 0 {
		promptParts = append(promptParts, "# EXTRA INFORMATION AND CONTEXT")
		promptParts = append(promptParts, extra...)
	}
	return strings.TrimSpace(strings.Join(promptParts, "\n"))
}
