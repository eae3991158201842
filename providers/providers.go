// Package providers builds the model clients from configuration.
package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bububa/instructor-go"
	"github.com/bububa/instructor-go/instructors"
	instructoropenai "github.com/bububa/instructor-go/instructors/openai"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/hybrid-triage/config"
	"github.com/bububa/hybrid-triage/tools/labsummary"
)

var ErrUnknownProvider = errors.New("unknown provider")

// NewCloudClient returns the SDK client of the triage agent, *openai.Client or *anthropic.Client
func NewCloudClient(cfg config.CloudConfig) (any, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		return openai.NewClientWithConfig(clientCfg), nil
	case config.ProviderAzure:
		clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.AzureAPIVersion != "" {
			clientCfg.APIVersion = cfg.AzureAPIVersion
		}
		// the configured model is the deployment name
		clientCfg.AzureModelMapperFunc = func(model string) string {
			return model
		}
		return openai.NewClientWithConfig(clientCfg), nil
	case config.ProviderAnthropic:
		opts := make([]anthropic.ClientOption, 0, 1)
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.NewClient(cfg.APIKey, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}

// NewLocalClient returns an openai client for the local endpoint
func NewLocalClient(cfg config.LocalConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout()}
	return openai.NewClientWithConfig(clientCfg)
}

// NewLocalInstructor wraps the local client with an instructor in JSON mode
func NewLocalInstructor(cfg config.LocalConfig) *instructoropenai.Instructor {
	return instructors.FromOpenAI(
		NewLocalClient(cfg),
		instructor.WithMode(instructor.ModeJSON),
		instructor.WithMaxRetries(cfg.MaxRetries),
		instructor.WithValidation(),
	)
}

// NewSummarizer returns the lab report summarizer of the configured local mode
func NewSummarizer(cfg config.LocalConfig, logger *slog.Logger) (labsummary.Summarizer, error) {
	opts := []labsummary.SummarizerOption{
		labsummary.WithModel(cfg.Model),
		labsummary.WithMaxTokens(cfg.MaxTokens),
		labsummary.WithTemperature(cfg.Temperature),
		labsummary.WithSummarizerLogger(logger),
	}
	switch cfg.Mode {
	case config.LocalModePlain, "":
		return labsummary.NewPlainSummarizer(NewLocalClient(cfg), opts...), nil
	case config.LocalModeStructured:
		return labsummary.NewStructuredSummarizer(NewLocalInstructor(cfg), opts...), nil
	}
	return nil, fmt.Errorf("%w: local mode %q", config.ErrUnknownMode, cfg.Mode)
}
