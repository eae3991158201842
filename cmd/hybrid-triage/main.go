// Command hybrid-triage runs the symptom checker on one case: the cloud agent triages
// the case while lab reports are summarized by a model running on this machine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bububa/hybrid-triage/components/document"
	"github.com/bububa/hybrid-triage/config"
	"github.com/bububa/hybrid-triage/providers"
	"github.com/bububa/hybrid-triage/tools"
	"github.com/bububa/hybrid-triage/triage"
)

const header = "\n=== Symptom Checker (Hybrid: Local Tool + Cloud Agent) ===\n"

func main() {
	level := new(slog.LevelVar)
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, level)
	stop()
	if err != nil {
		logger.Error("hybrid triage failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, level *slog.LevelVar) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level.Set(cfg.Log.SlogLevel())
	if err := cfg.Validate(); err != nil {
		return err
	}
	req, err := loadCase(ctx, cfg.Case)
	if err != nil {
		return err
	}
	cloud, err := providers.NewCloudClient(cfg.Cloud)
	if err != nil {
		return err
	}
	summarizer, err := providers.NewSummarizer(cfg.Local, slog.Default())
	if err != nil {
		return err
	}
	submitter, err := triage.NewSubmitter(cloud, summarizer,
		triage.WithModel(cfg.Cloud.Model),
		triage.WithTemperature(cfg.Cloud.Temperature),
		triage.WithMaxTokens(cfg.Cloud.MaxTokens),
		triage.WithMaxSteps(cfg.Cloud.MaxSteps),
		triage.WithReportMode(cfg.Privacy.ReportMode),
		triage.WithLeakRunLength(cfg.Privacy.LeakRunLength),
		triage.WithToolOptions(toolHooks(out, cfg.Local.BaseURL)...),
	)
	if err != nil {
		return err
	}
	res, err := submitter.Submit(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprint(out, header, "\n")
	fmt.Fprintln(out, res.Guidance)
	return nil
}

// loadCase returns the configured case, the demo case when nothing is configured
func loadCase(ctx context.Context, cfg config.CaseConfig) (triage.CaseRequest, error) {
	if cfg.Narrative == "" && cfg.ReportFile == "" {
		return triage.DemoCase(), nil
	}
	req := triage.CaseRequest{Narrative: cfg.Narrative}
	if req.Narrative == "" {
		req.Narrative = triage.DemoNarrative
	}
	if cfg.ReportFile != "" {
		doc, err := document.Load(ctx, cfg.ReportFile)
		if err != nil {
			return req, fmt.Errorf("load lab report: %w", err)
		}
		req.LabReport = doc.Text
	}
	return req, nil
}

// toolHooks print the local tool progress
func toolHooks(out io.Writer, baseURL string) []tools.Option {
	return []tools.Option{
		tools.WithStartHook(func(context.Context, tools.AnonymousTool, any) {
			fmt.Fprintf(out, "[LOCAL TOOL] POST %s/chat/completions\n", baseURL)
		}),
		tools.WithEndHook(func(_ context.Context, _ tools.AnonymousTool, _ any, output any) {
			bs, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return
			}
			fmt.Fprintln(out, "[LOCAL TOOL] Parsed lab summary JSON:")
			fmt.Fprintln(out, string(bs))
		}),
		tools.WithErrorHook(func(_ context.Context, t tools.AnonymousTool, _ any, err error) {
			fmt.Fprintf(out, "[LOCAL TOOL] %s failed: %v\n", t.Title(), err)
		}),
	}
}
