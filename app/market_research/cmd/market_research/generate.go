package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/engine"
	"github.com/iWorld-y/market_research/app/market_research/pkg/export"
	"github.com/iWorld-y/market_research/app/market_research/pkg/logger"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
	"github.com/iWorld-y/market_research/app/market_research/pkg/sms"
	"github.com/iWorld-y/market_research/app/market_research/pkg/storage"
)

type generateFlags struct {
	headless     bool
	topic        string
	category     string
	strategy     string
	length       string
	outDir       string
	useWebSearch bool
	queries      []string
	htmlOut      string
	smsTo        string
}

func generateCMD() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:          "market_research",
		Short:        "Generate multi-section market research reports with OpenAI and Claude",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&f.headless, "headless", false, "run without interactive prompts")
	fl.StringVar(&f.topic, "topic", "", "market topic to research")
	fl.StringVar(&f.category, "category", "Custom", "market category ("+strings.Join(model.Categories, ", ")+")")
	fl.StringVar(&f.strategy, "model", "balanced", "model strategy: balanced, openai or claude")
	fl.StringVar(&f.length, "length", "Standard", "detail level: Concise, Standard or Comprehensive")
	fl.StringVar(&f.outDir, "out-dir", "", "directory for the markdown report (overrides storage config)")
	fl.BoolVarP(&f.useWebSearch, "use-web-search", "w", false, "enrich the report with web search results")
	fl.StringArrayVarP(&f.queries, "query", "q", nil, "additional research question (repeatable)")
	fl.StringVar(&f.htmlOut, "html", "", "also export the report as HTML to this path")
	fl.StringVar(&f.smsTo, "sms-to", "", "send the executive summary by SMS to this number")
	return cmd
}

func runGenerate(cmd *cobra.Command, f generateFlags) error {
	if strings.TrimSpace(f.topic) == "" {
		if !f.headless {
			return errors.New("interactive mode is not supported, use --headless --topic <topic>")
		}
		return errors.New("--topic is required")
	}
	strategy, err := model.ParseModelStrategy(f.strategy)
	if err != nil {
		return err
	}
	level, err := model.ParseDetailLevel(f.length)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if f.outDir != "" {
		cfg.Storage.Driver = "file"
		cfg.Storage.Dir = f.outDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := engine.NewEngine(ctx, cfg)
	if err != nil {
		return err
	}

	req := model.ReportRequest{
		Topic:         f.topic,
		Category:      f.category,
		ModelStrategy: strategy,
		DetailLevel:   level,
		UseWebSearch:  f.useWebSearch,
		CustomQueries: f.queries,
	}
	report, err := eng.Run(ctx, req, engine.RunOptions{
		ProgressCallback: func(status string, progress int) {
			logger.Log.Infof("[%3d%%] %s", progress, status)
		},
	})
	if err != nil {
		return err
	}
	for _, w := range report.Warnings {
		logger.Log.Warn(w)
	}

	location, err := saveReport(ctx, cfg, report)
	if err != nil {
		// 保存失败时把全文输出到 stdout，避免丢失已生成的内容
		fmt.Fprintln(cmd.OutOrStdout(), report.FullText)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved: %s\n", location)

	if f.htmlOut != "" {
		if err := writeHTML(f.htmlOut, report.Title, report.FullText); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "HTML exported: %s\n", f.htmlOut)
	}

	if f.smsTo != "" {
		sid, err := sendSummary(ctx, cfg, f.smsTo, report.Title, report.FullText)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SMS sent: %s\n", sid)
	}
	return nil
}

func saveReport(ctx context.Context, cfg *config.Config, report *model.GeneratedReport) (string, error) {
	store, err := storage.NewStore(ctx, cfg.Storage)
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrPersistence, err)
	}
	defer store.Close()
	return store.Save(ctx, report)
}

func writeHTML(path, title, markdown string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.RenderHTML(f, title, markdown)
}

func sendSummary(ctx context.Context, cfg *config.Config, to, title, content string) (string, error) {
	sender, err := sms.NewTwilioSender(cfg.SMS.Twilio)
	if err != nil {
		return "", err
	}
	return sender.Send(ctx, to, sms.BuildSummary(title, content))
}
