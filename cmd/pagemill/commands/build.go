package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory for the generated site (overrides config)"`
	BaseURL string `name:"base-url" help:"Base URL for permalinks (overrides config)"`
	Drafts  bool   `short:"D" help:"Include draft documents"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.BaseURL != "" {
		cfg.Site.BaseURL = b.BaseURL
	}

	outputDir := ResolveOutputDir(b.Output, cfg)
	return RunBuild(ctx, cfg, outputDir, b.Drafts)
}

// ResolveOutputDir determines the final output directory.
// Priority: CLI flag > config directory.
func ResolveOutputDir(cliOutput string, cfg *config.Config) string {
	if cliOutput != "" {
		return cliOutput
	}
	return cfg.Output.Directory
}

// RunBuild executes one full build and prints a short summary.
func RunBuild(ctx context.Context, cfg *config.Config, outputDir string, drafts bool) error {
	fmt.Println("Building site")

	generator := site.New(cfg, outputDir, site.WithDrafts(drafts))
	report, err := generator.Build(ctx)
	if err != nil {
		fmt.Println("Build failed")
		return err
	}

	slog.Info("Build finished",
		slog.String("outcome", string(report.Outcome)),
		slog.Int("documents", report.Documents),
		slog.Int("pages", report.RenderedPages),
		slog.Int("assets", report.Assets),
		slog.Duration("duration", report.Duration()))
	fmt.Printf("Built %d documents into %s\n", report.Documents, outputDir)
	return nil
}
