package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
	"git.home.luguber.info/inful/pagemill/internal/preview"
	"git.home.luguber.info/inful/pagemill/internal/site"
)

// PreviewCmd serves the site locally, rebuilding when sources change.
type PreviewCmd struct {
	Addr    string `short:"a" default:"127.0.0.1:1414" help:"Listen address for the preview server"`
	Drafts  bool   `short:"D" help:"Include draft documents"`
	Metrics bool   `help:"Expose Prometheus metrics at /metrics"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := []site.Option{site.WithDrafts(p.Drafts)}
	var recorder *metrics.PrometheusRecorder
	if p.Metrics {
		recorder = metrics.NewPrometheusRecorder()
		opts = append(opts, site.WithRecorder(recorder))
	}
	generator := site.New(cfg, cfg.Output.Directory, opts...)

	watchDirs := []string{cfg.Content.Dir}
	if cfg.Content.AssetsDir != "" {
		watchDirs = append(watchDirs, cfg.Content.AssetsDir)
	}
	if cfg.Theme.Dir != "" {
		watchDirs = append(watchDirs, cfg.Theme.Dir)
	}

	server := preview.NewServer(p.Addr, cfg.Output.Directory, watchDirs, func(ctx context.Context) error {
		_, err := generator.Build(ctx)
		return err
	})
	if recorder != nil {
		server = server.WithMetricsHandler(recorder.Handler())
	}

	fmt.Printf("Previewing site at http://%s/\n", p.Addr)
	return server.Run(sigctx)
}
