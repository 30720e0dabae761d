// Package site turns discovered content into a published static site.
//
// The build is a linear stage pipeline writing into a staging directory that
// is atomically promoted on success. Any fatal stage error aborts the build
// and leaves the previously published output untouched.
package site

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/markdown"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
)

// Generator orchestrates site generation.
type Generator struct {
	config        *config.Config
	outputDir     string
	stageDir      string // ephemeral staging dir for the current build
	markdown      *markdown.Renderer
	templates     *Templates
	recorder      metrics.Recorder
	includeDrafts bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder injects a metrics recorder (defaults to NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithDrafts includes draft documents in the build.
func WithDrafts(include bool) Option {
	return func(g *Generator) { g.includeDrafts = include }
}

// New creates a site generator writing to outputDir.
func New(cfg *config.Config, outputDir string, opts ...Option) *Generator {
	g := &Generator{
		config:    cfg,
		outputDir: outputDir,
		markdown:  markdown.NewRenderer(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OutputDir returns the final output directory.
func (g *Generator) OutputDir() string { return g.outputDir }

// Build runs the full pipeline and returns the build report. The report is
// returned alongside the error on failure so callers can inspect stage
// outcomes either way.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	slog.Info("Starting site build",
		logfields.Output(g.outputDir),
		slog.String("content", g.config.Content.Dir))

	report := newBuildReport()
	if err := g.beginStaging(); err != nil {
		report.Outcome = OutcomeFailed
		report.finish()
		g.recordBuild(report)
		return report, err
	}

	bs := newBuildState(g, report)

	stages := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageLoadLayouts, stageLoadLayouts).
		Add(StageDiscoverContent, stageDiscoverContent).
		Add(StageRenderPages, stageRenderPages).
		Add(StageIndexes, stageIndexes).
		Add(StageFeed, stageFeed).
		Add(StageCopyAssets, stageCopyAssets).
		Add(StagePostProcess, stagePostProcess).
		Build()

	if err := runStages(ctx, bs, stages); err != nil {
		g.abortStaging()
		report.deriveOutcome()
		report.finish()
		g.recordBuild(report)
		return report, err
	}

	report.deriveOutcome()
	report.finish()
	if err := g.finalizeStaging(); err != nil {
		report.Outcome = OutcomeFailed
		g.recordBuild(report)
		return report, err
	}

	// Persist the report inside the promoted output (best effort).
	if err := report.Persist(g.outputDir); err != nil {
		slog.Warn("Failed to persist build report", "error", err)
	}
	g.recordBuild(report)

	slog.Info("Site build completed",
		logfields.Output(g.outputDir),
		slog.Int("documents", report.Documents),
		slog.Int("pages", report.RenderedPages),
		slog.Int("tags", report.TagCount),
		slog.String("outcome", string(report.Outcome)))
	return report, nil
}

func (g *Generator) recordBuild(report *BuildReport) {
	g.recorder.ObserveBuildDuration(report.Duration())
	g.recorder.IncBuildOutcome(string(report.Outcome))
}
