package site

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagemill/internal/content"
	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
)

// Individual stage implementations. Each is a thin wrapper so the pipeline
// runner owns timing, classification, and metrics uniformly.

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, dir := range []string{"tags"} {
		if err := os.MkdirAll(filepath.Join(g.stageDir, dir), 0o755); err != nil {
			return newFatalStageError(StagePrepareOutput, buildererrors.IOFailure(dir, err))
		}
	}
	return nil
}

func stageLoadLayouts(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	templates, err := LoadTemplates(g.config.Theme.Dir)
	if err != nil {
		return newFatalStageError(StageLoadLayouts, err)
	}
	g.templates = templates
	return nil
}

// stageDiscoverContent enumerates the content tree, drops drafts unless the
// build includes them, sorts for presentation, and groups documents by tag.
func stageDiscoverContent(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	docs, assets, err := content.NewDiscovery(g.config.Content.Dir).Discover()
	if err != nil {
		return newFatalStageError(StageDiscoverContent, err)
	}

	kept := docs[:0]
	for _, doc := range docs {
		if doc.Draft && !g.includeDrafts {
			bs.Report.Drafts++
			continue
		}
		kept = append(kept, doc)
	}
	content.SortByDateDesc(kept)

	bs.Docs = kept
	bs.Assets = assets
	for _, doc := range kept {
		for _, tag := range doc.Tags {
			bs.Tags[tag] = append(bs.Tags[tag], doc)
		}
	}

	bs.Report.Documents = len(kept)
	bs.Report.TagCount = len(bs.Tags)
	if len(kept) == 0 {
		return newWarnStageError(StageDiscoverContent,
			buildererrors.New(buildererrors.CategoryContent, "no documents found in content directory"))
	}
	return nil
}

func stageRenderPages(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.renderDocuments(bs); err != nil {
		return newFatalStageError(StageRenderPages, err)
	}
	return nil
}

func stageIndexes(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.generateIndexPages(bs); err != nil {
		return newFatalStageError(StageIndexes, err)
	}
	return nil
}

func stageFeed(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.generateFeed(bs); err != nil {
		return newFatalStageError(StageFeed, err)
	}
	return nil
}

func stageCopyAssets(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.copyAssets(bs); err != nil {
		return newFatalStageError(StageCopyAssets, err)
	}
	return nil
}

func stagePostProcess(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.generateSitemap(bs); err != nil {
		return newFatalStageError(StagePostProcess, err)
	}
	return nil
}
