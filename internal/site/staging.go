package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// The build writes into an isolated staging directory and promotes it over
// the previous output only after every stage succeeded. A failed build never
// publishes partial output; removing a source file removes its page because
// the whole directory is replaced.

// beginStaging creates the staging directory as a sibling of the output dir.
func (g *Generator) beginStaging() error {
	stage := g.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging dir: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	g.stageDir = stage
	slog.Debug("Initialized staging directory", "staging", stage, "final", g.outputDir)
	return nil
}

// finalizeStaging atomically promotes the staging directory:
//  1. Move the existing output (if any) to <output>.prev.
//  2. Rename staging -> output.
//  3. Remove the backup.
func (g *Generator) finalizeStaging() error {
	if g.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}

	prev := g.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove stale backup: %w", err)
	}
	if _, err := os.Stat(g.outputDir); err == nil {
		if err := os.Rename(g.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(g.stageDir, g.outputDir); err != nil {
		// Try to restore the previous output so a failed promote is not worse
		// than a failed build.
		if _, statErr := os.Stat(prev); statErr == nil {
			_ = os.Rename(prev, g.outputDir)
		}
		return fmt.Errorf("promote staging: %w", err)
	}
	g.stageDir = ""

	// Carry the publish repository across promotes; the staged tree never
	// contains one.
	prevGit := filepath.Join(prev, ".git")
	if _, err := os.Stat(prevGit); err == nil {
		if err := os.Rename(prevGit, filepath.Join(g.outputDir, ".git")); err != nil {
			slog.Warn("Failed to carry over publish repository", logfields.Path(prevGit), "error", err)
		}
	}
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous output backup", logfields.Path(prev), "error", err)
	}
	slog.Info("Promoted staging directory", logfields.Output(g.outputDir))
	return nil
}

// abortStaging removes the staging directory after a failed build so no
// orphaned temp dirs accumulate. The previous output stays untouched.
func (g *Generator) abortStaging() {
	if g.stageDir == "" {
		return
	}
	dir := g.stageDir
	g.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory", logfields.Path(dir), "error", err)
	}
}
