package site

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// copyAssets copies page assets discovered inside the content tree (kept at
// their relative paths) and then the static assets directory, both into the
// staging root.
func (g *Generator) copyAssets(bs *BuildState) error {
	for _, asset := range bs.Assets {
		dst := filepath.Join(g.stageDir, asset.RelPath)
		if err := copyFile(asset.SourcePath, dst); err != nil {
			return err
		}
	}
	bs.Report.Assets = len(bs.Assets)

	assetsDir := g.config.Content.AssetsDir
	if assetsDir == "" {
		return nil
	}
	if st, err := os.Stat(assetsDir); err != nil || !st.IsDir() {
		// A missing static dir is common for small sites; not an error.
		slog.Debug("No static assets directory", logfields.Path(assetsDir))
		return nil
	}

	copied := 0
	err := filepath.WalkDir(assetsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return buildererrors.IOFailure(path, err)
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(assetsDir, path)
		if err != nil {
			return buildererrors.IOFailure(path, err)
		}
		if err := copyFile(path, filepath.Join(g.stageDir, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return err
	}
	bs.Report.Assets += copied
	slog.Debug("Copied static assets", logfields.Count(copied))
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return buildererrors.IOFailure(filepath.Dir(dst), err)
	}
	in, err := os.Open(src)
	if err != nil {
		return buildererrors.IOFailure(src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return buildererrors.IOFailure(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return buildererrors.IOFailure(dst, err)
	}
	if err := out.Close(); err != nil {
		return buildererrors.IOFailure(dst, err)
	}
	return nil
}
