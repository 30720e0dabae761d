// Package content discovers and parses source documents under a content root.
package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
	"git.home.luguber.info/inful/pagemill/internal/frontmatter"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// Discovery enumerates content files under a root directory. Each call to
// Discover re-walks the tree, so the sequence is restartable and carries no
// state between builds.
type Discovery struct {
	root string
}

// NewDiscovery creates a discovery rooted at the given content directory.
func NewDiscovery(root string) *Discovery {
	return &Discovery{root: root}
}

// Discover walks the content root in filesystem order, parsing every markdown
// file into a Document and collecting other files as Assets. Hidden files and
// directories are skipped.
//
// Fail-fast contract: the first file whose metadata header is missing or
// unparsable aborts discovery with a malformed-document error naming the file.
func (d *Discovery) Discover() ([]Document, []Asset, error) {
	if st, err := os.Stat(d.root); err != nil || !st.IsDir() {
		return nil, nil, buildererrors.New(buildererrors.CategoryConfig, "content dir not found").WithPath(d.root)
	}

	var (
		docs   []Document
		assets []Asset
		slugs  = map[string]string{} // slug -> first rel path claiming it
	)

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return buildererrors.IOFailure(path, err)
		}
		if strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.root, path)
		if err != nil {
			return buildererrors.IOFailure(path, err)
		}

		if !isMarkdownFile(path) {
			assets = append(assets, Asset{SourcePath: path, RelPath: relPath})
			slog.Debug("Discovered asset", logfields.File(relPath))
			return nil
		}

		doc, err := d.parseFile(path, relPath)
		if err != nil {
			return err
		}

		if prev, taken := slugs[doc.Slug]; taken {
			return buildererrors.New(buildererrors.CategoryContent,
				fmt.Sprintf("duplicate slug %q (also used by %s)", doc.Slug, prev)).WithPath(relPath)
		}
		slugs[doc.Slug] = relPath

		docs = append(docs, doc)
		slog.Debug("Discovered document",
			logfields.File(relPath),
			logfields.Slug(doc.Slug),
			slog.Bool("draft", doc.Draft))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Content discovery completed",
		logfields.Count(len(docs)),
		slog.Int("assets", len(assets)))
	return docs, assets, nil
}

// parseFile reads one markdown file and parses its header into a Document.
func (d *Discovery) parseFile(path, relPath string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, buildererrors.IOFailure(path, err)
	}

	header, body, err := frontmatter.Split(raw)
	if err != nil {
		return Document{}, buildererrors.MalformedDocument(relPath, err)
	}

	meta, err := frontmatter.ParseMeta(header)
	if err != nil {
		return Document{}, buildererrors.MalformedDocument(relPath, err)
	}

	return newDocument(meta, body, path, relPath), nil
}

func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}
