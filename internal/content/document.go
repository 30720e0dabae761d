package content

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/pagemill/internal/frontmatter"
	"git.home.luguber.info/inful/pagemill/internal/slug"
)

// Document is one source content file: a metadata header plus a Markdown body.
// Immutable once read; the builder never writes back to the source tree.
type Document struct {
	Slug        string    // URL path segment, unique per document
	Title       string
	Date        time.Time
	Tags        []string
	Description string
	Layout      string // layout template name; empty means the configured default
	Draft       bool
	Body        []byte // raw Markdown, frontmatter removed
	SourcePath  string // absolute path of the source file
	RelPath     string // path relative to the content root
}

// Asset is a non-markdown file found inside the content tree (images and the
// like), copied through to the output at the same relative path.
type Asset struct {
	SourcePath string
	RelPath    string
}

// newDocument builds a Document from parsed metadata. The slug comes from the
// frontmatter override when present, otherwise from the file name.
func newDocument(meta frontmatter.Meta, body []byte, sourcePath, relPath string) Document {
	s := meta.Slug
	if s == "" {
		base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
		s = slug.Make(base)
	}
	return Document{
		Slug:        s,
		Title:       meta.Title,
		Date:        meta.Date,
		Tags:        meta.Tags,
		Description: meta.Description,
		Layout:      meta.Layout,
		Draft:       meta.Draft,
		Body:        body,
		SourcePath:  sourcePath,
		RelPath:     relPath,
	}
}

// SortByDateDesc orders documents newest first for listing purposes, breaking
// date ties by slug so listings are deterministic.
func SortByDateDesc(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].Date.Equal(docs[j].Date) {
			return docs[i].Date.After(docs[j].Date)
		}
		return docs[i].Slug < docs[j].Slug
	})
}
