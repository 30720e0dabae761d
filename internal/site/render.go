package site

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/pagemill/internal/content"
	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/markdown"
)

// SiteData is the site-wide context visible to every layout.
type SiteData struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
}

// ListItem is one entry on a listing page.
type ListItem struct {
	Title       string
	Date        time.Time
	Permalink   string
	Description string
	Tags        []string
}

// TagLink is one entry on the tag index page.
type TagLink struct {
	Name      string
	Permalink string
	Count     int
}

// PageData is the execution context for a layout. Document pages populate
// Content; listing pages populate Items or TagLinks.
type PageData struct {
	Site        SiteData
	Title       string
	Date        time.Time
	Tags        []string
	Description string
	Permalink   string
	Content     template.HTML
	Items       []ListItem
	TagLinks    []TagLink
}

func (g *Generator) siteData() SiteData {
	return SiteData{
		Title:       g.config.Site.Title,
		Description: g.config.Site.Description,
		Author:      g.config.Site.Author,
		BaseURL:     strings.TrimRight(g.config.Site.BaseURL, "/"),
	}
}

func (g *Generator) permalink(slugPath string) string {
	return strings.TrimRight(g.config.Site.BaseURL, "/") + "/" + slugPath + "/"
}

// renderDocuments renders every document body through its layout and writes
// one page per document at <slug>/index.html inside the staging dir.
func (g *Generator) renderDocuments(bs *BuildState) error {
	sd := g.siteData()
	for _, doc := range bs.Docs {
		layout := doc.Layout
		if layout == "" {
			layout = g.config.Theme.DefaultLayout
		}
		if !g.templates.Has(layout) {
			return buildererrors.MissingTemplate(layout, doc.RelPath)
		}

		body, err := g.markdown.Render(doc.Body)
		if err != nil {
			return buildererrors.Wrap(err, buildererrors.CategoryRender, "render body").WithPath(doc.RelPath)
		}

		description := doc.Description
		if description == "" {
			description = markdown.Summary(body, 160)
		}

		data := PageData{
			Site:        sd,
			Title:       doc.Title,
			Date:        doc.Date,
			Tags:        doc.Tags,
			Description: description,
			Permalink:   g.permalink(doc.Slug),
			Content:     template.HTML(body),
		}

		var buf bytes.Buffer
		if err := g.templates.Render(&buf, layout, data); err != nil {
			return buildererrors.Wrap(err, buildererrors.CategoryTemplate, "execute layout").WithPath(doc.RelPath)
		}

		if err := g.writePage(filepath.Join(doc.Slug, "index.html"), buf.Bytes()); err != nil {
			return err
		}

		bs.Report.RenderedPages++
		slog.Debug("Rendered page",
			logfields.Slug(doc.Slug),
			logfields.Layout(layout),
			logfields.File(doc.RelPath))
	}
	g.recorder.AddPagesRendered(bs.Report.RenderedPages)
	return nil
}

// listItems converts documents (already date-descending) into listing entries.
func (g *Generator) listItems(docs []content.Document) []ListItem {
	items := make([]ListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, ListItem{
			Title:       doc.Title,
			Date:        doc.Date,
			Permalink:   g.permalink(doc.Slug),
			Description: doc.Description,
			Tags:        doc.Tags,
		})
	}
	return items
}

// writePage writes a rendered page below the staging root, creating parents.
func (g *Generator) writePage(rel string, data []byte) error {
	path := filepath.Join(g.stageDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return buildererrors.IOFailure(filepath.Dir(path), err)
	}
	// #nosec G306 -- rendered pages are public content
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return buildererrors.IOFailure(path, err)
	}
	return nil
}
