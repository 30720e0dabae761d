package site

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/pagemill/internal/content"
	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// generateIndexPages writes the chronological home index, one listing page
// per tag, and the tag overview page.
func (g *Generator) generateIndexPages(bs *BuildState) error {
	if err := g.generateHomeIndex(bs); err != nil {
		return err
	}
	if err := g.generateTagPages(bs); err != nil {
		return err
	}
	return g.generateTagOverview(bs)
}

func (g *Generator) generateHomeIndex(bs *BuildState) error {
	data := PageData{
		Site:        g.siteData(),
		Title:       g.config.Site.Title,
		Description: g.config.Site.Description,
		Items:       g.listItems(bs.Docs),
	}

	var buf bytes.Buffer
	if err := g.templates.Render(&buf, g.listLayout(), data); err != nil {
		return buildererrors.Wrap(err, buildererrors.CategoryTemplate, "render home index")
	}
	if err := g.writePage("index.html", buf.Bytes()); err != nil {
		return err
	}
	slog.Debug("Generated home index", logfields.Count(len(bs.Docs)))
	return nil
}

func (g *Generator) generateTagPages(bs *BuildState) error {
	for _, tag := range sortedTags(bs.Tags) {
		docs := bs.Tags[tag]
		data := PageData{
			Site:  g.siteData(),
			Title: "Tag: " + tag,
			Items: g.listItems(docs),
		}

		var buf bytes.Buffer
		if err := g.templates.Render(&buf, g.listLayout(), data); err != nil {
			return buildererrors.Wrap(err, buildererrors.CategoryTemplate, "render tag page").WithPath("tags/" + tag)
		}
		if err := g.writePage(filepath.Join("tags", tag, "index.html"), buf.Bytes()); err != nil {
			return err
		}
		slog.Debug("Generated tag page", logfields.Tag(tag), logfields.Count(len(docs)))
	}
	return nil
}

func (g *Generator) generateTagOverview(bs *BuildState) error {
	tags := sortedTags(bs.Tags)
	links := make([]TagLink, 0, len(tags))
	for _, tag := range tags {
		links = append(links, TagLink{
			Name:      tag,
			Permalink: g.permalink("tags/" + tag),
			Count:     len(bs.Tags[tag]),
		})
	}

	data := PageData{
		Site:     g.siteData(),
		Title:    "Tags",
		TagLinks: links,
	}

	var buf bytes.Buffer
	if err := g.templates.Render(&buf, g.tagsLayout(), data); err != nil {
		return buildererrors.Wrap(err, buildererrors.CategoryTemplate, "render tag overview")
	}
	return g.writePage(filepath.Join("tags", "index.html"), buf.Bytes())
}

// listLayout picks the layout for listing pages, preferring a theme-provided
// "list" and falling back to the default layout when the theme omits one.
func (g *Generator) listLayout() string {
	if g.templates.Has("list") {
		return "list"
	}
	return g.config.Theme.DefaultLayout
}

func (g *Generator) tagsLayout() string {
	if g.templates.Has("tags") {
		return "tags"
	}
	return g.listLayout()
}

func sortedTags(tags map[string][]content.Document) []string {
	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
