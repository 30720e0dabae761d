package site

import (
	"encoding/xml"
	"fmt"
	"time"

	"git.home.luguber.info/inful/pagemill/internal/markdown"
)

// FeedFileName is the Atom feed artifact in the output root.
const FeedFileName = "feed.xml"

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Links   []atomLink  `xml:"link"`
	Author  *atomAuthor `xml:"author,omitempty"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title   string     `xml:"title"`
	ID      string     `xml:"id"`
	Updated string     `xml:"updated"`
	Links   []atomLink `xml:"link"`
	Summary string     `xml:"summary,omitempty"`
}

// generateFeed writes an Atom feed of the newest documents. The feed's
// updated timestamp is the newest document date rather than the build time,
// so identical inputs produce byte-identical output.
func (g *Generator) generateFeed(bs *BuildState) error {
	limit := g.config.Feed.Length
	docs := bs.Docs
	if len(docs) > limit {
		docs = docs[:limit]
	}

	updated := time.Time{}
	if len(docs) > 0 {
		updated = docs[0].Date // docs are date-descending
	}

	feed := atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   g.config.Site.Title,
		ID:      g.siteData().BaseURL + "/",
		Updated: updated.UTC().Format(time.RFC3339),
		Links: []atomLink{
			{Href: g.siteData().BaseURL + "/" + FeedFileName, Rel: "self", Type: "application/atom+xml"},
			{Href: g.siteData().BaseURL + "/"},
		},
	}
	if g.config.Site.Author != "" {
		feed.Author = &atomAuthor{Name: g.config.Site.Author}
	}

	for _, doc := range docs {
		summary := doc.Description
		if summary == "" {
			if body, err := g.markdown.Render(doc.Body); err == nil {
				summary = markdown.Summary(body, 200)
			}
		}
		permalink := g.permalink(doc.Slug)
		feed.Entries = append(feed.Entries, atomEntry{
			Title:   doc.Title,
			ID:      permalink,
			Updated: doc.Date.UTC().Format(time.RFC3339),
			Links:   []atomLink{{Href: permalink}},
			Summary: summary,
		})
	}

	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}
	return g.writePage(FeedFileName, append([]byte(xml.Header), append(data, '\n')...))
}
