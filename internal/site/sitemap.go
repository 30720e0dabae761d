package site

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// SitemapFileName is the sitemap artifact in the output root.
const SitemapFileName = "sitemap.xml"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// generateSitemap lists every page URL. Entries are sorted so output is
// stable regardless of discovery order.
func (g *Generator) generateSitemap(bs *BuildState) error {
	urls := []sitemapURL{
		{Loc: g.siteData().BaseURL + "/"},
		{Loc: g.permalink("tags")},
	}
	for _, doc := range bs.Docs {
		urls = append(urls, sitemapURL{
			Loc:     g.permalink(doc.Slug),
			LastMod: doc.Date.UTC().Format("2006-01-02"),
		})
	}
	for _, tag := range sortedTags(bs.Tags) {
		urls = append(urls, sitemapURL{Loc: g.permalink("tags/" + tag)})
	}
	sort.Slice(urls, func(i, j int) bool { return urls[i].Loc < urls[j].Loc })

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	return g.writePage(SitemapFileName, append([]byte(xml.Header), append(data, '\n')...))
}
