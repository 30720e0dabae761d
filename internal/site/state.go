package site

import (
	"git.home.luguber.info/inful/pagemill/internal/content"
)

// BuildState carries mutable state across stages of one build.
type BuildState struct {
	Generator *Generator
	Docs      []content.Document            // date-descending after discovery
	Assets    []content.Asset               // non-markdown files from the content tree
	Tags      map[string][]content.Document // tag -> documents, each slice date-descending
	Report    *BuildReport
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{
		Generator: g,
		Tags:      make(map[string][]content.Document),
		Report:    report,
	}
}
