// Package markdown renders Markdown bodies to HTML via Goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer wraps a configured Goldmark engine. It is stateless after
// construction and safe for reuse across documents.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds the engine used for all page bodies: GFM (tables,
// strikethrough, autolinks, task lists), typographic punctuation, and stable
// auto-generated heading IDs. Raw HTML in source documents is passed through;
// content is trusted local input, not user submissions.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts a Markdown body (frontmatter already removed) to HTML.
// Output is deterministic for identical input.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
