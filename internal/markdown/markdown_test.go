package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasic(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("# Heading\n\nSome *emphasis*.\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1 id=\"heading\">Heading</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}

func TestRenderDeterministic(t *testing.T) {
	r := NewRenderer()
	body := []byte("# Title\n\n- one\n- two\n\n`code` and [link](https://example.org).\n")

	first, err := r.Render(body)
	require.NoError(t, err)
	second, err := r.Render(body)
	require.NoError(t, err)

	// Rendering the same body twice yields byte-identical output.
	assert.Equal(t, first, second)

	// A fresh renderer must agree as well.
	third, err := NewRenderer().Render(body)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}
