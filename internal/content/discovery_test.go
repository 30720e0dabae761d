package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const validDoc = `---
title: First Post
date: 2024-01-01
tags:
  - go
---

Hello.
`

func TestDiscoverFindsDocumentsAndAssets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "first-post.md", validDoc)
	writeFile(t, root, "notes/second.md", "---\ntitle: Second\ndate: 2023-06-01\n---\nBody.\n")
	writeFile(t, root, "notes/diagram.png", "not-really-a-png")
	writeFile(t, root, ".hidden.md", "ignored")

	docs, assets, err := NewDiscovery(root).Discover()
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "first-post", docs[0].Slug)
	assert.Equal(t, "First Post", docs[0].Title)
	assert.Equal(t, []string{"go"}, docs[0].Tags)
	assert.Equal(t, "second", docs[1].Slug)
	assert.Equal(t, "notes/second.md", filepath.ToSlash(docs[1].RelPath))

	require.Len(t, assets, 1)
	assert.Equal(t, "notes/diagram.png", filepath.ToSlash(assets[0].RelPath))
}

func TestDiscoverIsRestartable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", validDoc)

	d := NewDiscovery(root)
	first, _, err := d.Discover()
	require.NoError(t, err)
	second, _, err := d.Discover()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiscoverFailsFastOnMissingHeader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.md", validDoc)
	writeFile(t, root, "bad.md", "# No frontmatter here\n")

	_, _, err := NewDiscovery(root).Discover()
	require.Error(t, err)
	assert.True(t, buildererrors.IsCategory(err, buildererrors.CategoryContent))
	assert.Contains(t, err.Error(), "bad.md")
}

func TestDiscoverFailsOnUnparsableHeader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad.md", "---\ntitle: [broken\n---\nBody.\n")

	_, _, err := NewDiscovery(root).Discover()
	require.Error(t, err)
	assert.True(t, buildererrors.IsCategory(err, buildererrors.CategoryContent))
	assert.Contains(t, err.Error(), "bad.md")
}

func TestDiscoverRejectsDuplicateSlugs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/post.md", validDoc)
	writeFile(t, root, "b/post.md", "---\ntitle: Other\ndate: 2024-02-02\n---\nBody.\n")

	_, _, err := NewDiscovery(root).Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate slug")
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, _, err := NewDiscovery(filepath.Join(t.TempDir(), "nope")).Discover()
	require.Error(t, err)
	assert.True(t, buildererrors.IsCategory(err, buildererrors.CategoryConfig))
}

func TestSlugOverrideFromFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "whatever.md", "---\ntitle: T\ndate: 2024-01-01\nslug: custom-slug\n---\nBody.\n")

	docs, _, err := NewDiscovery(root).Discover()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "custom-slug", docs[0].Slug)
}

func TestDiscoverRejectsPathEscapingSlug(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sneaky.md", "---\ntitle: T\ndate: 2024-01-01\nslug: \"../leak\"\n---\nBody.\n")

	_, _, err := NewDiscovery(root).Discover()
	require.Error(t, err)
	assert.True(t, buildererrors.IsCategory(err, buildererrors.CategoryContent))
	assert.Contains(t, err.Error(), "sneaky.md")
	assert.Contains(t, err.Error(), "invalid slug")
}
