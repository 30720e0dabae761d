package site

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagemill/internal/config"
)

func TestFeedListsNewestEntriesFirst(t *testing.T) {
	cfg := testSite(t)
	writeContent(t, cfg, "oldest-post.md", postOld)
	writeContent(t, cfg, "newest-post.md", postNew)

	_, err := New(cfg, cfg.Output.Directory).Build(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.Output.Directory, FeedFileName))
	require.NoError(t, err)

	var feed struct {
		Title   string `xml:"title"`
		Updated string `xml:"updated"`
		Entries []struct {
			Title string `xml:"title"`
			ID    string `xml:"id"`
		} `xml:"entry"`
	}
	require.NoError(t, xml.Unmarshal(raw, &feed))

	assert.Equal(t, "Test Site", feed.Title)
	// Feed timestamp tracks the newest document, not the build clock.
	assert.Equal(t, "2024-01-01T00:00:00Z", feed.Updated)
	require.Len(t, feed.Entries, 2)
	assert.Equal(t, "Newest Post", feed.Entries[0].Title)
	assert.Equal(t, "https://example.org/newest-post/", feed.Entries[0].ID)
	assert.Equal(t, "Oldest Post", feed.Entries[1].Title)
}

func TestFeedHonorsLengthLimit(t *testing.T) {
	cfg := testSite(t)
	cfg.Feed = config.FeedConfig{Length: 1}
	writeContent(t, cfg, "oldest-post.md", postOld)
	writeContent(t, cfg, "newest-post.md", postNew)

	_, err := New(cfg, cfg.Output.Directory).Build(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.Output.Directory, FeedFileName))
	require.NoError(t, err)

	var feed struct {
		Entries []struct {
			Title string `xml:"title"`
		} `xml:"entry"`
	}
	require.NoError(t, xml.Unmarshal(raw, &feed))
	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "Newest Post", feed.Entries[0].Title)
}
