package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSortByDateDesc(t *testing.T) {
	docs := []Document{
		{Slug: "old", Date: day(2023, 1, 1)},
		{Slug: "mid", Date: day(2023, 6, 1)},
		{Slug: "new", Date: day(2024, 1, 1)},
	}

	SortByDateDesc(docs)

	assert.Equal(t, "new", docs[0].Slug)
	assert.Equal(t, "mid", docs[1].Slug)
	assert.Equal(t, "old", docs[2].Slug)
}

func TestSortByDateDescTieBreaksBySlug(t *testing.T) {
	docs := []Document{
		{Slug: "b", Date: day(2024, 1, 1)},
		{Slug: "a", Date: day(2024, 1, 1)},
	}

	SortByDateDesc(docs)

	assert.Equal(t, "a", docs[0].Slug)
	assert.Equal(t, "b", docs[1].Slug)
}
