package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builderrors "git.home.luguber.info/inful/pagemill/internal/errors"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func writeSite(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

func TestRunInitializesRepoAndCommits(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, map[string]string{
		"index.html":            "<h1>home</h1>",
		"first-post/index.html": "<h1>first</h1>",
	})

	err := Run(context.Background(), Options{
		Dir:    dir,
		Branch: "gh-pages",
		Now:    fixedClock,
	})
	require.NoError(t, err)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("gh-pages"), head.Name())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Publish site", commit.Message)
	assert.Equal(t, "pagemill", commit.Author.Name)

	tree, err := commit.Tree()
	require.NoError(t, err)
	_, err = tree.File("first-post/index.html")
	assert.NoError(t, err)
}

func TestRunSkipsCommitWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, map[string]string{"index.html": "<h1>home</h1>"})

	opts := Options{Dir: dir, Branch: "gh-pages", Now: fixedClock}
	require.NoError(t, Run(context.Background(), opts))

	err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNothingToPublish))
}

func TestRunCommitsChangesOnExistingRepo(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, map[string]string{"index.html": "v1"})

	opts := Options{Dir: dir, Branch: "gh-pages", Now: fixedClock, Message: "Publish v1"}
	require.NoError(t, Run(context.Background(), opts))

	writeSite(t, dir, map[string]string{"index.html": "v2"})
	opts.Message = "Publish v2"
	require.NoError(t, Run(context.Background(), opts))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Publish v2", commit.Message)
	require.Equal(t, 1, commit.NumParents())
}

func TestRunRequiresBranch(t *testing.T) {
	err := Run(context.Background(), Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, builderrors.IsCategory(err, builderrors.CategoryPublish))
}

func TestAuthFromEnv(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	assert.Nil(t, authFromEnv())

	t.Setenv(TokenEnvVar, "s3cret")
	auth := authFromEnv()
	require.NotNil(t, auth)
}
