package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagemill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  title: Test Site
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Site", cfg.Site.Title)
	assert.Equal(t, DefaultContentDir, cfg.Content.Dir)
	assert.Equal(t, DefaultAssetsDir, cfg.Content.AssetsDir)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.Equal(t, DefaultLayout, cfg.Theme.DefaultLayout)
	assert.Equal(t, DefaultFeedLength, cfg.Feed.Length)
	assert.Equal(t, DefaultBranch, cfg.Publish.Branch)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("PAGEMILL_TEST_BASEURL", "https://env.example.org")
	path := writeConfig(t, `
site:
  title: Env Site
  base_url: ${PAGEMILL_TEST_BASEURL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.org", cfg.Site.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, buildererrors.IsCategory(err, buildererrors.CategoryConfig))
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := writeConfig(t, "site: [broken\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, buildererrors.IsCategory(err, buildererrors.CategoryConfig))
}

func TestValidateRejectsOverlappingDirs(t *testing.T) {
	path := writeConfig(t, `
content:
  dir: same
output:
  directory: same
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestValidateRejectsMissingThemeDir(t *testing.T) {
	path := writeConfig(t, `
theme:
  dir: /definitely/not/here
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme dir")
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagemill.yaml")

	require.NoError(t, Init(path, false))
	err := Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "My Site", cfg.Site.Title)
}
