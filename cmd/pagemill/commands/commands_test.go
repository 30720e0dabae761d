package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/frontmatter"
)

func writeTestConfig(t *testing.T) (configPath string, contentDir string) {
	t.Helper()
	dir := t.TempDir()
	contentDir = filepath.Join(dir, "content")
	configPath = filepath.Join(dir, "pagemill.yaml")
	cfg := fmt.Sprintf(`site:
  title: Test Site
  base_url: https://example.org
content:
  dir: %s
output:
  directory: %s
`, contentDir, filepath.Join(dir, "public"))
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return configPath, contentDir
}

func TestNewCmdCreatesDocument(t *testing.T) {
	configPath, contentDir := writeTestConfig(t)

	cmd := NewCmd{Title: "Hello World", Tags: []string{"go"}, Draft: true}
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: configPath}))

	raw, err := os.ReadFile(filepath.Join(contentDir, "hello-world.md"))
	require.NoError(t, err)

	header, body, err := frontmatter.Split(raw)
	require.NoError(t, err)
	meta, err := frontmatter.ParseMeta(header)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", meta.Title)
	assert.Equal(t, []string{"go"}, meta.Tags)
	assert.True(t, meta.Draft)
	assert.NotEmpty(t, body)
}

func TestNewCmdRefusesOverwrite(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	cmd := NewCmd{Title: "Hello World"}
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: configPath}))

	err := cmd.Run(&Global{}, &CLI{Config: configPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cmd.Force = true
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: configPath}))
}

func TestInitCmdScaffoldsSite(t *testing.T) {
	dir := t.TempDir()

	cmd := InitCmd{Output: dir}
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: filepath.Join(dir, "pagemill.yaml")}))

	require.FileExists(t, filepath.Join(dir, "pagemill.yaml"))

	raw, err := os.ReadFile(filepath.Join(dir, "content", "hello-world.md"))
	require.NoError(t, err)
	header, _, err := frontmatter.Split(raw)
	require.NoError(t, err)
	meta, err := frontmatter.ParseMeta(header)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", meta.Title)
}

func TestResolveOutputDir(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.Directory = "./public"

	assert.Equal(t, "./public", ResolveOutputDir("", cfg))
	assert.Equal(t, "/tmp/site", ResolveOutputDir("/tmp/site", cfg))
}
