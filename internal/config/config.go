// Package config loads and validates the pagemill.yaml site configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Theme   ThemeConfig   `yaml:"theme"`
	Output  OutputConfig  `yaml:"output"`
	Feed    FeedConfig    `yaml:"feed"`
	Publish PublishConfig `yaml:"publish"`
}

// SiteConfig holds site-wide presentation metadata.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// ContentConfig locates the source content tree.
type ContentConfig struct {
	Dir       string `yaml:"dir"`
	AssetsDir string `yaml:"assets_dir,omitempty"` // copied verbatim into the output root
}

// ThemeConfig locates layout templates. When Dir is empty the embedded
// default layouts are used.
type ThemeConfig struct {
	Dir           string `yaml:"dir,omitempty"`
	DefaultLayout string `yaml:"default_layout,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// FeedConfig controls the Atom feed.
type FeedConfig struct {
	Length int `yaml:"length,omitempty"` // newest N documents; 0 uses the default
}

// PublishConfig describes where `pagemill publish` commits the built site.
type PublishConfig struct {
	Remote      string `yaml:"remote,omitempty"`
	Branch      string `yaml:"branch,omitempty"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
}

// Defaults applied after unmarshal.
const (
	DefaultContentDir = "content"
	DefaultAssetsDir  = "static"
	DefaultOutputDir  = "./public"
	DefaultLayout     = "post"
	DefaultFeedLength = 20
	DefaultBranch     = "gh-pages"
)

// Load loads configuration from the specified file. A .env file alongside the
// working directory is loaded first and ${VAR} references in the YAML are
// expanded, so tokens never need to live in the config file itself.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, buildererrors.New(buildererrors.CategoryConfig, "configuration file not found").WithPath(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, buildererrors.Wrap(err, buildererrors.CategoryConfig, "read config file").WithPath(configPath)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, buildererrors.Wrap(err, buildererrors.CategoryConfig, "unmarshal config").WithPath(configPath)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "A Pagemill Site"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContentDir
	}
	if c.Content.AssetsDir == "" {
		c.Content.AssetsDir = DefaultAssetsDir
	}
	if c.Theme.DefaultLayout == "" {
		c.Theme.DefaultLayout = DefaultLayout
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Feed.Length <= 0 {
		c.Feed.Length = DefaultFeedLength
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = DefaultBranch
	}
}

// Validate checks invariants that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Content.Dir == c.Output.Directory {
		return buildererrors.New(buildererrors.CategoryConfig,
			fmt.Sprintf("content dir and output dir must differ (both %q)", c.Content.Dir))
	}
	if c.Theme.Dir != "" {
		if st, err := os.Stat(c.Theme.Dir); err != nil || !st.IsDir() {
			return buildererrors.New(buildererrors.CategoryConfig, "theme dir not found").WithPath(c.Theme.Dir)
		}
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			Title:       "My Site",
			Description: "Notes and articles",
			Author:      "Author Name",
			BaseURL:     "https://example.org",
		},
		Content: ContentConfig{Dir: DefaultContentDir, AssetsDir: DefaultAssetsDir},
		Output:  OutputConfig{Directory: DefaultOutputDir},
		Feed:    FeedConfig{Length: DefaultFeedLength},
		Publish: PublishConfig{
			Branch:      DefaultBranch,
			AuthorName:  "Author Name",
			AuthorEmail: "author@example.org",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}

	// #nosec G306 -- site configuration is not sensitive
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
