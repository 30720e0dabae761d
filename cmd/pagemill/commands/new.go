package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/frontmatter"
	"git.home.luguber.info/inful/pagemill/internal/slug"
)

// NewCmd scaffolds a content document with populated front matter.
type NewCmd struct {
	Title  string   `arg:"" help:"Document title"`
	Layout string   `help:"Layout to render the document with (defaults to the configured default)"`
	Tags   []string `short:"t" help:"Tags to pre-fill"`
	Draft  bool     `help:"Mark the document as a draft"`
	Force  bool     `help:"Overwrite an existing file"`
}

// newDocHeader is the front matter written by 'pagemill new'. Field order is
// fixed so generated files look hand-written.
type newDocHeader struct {
	Title  string   `yaml:"title"`
	Date   string   `yaml:"date"`
	Layout string   `yaml:"layout,omitempty"`
	Tags   []string `yaml:"tags,omitempty"`
	Draft  bool     `yaml:"draft,omitempty"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	name := slug.Make(n.Title)
	path := filepath.Join(cfg.Content.Dir, name+".md")
	if _, err := os.Stat(path); err == nil && !n.Force {
		return fmt.Errorf("document already exists: %s (use --force to overwrite)", path)
	}

	header, err := yaml.Marshal(newDocHeader{
		Title:  n.Title,
		Date:   time.Now().UTC().Format(time.RFC3339),
		Layout: n.Layout,
		Tags:   n.Tags,
		Draft:  n.Draft,
	})
	if err != nil {
		return fmt.Errorf("marshal front matter: %w", err)
	}

	body := "Write something about " + strings.TrimSpace(n.Title) + " here.\n"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create content directory: %w", err)
	}
	// #nosec G306 -- site content is not sensitive
	if err := os.WriteFile(path, frontmatter.Join(header, []byte(body)), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	return nil
}
