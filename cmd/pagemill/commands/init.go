package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/pagemill/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to place the generated config file in"`
}

const starterPost = `---
title: Hello World
date: %s
tags: [meta]
---
Welcome to your new site. Edit this file or add more documents next to it,
then run ` + "`pagemill build`" + `.
`

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	configPath := root.Config
	baseDir := "."
	if i.Output != "" {
		baseDir = i.Output
		configPath = filepath.Join(i.Output, "pagemill.yaml")
	}

	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, i.Force); err != nil {
		return err
	}
	if err := writeStarterContent(filepath.Join(baseDir, config.DefaultContentDir)); err != nil {
		return err
	}
	fmt.Println("initialized successfully")
	return nil
}

// writeStarterContent seeds the content tree with one example document so a
// fresh site builds something. Existing files are never touched.
func writeStarterContent(contentDir string) error {
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return fmt.Errorf("create content directory: %w", err)
	}
	path := filepath.Join(contentDir, "hello-world.md")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	doc := fmt.Sprintf(starterPost, time.Now().UTC().Format("2006-01-02"))
	// #nosec G306 -- site content is not sensitive
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write starter document: %w", err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
