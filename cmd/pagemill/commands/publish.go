package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/publish"
)

// PublishCmd builds the site and commits the output to the publish branch.
type PublishCmd struct {
	Message string `short:"m" help:"Commit message" default:"Publish site"`
	NoBuild bool   `help:"Commit the existing output without rebuilding"`
	NoPush  bool   `help:"Commit locally without pushing to the remote"`
}

func (p *PublishCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !p.NoBuild {
		if err := RunBuild(ctx, cfg, cfg.Output.Directory, false); err != nil {
			return err
		}
	}

	remote := cfg.Publish.Remote
	if p.NoPush {
		remote = ""
	}
	err = publish.Run(ctx, publish.Options{
		Dir:         cfg.Output.Directory,
		Branch:      cfg.Publish.Branch,
		Remote:      remote,
		AuthorName:  cfg.Publish.AuthorName,
		AuthorEmail: cfg.Publish.AuthorEmail,
		Message:     p.Message,
	})
	if errors.Is(err, publish.ErrNothingToPublish) {
		fmt.Println("Nothing to publish, output unchanged")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Published successfully")
	return nil
}
