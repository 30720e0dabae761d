// Package publish commits a built site into a git branch and optionally
// pushes it to a remote.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	builderrors "git.home.luguber.info/inful/pagemill/internal/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// TokenEnvVar names the environment variable consulted for remote
// authentication when pushing over HTTP.
const TokenEnvVar = "PAGEMILL_PUBLISH_TOKEN"

// ErrNothingToPublish is returned when the worktree matches the last commit.
var ErrNothingToPublish = errors.New("output identical to last published commit")

// Options control a publish run. Dir must contain the built site.
type Options struct {
	Dir         string
	Branch      string
	Remote      string // remote URL; empty disables pushing
	AuthorName  string
	AuthorEmail string
	Message     string
	Now         func() time.Time // nil means time.Now
}

func (o *Options) defaults() {
	if o.AuthorName == "" {
		o.AuthorName = "pagemill"
	}
	if o.AuthorEmail == "" {
		o.AuthorEmail = "pagemill@localhost"
	}
	if o.Message == "" {
		o.Message = "Publish site"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Run commits the contents of opts.Dir on opts.Branch, creating the
// repository if needed, and pushes when a remote is configured.
func Run(ctx context.Context, opts Options) error {
	opts.defaults()
	if opts.Branch == "" {
		return builderrors.New(builderrors.CategoryPublish, "publish branch not configured")
	}

	repo, err := openOrInit(opts.Dir, opts.Branch)
	if err != nil {
		return err
	}

	hash, err := commitAll(repo, opts)
	if err != nil {
		return err
	}
	slog.Info("Committed site", slog.String("branch", opts.Branch), slog.String("commit", hash.String()[:8]))

	if opts.Remote == "" {
		return nil
	}
	return push(ctx, repo, opts)
}

// openOrInit opens the repository at dir, initializing one pointed at branch
// when none exists. HEAD is switched to branch without touching the worktree,
// since the worktree already holds the files to publish.
func openOrInit(dir, branch string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryPublish, "open output repository")
	}

	target := plumbing.NewBranchReferenceName(branch)
	head, err := repo.Reference(plumbing.HEAD, false)
	if err == nil && head.Target() == target {
		return repo, nil
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, target)); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryPublish, "switch publish branch")
	}
	return repo, nil
}

func commitAll(repo *git.Repository, opts Options) (plumbing.Hash, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, builderrors.Wrap(err, builderrors.CategoryPublish, "open worktree")
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, builderrors.Wrap(err, builderrors.CategoryPublish, "stage site files")
	}

	status, err := wt.Status()
	if err != nil {
		return plumbing.ZeroHash, builderrors.Wrap(err, builderrors.CategoryPublish, "read worktree status")
	}
	if status.IsClean() {
		return plumbing.ZeroHash, ErrNothingToPublish
	}

	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  opts.AuthorName,
			Email: opts.AuthorEmail,
			When:  opts.Now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, builderrors.Wrap(err, builderrors.CategoryPublish, "commit site")
	}
	return hash, nil
}

func push(ctx context.Context, repo *git.Repository, opts Options) error {
	if _, err := repo.Remote(git.DefaultRemoteName); errors.Is(err, git.ErrRemoteNotFound) {
		_, err = repo.CreateRemote(&config.RemoteConfig{
			Name: git.DefaultRemoteName,
			URLs: []string{opts.Remote},
		})
		if err != nil {
			return builderrors.Wrap(err, builderrors.CategoryPublish, "create remote")
		}
	} else if err != nil {
		return builderrors.Wrap(err, builderrors.CategoryPublish, "look up remote")
	}

	refspec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", opts.Branch, opts.Branch))
	pushOpts := &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []config.RefSpec{refspec},
		Auth:       authFromEnv(),
	}

	slog.Info("Pushing site", slog.String("remote", opts.Remote), slog.String("branch", opts.Branch))
	if err := repo.PushContext(ctx, pushOpts); err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			slog.Info("Remote already up to date", slog.String("branch", opts.Branch))
			return nil
		}
		return builderrors.Wrap(err, builderrors.CategoryPublish, "push site").WithPath(opts.Remote)
	}
	slog.Info("Site published", logfields.Output(opts.Remote))
	return nil
}

// authFromEnv builds HTTP token auth when PAGEMILL_PUBLISH_TOKEN is set.
// SSH remotes fall back to go-git's default agent-based auth.
func authFromEnv() transport.AuthMethod {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return nil
	}
	// Most git hosts accept "token" as the username for token auth.
	return &githttp.BasicAuth{Username: "token", Password: token}
}
