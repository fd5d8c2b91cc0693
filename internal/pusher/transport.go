package pusher

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/storage/memory"
)

// gitTransport pushes via go-git against the working tree at path.
type gitTransport struct {
	path string
}

func NewGitTransport(path string) Transport {
	return &gitTransport{path: path}
}

// Push implements Transport.
func (t *gitTransport) Push(ctx context.Context, remote, branch, remoteURL string) error {
	repo, err := git.PlainOpen(t.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	options := &git.PushOptions{
		RemoteName: remote,
		RefSpecs: []gitconfig.RefSpec{
			gitconfig.RefSpec(ref + ":" + ref),
		},
	}
	if remoteURL != "" {
		// In-memory override only; the stored remote config keeps its
		// unauthenticated URL.
		options.RemoteURL = remoteURL
	}

	if err := repo.PushContext(ctx, options); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	return nil
}

// List implements Transport. The ls-remote equivalent: lists refs without
// transferring objects.
func (t *gitTransport) List(ctx context.Context, remote, remoteURL string) error {
	if remoteURL != "" {
		// Anonymous remote; the override URL never touches stored config.
		rem := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
			Name: remote,
			URLs: []string{remoteURL},
		})
		if _, err := rem.ListContext(ctx, &git.ListOptions{}); err != nil {
			return fmt.Errorf("failed to list remote refs: %w", err)
		}

		return nil
	}

	repo, err := git.PlainOpen(t.path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	rem, err := repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("failed to resolve remote %q: %w", remote, err)
	}

	if _, err := rem.ListContext(ctx, &git.ListOptions{}); err != nil {
		return fmt.Errorf("failed to list remote refs: %w", err)
	}

	return nil
}
