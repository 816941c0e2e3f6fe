// Package gogit provides diffs read in-process with go-git.
package gogit

import (
	"context"
	"fmt"

	"github.com/fwojciec/diffpattern"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time interface verification.
var _ diffpattern.DiffSource = (*Source)(nil)

// Source produces unified diffs from a repository on disk.
type Source struct {
	repo *git.Repository
}

// Open opens the repository at path.
func Open(path string) (*Source, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return &Source{repo: repo}, nil
}

// CommitDiff returns the diff between rev and its first parent. A root
// commit is compared against the empty tree.
func (s *Source) CommitDiff(ctx context.Context, rev string) (string, error) {
	commit, err := s.commit(rev)
	if err != nil {
		return "", err
	}

	to, err := commit.Tree()
	if err != nil {
		return "", fmt.Errorf("getting tree: %w", err)
	}

	from := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return "", fmt.Errorf("getting parent of %s: %w", rev, err)
		}
		if from, err = parent.Tree(); err != nil {
			return "", fmt.Errorf("getting parent tree: %w", err)
		}
	}

	return patch(ctx, from, to)
}

// RangeDiff returns the diff between the trees of from and to.
func (s *Source) RangeDiff(ctx context.Context, from, to string) (string, error) {
	fromTree, err := s.tree(from)
	if err != nil {
		return "", err
	}
	toTree, err := s.tree(to)
	if err != nil {
		return "", err
	}
	return patch(ctx, fromTree, toTree)
}

func (s *Source) commit(rev string) (*object.Commit, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("commit %s not found: %w", rev, err)
	}
	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("getting commit %s: %w", rev, err)
	}
	return commit, nil
}

func (s *Source) tree(rev string) (*object.Tree, error) {
	commit, err := s.commit(rev)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting tree of %s: %w", rev, err)
	}
	return tree, nil
}

func patch(ctx context.Context, from, to *object.Tree) (string, error) {
	p, err := from.PatchContext(ctx, to)
	if err != nil {
		return "", fmt.Errorf("computing diff: %w", err)
	}
	return p.String(), nil
}
