// Package git provides diffs by shelling out to the git binary.
package git

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var _ diffpattern.DiffSource = (*Runner)(nil)

// Runner executes git commands via shell against one repository.
type Runner struct {
	// RepoPath is passed to git with -C.
	RepoPath string
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
}

// NewRunner creates a git runner for the repository at repoPath.
func NewRunner(repoPath string) *Runner {
	return &Runner{RepoPath: repoPath}
}

// CommitDiff returns the diff introduced by rev. Root commits are diffed
// against the empty tree.
func (r *Runner) CommitDiff(ctx context.Context, rev string) (string, error) {
	return r.run(ctx, "show", "show", "--format=", "--no-color", "--first-parent", rev)
}

// RangeDiff returns the diff between the trees of from and to.
func (r *Runner) RangeDiff(ctx context.Context, from, to string) (string, error) {
	return r.run(ctx, "diff", "diff", "--no-color", from, to)
}

func (r *Runner) run(ctx context.Context, name string, args ...string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}
	args = append([]string{"-C", r.RepoPath}, args...)
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s failed: %s", name, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("git %s failed: %w", name, err)
	}
	return string(output), nil
}
