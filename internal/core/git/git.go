// Package git shells out to the git binary to produce unified diffs for
// the viewer.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/diffview/pkg/executil"
)

// DiffMode specifies which change set to diff.
type DiffMode int

const (
	// DiffUncommitted diffs all uncommitted changes (working directory + staged).
	DiffUncommitted DiffMode = iota
	// DiffStaged diffs only staged changes.
	DiffStaged
	// DiffBranch diffs HEAD against the merge base with another branch.
	DiffBranch
)

// DiffOptions specifies what to diff.
type DiffOptions struct {
	Mode       DiffMode
	BaseBranch string // required for DiffBranch
}

// Executor produces diffs using the git command-line tool.
type Executor struct {
	gitPath string
	exec    executil.Executor
}

// NewExecutor creates a git executor. An empty gitPath falls back to
// "git" on PATH.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	if gitPath == "" {
		gitPath = "git"
	}
	return &Executor{gitPath: gitPath, exec: exec}
}

// Diff returns the unified diff for the selected mode.
func (e *Executor) Diff(ctx context.Context, dir string, opts DiffOptions) (string, error) {
	var args []string

	switch opts.Mode {
	case DiffUncommitted:
		args = []string{"diff", "HEAD"}

	case DiffStaged:
		args = []string{"diff", "--staged"}

	case DiffBranch:
		if opts.BaseBranch == "" {
			return "", fmt.Errorf("base branch required for branch diff")
		}
		// three-dot notation compares against the merge base
		args = []string{"diff", opts.BaseBranch + "...HEAD"}

	default:
		return "", fmt.Errorf("unknown diff mode: %d", opts.Mode)
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, args...)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}

	return string(out), nil
}

// Root resolves the repository top-level directory. Diff paths are
// relative to it, so revert targets must be too.
func (e *Executor) Root(ctx context.Context, dir string) (string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DescribeDiffMode returns a human-readable description of the diff mode.
func DescribeDiffMode(opts DiffOptions) string {
	switch opts.Mode {
	case DiffUncommitted:
		return "uncommitted changes"
	case DiffStaged:
		return "staged changes"
	case DiffBranch:
		return fmt.Sprintf("changes vs %s", opts.BaseBranch)
	default:
		return "unknown"
	}
}
