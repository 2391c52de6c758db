package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffview/internal/core/blocks"
	"github.com/colonyops/diffview/internal/core/diffmodel"
	"github.com/colonyops/diffview/internal/core/git"
	"github.com/colonyops/diffview/internal/data/stores"
	"github.com/colonyops/diffview/internal/tui/diffview"
	"github.com/colonyops/diffview/pkg/executil"
)

type ViewCmd struct {
	flags       *Flags
	patchFile   string
	repoRoot    string
	layout      string
	copyCommand string
	noRevert    bool
	useGit      bool
	staged      bool
	baseBranch  string
}

// NewViewCmd creates a new view command.
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Register adds the view command to the application.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "view",
		Usage: "Review a unified diff interactively",
		Description: `View opens an interactive TUI for a patch in unified diff format.

The patch is read from a file, from stdin, or produced by git directly:

  git diff | diffview view
  diffview view -f changes.patch
  diffview view --git              # uncommitted changes
  diffview view --staged           # staged changes only
  diffview view --base main        # changes vs merge base with main

Comments are persisted per file path and survive restarts. Press 'f'
to finalize: the collected feedback is copied to the clipboard (or
saved to a file when no clipboard command is available).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "read the patch from a file instead of stdin",
				Destination: &cmd.patchFile,
			},
			&cli.StringFlag{
				Name:        "repo-root",
				Usage:       "directory diff paths are relative to (for revert)",
				Value:       ".",
				Destination: &cmd.repoRoot,
			},
			&cli.StringFlag{
				Name:        "layout",
				Usage:       "initial layout (split, unified); overrides config",
				Destination: &cmd.layout,
			},
			&cli.StringFlag{
				Name:        "copy-command",
				Usage:       "shell command receiving finalized feedback on stdin",
				Sources:     cli.EnvVars("DIFFVIEW_COPY_COMMAND"),
				Destination: &cmd.copyCommand,
			},
			&cli.BoolFlag{
				Name:        "no-revert",
				Usage:       "disable the per-block revert action",
				Destination: &cmd.noRevert,
			},
			&cli.BoolFlag{
				Name:        "git",
				Usage:       "diff uncommitted changes via the git binary",
				Destination: &cmd.useGit,
			},
			&cli.BoolFlag{
				Name:        "staged",
				Usage:       "diff staged changes only (implies --git)",
				Destination: &cmd.staged,
			},
			&cli.StringFlag{
				Name:        "base",
				Usage:       "diff against the merge base with this branch (implies --git)",
				Destination: &cmd.baseBranch,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	files, err := cmd.readPatch(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, "No text changes in patch.")
		return nil
	}

	cfg := cmd.flags.Config
	if cmd.layout != "" {
		cfg.Layout = cmd.layout
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	store := stores.NewCommentStore(cfg.CommentStorePath())

	opts := diffview.ModelOptions{
		View: diffview.Options{
			Files:  files,
			Config: cfg,
			Store:  store,
		},
		CopyCommand: cmd.resolveCopyCommand(),
	}
	if !cmd.noRevert {
		root := cmd.repoRoot
		opts.View.RevertFile = func(filePath string, instr blocks.RevertInstruction) error {
			return spliceFile(filepath.Join(root, filepath.FromSlash(filePath)), instr)
		}
	}

	return diffview.Run(opts)
}

// readPatch parses the unified diff from the configured source. Binary
// files are skipped by the parser.
func (cmd *ViewCmd) readPatch(ctx context.Context) ([]*diffmodel.FileDiff, error) {
	if cmd.gitMode() {
		return cmd.readGitDiff(ctx)
	}

	var r io.Reader = os.Stdin
	if cmd.patchFile != "" {
		f, err := os.Open(cmd.patchFile)
		if err != nil {
			return nil, fmt.Errorf("open patch: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	files, err := diffmodel.ParsePatch(r)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}
	return files, nil
}

func (cmd *ViewCmd) gitMode() bool {
	return cmd.useGit || cmd.staged || cmd.baseBranch != ""
}

// readGitDiff shells out to git for the patch and re-anchors the repo
// root so revert targets resolve against the repository top level.
func (cmd *ViewCmd) readGitDiff(ctx context.Context) ([]*diffmodel.FileDiff, error) {
	exec := git.NewExecutor("", &executil.RealExecutor{})

	opts := git.DiffOptions{Mode: git.DiffUncommitted}
	switch {
	case cmd.baseBranch != "":
		opts = git.DiffOptions{Mode: git.DiffBranch, BaseBranch: cmd.baseBranch}
	case cmd.staged:
		opts = git.DiffOptions{Mode: git.DiffStaged}
	}

	patch, err := exec.Diff(ctx, cmd.repoRoot, opts)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", git.DescribeDiffMode(opts), err)
	}

	if root, err := exec.Root(ctx, cmd.repoRoot); err == nil && root != "" {
		cmd.repoRoot = root
	}

	files, err := diffmodel.ParsePatch(strings.NewReader(patch))
	if err != nil {
		return nil, fmt.Errorf("parse git diff: %w", err)
	}
	return files, nil
}

// resolveCopyCommand prefers the explicit flag, falling back to the
// platform clipboard tool.
func (cmd *ViewCmd) resolveCopyCommand() string {
	if cmd.copyCommand != "" {
		return cmd.copyCommand
	}
	if runtime.GOOS == "darwin" {
		return "pbcopy"
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wl-copy"
	}
	return "xclip -selection clipboard"
}

// spliceFile applies a revert instruction to a file on disk: starting at
// NewFileLineStart, remove NewFileLineCountToRemove lines and insert the
// original lines in their place. The write goes through a temp file in
// the same directory so a crash never leaves a half-written target.
func spliceFile(path string, instr blocks.RevertInstruction) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read target: %w", err)
	}

	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")
	if trailingNewline {
		content = strings.TrimSuffix(content, "\n")
	}

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}

	start := instr.NewFileLineStart - 1
	end := start + instr.NewFileLineCountToRemove
	if start < 0 || end > len(lines) {
		return fmt.Errorf("revert range %d..%d out of bounds for %d lines", instr.NewFileLineStart, end, len(lines))
	}

	out := make([]string, 0, len(lines)-instr.NewFileLineCountToRemove+len(instr.OriginalLinesToInsert))
	out = append(out, lines[:start]...)
	out = append(out, instr.OriginalLinesToInsert...)
	out = append(out, lines[end:]...)

	result := strings.Join(out, "\n")
	if trailingNewline && result != "" {
		result += "\n"
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(result), mode); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace target: %w", err)
	}

	return nil
}
