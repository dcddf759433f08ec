package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/grovetools/hooks/command"
	"github.com/grovetools/hooks/errors"
)

// RepoRoot returns the absolute path of the work tree containing dir.
func RepoRoot(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HooksDir returns the absolute path of the repository's hooks directory,
// honoring core.hooksPath and worktree layouts.
func HooksDir(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}

	path := strings.TrimSpace(out)
	if !filepath.IsAbs(path) {
		// --git-path answers relative to the directory the command ran in
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path), nil
}

// runGit executes a git plumbing query in dir and returns its stdout.
func runGit(dir string, args ...string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()

	cmd, err := cmdBuilder.Build(context.Background(), "git", args...)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to build git command")
	}

	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		if _, ok := err.(*exec.Error); ok {
			return "", errors.Wrap(err, errors.ErrCodeGitNotInstalled, "git is not installed or not in PATH")
		}

		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		if strings.Contains(stderr, "not a git repository") {
			return "", errors.NotARepository(dir)
		}
		return "", errors.Wrap(err, errors.ErrCodeInternal, "git "+strings.Join(args, " ")+" failed").
			WithDetail("stderr", strings.TrimSpace(stderr))
	}

	return string(output), nil
}
