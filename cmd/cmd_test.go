package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/testutil"
)

// execute runs a subcommand under a root carrying the standard persistent
// flags, capturing stdout.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()

	root := cli.NewStandardCommand("grove-hooks", "test root")
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{sub.Name()}, args...))

	err := root.Execute()
	return out.String(), err
}

const validDoc = `
files: '\.py$'
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
      - id: black-check
        name: black (check only)
        args: ["--check"]
`

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hooks.yml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))

	out, err := execute(t, NewValidateCmd(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "2 hooks")
}

func TestValidateCmdRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hooks.yml")
	doc := strings.Replace(validDoc, "args:", "arguments:", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := execute(t, NewValidateCmd(), path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaValidation, errors.GetCode(err))
}

func TestValidateCmdMissingFile(t *testing.T) {
	_, err := execute(t, NewValidateCmd(), filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestListCmdJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hooks.yml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))

	out, err := execute(t, NewListCmd(), "--config", path, "--json")
	require.NoError(t, err)

	var listed listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed.Sources, 1)
	assert.Equal(t, "https://github.com/psf/black", listed.Sources[0].Repo)
	assert.Equal(t, "22.3.0", listed.Sources[0].Rev)
	require.Len(t, listed.Sources[0].Hooks, 2)
	assert.Equal(t, "black", listed.Sources[0].Hooks[0].ID)
	assert.Equal(t, "black (check only)", listed.Sources[0].Hooks[1].Name)
	assert.Equal(t, `\.py$`, listed.Sources[0].Hooks[0].Filter)
}

func TestInstallAndUninstall(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	t.Chdir(dir)

	out, err := execute(t, NewInstallCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "installed")

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	data, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "grove-hooks run")

	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "hook script must be executable")

	// install is idempotent over its own hook
	_, err = execute(t, NewInstallCmd())
	require.NoError(t, err)

	out, err = execute(t, NewUninstallCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
	_, err = os.Stat(hookPath)
	assert.True(t, os.IsNotExist(err))
}

func TestInstallRefusesForeignHook(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	t.Chdir(dir)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho other tool\n"), 0o755))

	_, err := execute(t, NewInstallCmd())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	// --force replaces it
	_, err = execute(t, NewInstallCmd(), "--force")
	require.NoError(t, err)

	// but uninstall still refuses foreign hooks
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho other tool\n"), 0o755))
	_, err = execute(t, NewUninstallCmd())
	require.Error(t, err)
}

func TestInitCmd(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	t.Chdir(dir)

	out, err := execute(t, NewInitCmd())
	require.NoError(t, err)
	assert.Contains(t, out, ".hooks.yml")

	data, err := os.ReadFile(filepath.Join(dir, ".hooks.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "repos:")

	// the starter document must itself validate
	_, err = execute(t, NewValidateCmd(), filepath.Join(dir, ".hooks.yml"))
	require.NoError(t, err)

	_, err = execute(t, NewInitCmd())
	require.Error(t, err, "init must not overwrite an existing config")
}

func TestRunCmdExplicitFiles(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	t.Chdir(dir)

	doc := `
files: '\.py$'
repos:
  - repo: https://example.com/tools
    rev: v1.0.0
    hooks:
      - id: tool-ok
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hooks.yml"), []byte(doc), 0644))

	binDir := filepath.Join(dir, "bin")
	logPath := testutil.WriteHookTool(t, binDir, "tool-ok", 0)
	testutil.PrependPath(t, binDir)

	_, err := execute(t, NewRunCmd(), "--files", "a.py")
	require.NoError(t, err)

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "a.py\n", string(logged))
}

func TestRunCmdFailureExit(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	t.Chdir(dir)

	doc := `
files: '\.py$'
repos:
  - repo: https://example.com/tools
    rev: v1.0.0
    hooks:
      - id: tool-bad
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hooks.yml"), []byte(doc), 0644))

	binDir := filepath.Join(dir, "bin")
	testutil.WriteHookTool(t, binDir, "tool-bad", 1)
	testutil.PrependPath(t, binDir)

	_, err := execute(t, NewRunCmd(), "--files", "a.py")
	assert.ErrorIs(t, err, ErrHookFailure)
}
