package run

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileRegistry(t *testing.T, doc string) *config.Registry {
	t.Helper()

	cfg, err := config.LoadFromBytes([]byte(doc))
	require.NoError(t, err)
	reg, err := cfg.Compile()
	require.NoError(t, err)
	return reg
}

const threeHooksDoc = `
files: \.py$
repos:
  - repo: https://example.com/fmt
    rev: v1.0.0
    hooks:
      - id: hook-a
        args: ["--check"]
      - id: hook-b
  - repo: https://example.com/lint
    rev: v2.0.0
    hooks:
      - id: hook-c
        files: ^never-matches-anything$
`

func TestDispatchEmptyPathSet(t *testing.T) {
	reg := compileRegistry(t, threeHooksDoc)

	results, err := Dispatch(context.Background(), reg, nil, Options{})
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, StatusSkipped, r.Status)
	}
	assert.False(t, results.Failed(), "empty path set must yield overall success")
}

func TestDispatchDeclarationOrder(t *testing.T) {
	binDir := t.TempDir()
	testutil.WriteHookTool(t, binDir, "hook-a", 0)
	testutil.WriteHookTool(t, binDir, "hook-b", 1)
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, threeHooksDoc)

	results, err := Dispatch(context.Background(), reg, []string{"pkg/code.py"}, Options{})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "hook-a", results[0].HookID)
	assert.Equal(t, "hook-b", results[1].HookID)
	assert.Equal(t, "hook-c", results[2].HookID)

	assert.Equal(t, StatusPassed, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.Equal(t, StatusSkipped, results[2].Status)
}

func TestDispatchFailureDoesNotStopLaterHooks(t *testing.T) {
	binDir := t.TempDir()
	testutil.WriteHookTool(t, binDir, "hook-a", 1)
	logB := testutil.WriteHookTool(t, binDir, "hook-b", 0)
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, threeHooksDoc)

	results, err := Dispatch(context.Background(), reg, []string{"pkg/code.py"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, 1, results[0].ExitCode)
	assert.Equal(t, StatusPassed, results[1].Status)
	assert.True(t, results.Failed())

	// hook-b really ran after hook-a failed
	data, err := os.ReadFile(logB)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pkg/code.py")
}

func TestDispatchArgumentOrder(t *testing.T) {
	binDir := t.TempDir()
	logA := testutil.WriteHookTool(t, binDir, "hook-a", 0)
	testutil.WriteHookTool(t, binDir, "hook-b", 0)
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, threeHooksDoc)

	// Duplicates collapse, insertion order survives
	paths := []string{"z/last.py", "a/first.py", "z/last.py", "README.md"}
	_, err := Dispatch(context.Background(), reg, paths, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(logA)
	require.NoError(t, err)
	assert.Equal(t, "--check z/last.py a/first.py\n", string(data))
}

func TestDispatchToolNotFound(t *testing.T) {
	// No stubs on PATH at all
	binDir := t.TempDir()
	t.Setenv("PATH", binDir)

	reg := compileRegistry(t, `
repos:
  - repo: https://example.com/fmt
    rev: v1.0.0
    hooks:
      - id: no-such-tool
`)

	results, err := Dispatch(context.Background(), reg, []string{"pkg/code.py"}, Options{})
	require.NoError(t, err, "a missing tool is a per-hook failure, not a dispatch error")

	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, errors.ErrCodeToolNotFound, errors.GetCode(results[0].Err))
}

func TestDispatchIdempotent(t *testing.T) {
	binDir := t.TempDir()
	testutil.WriteHookTool(t, binDir, "hook-a", 0)
	testutil.WriteHookTool(t, binDir, "hook-b", 1)
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, threeHooksDoc)
	paths := []string{"pkg/code.py"}

	first, err := Dispatch(context.Background(), reg, paths, Options{})
	require.NoError(t, err)
	second, err := Dispatch(context.Background(), reg, paths, Options{})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].HookID, second[i].HookID)
		assert.Equal(t, first[i].Status, second[i].Status)
		assert.Equal(t, first[i].ExitCode, second[i].ExitCode)
	}
}

func TestDispatchAlwaysRun(t *testing.T) {
	binDir := t.TempDir()
	logPath := testutil.WriteHookTool(t, binDir, "unconditional", 0)
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, `
files: \.py$
repos:
  - repo: https://example.com/meta
    rev: v1.0.0
    hooks:
      - id: unconditional
        always_run: true
`)

	results, err := Dispatch(context.Background(), reg, []string{"README.md"}, Options{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, StatusPassed, results[0].Status)

	// Invoked with no paths appended
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(data))
}

func TestDispatchParallelReportsInDeclarationOrder(t *testing.T) {
	binDir := t.TempDir()
	for _, name := range []string{"p-one", "p-two", "p-three", "p-four"} {
		testutil.WriteHookTool(t, binDir, name, 0)
	}
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, `
repos:
  - repo: https://example.com/many
    rev: v1.0.0
    hooks:
      - id: p-one
      - id: p-two
      - id: p-three
      - id: p-four
`)

	var order []string
	results, err := Dispatch(context.Background(), reg, []string{"pkg/code.py"}, Options{
		Jobs: 4,
		OnResult: func(r InvocationResult) {
			order = append(order, r.HookID)
		},
	})
	require.NoError(t, err)

	want := []string{"p-one", "p-two", "p-three", "p-four"}
	assert.Equal(t, want, order, "OnResult must fire in declaration order")

	var resultOrder []string
	for _, r := range results {
		resultOrder = append(resultOrder, r.HookID)
	}
	assert.Equal(t, want, resultOrder)
}

func TestDispatchCapturesOutput(t *testing.T) {
	binDir := t.TempDir()
	script := "#!/bin/sh\necho would reformat \"$1\"\nexit 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "formatter"), []byte(script), 0o755))
	testutil.PrependPath(t, binDir)

	reg := compileRegistry(t, `
repos:
  - repo: https://example.com/fmt
    rev: v1.0.0
    hooks:
      - id: formatter
`)

	results, err := Dispatch(context.Background(), reg, []string{"pkg/code.py"}, Options{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.True(t, strings.Contains(results[0].Output, "would reformat pkg/code.py"))
}
