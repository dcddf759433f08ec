package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/config"
	hookerrors "github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/run"
	"github.com/grovetools/hooks/settings"
	"github.com/grovetools/hooks/state"
	"github.com/grovetools/hooks/tui/runview"
	"github.com/grovetools/hooks/watcher"
)

// ErrHookFailure signals that the dispatch itself succeeded but at least one
// hook failed. main exits nonzero without printing a second error message.
var ErrHookFailure = errors.New("one or more hooks failed")

// NewRunCmd creates the `run` command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured hooks against changed files",
		Long: `Runs every configured hook whose file filter matches the changed files,
in declaration order, and reports a per-hook summary.

By default the changed files are the paths staged in git. Use --all-files
to run against every tracked file, or --files to name paths explicitly.

Examples:
  # Run hooks against staged files
  grove-hooks run

  # Run hooks against the whole repository
  grove-hooks run --all-files

  # Run a targeted check
  grove-hooks run --files src/app.py src/util.py

  # Re-run automatically as files change
  grove-hooks run --watch
`,
		RunE: runE,
	}

	cmd.Flags().BoolP("all-files", "a", false, "Run against all tracked files instead of staged files")
	cmd.Flags().StringSlice("files", nil, "Run against these paths (skips git discovery)")
	cmd.Flags().IntP("jobs", "j", 0, "Number of hooks to run concurrently (default 1)")
	cmd.Flags().BoolP("watch", "w", false, "Watch the repository and re-run on changes")
	cmd.Flags().BoolP("tui", "i", false, "Show a live view while hooks run")

	return cmd
}

func runE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Compile()
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		if userSettings, err := settings.Load(); err == nil && userSettings.Jobs > 0 {
			jobs = userSettings.Jobs
		}
	}

	paths, err := discoverPaths(cmd, reg)
	if err != nil {
		return err
	}
	logger.WithField("paths", len(paths)).Debug("discovered changed files")

	opts := run.Options{Jobs: jobs}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return runWatch(cmd, reg, paths, opts)
	}

	useTUI, _ := cmd.Flags().GetBool("tui")
	var results run.Results
	if useTUI {
		results, err = dispatchTUI(cmd.Context(), reg, paths, opts)
	} else {
		results, err = run.Dispatch(cmd.Context(), reg, paths, opts)
	}
	if err != nil {
		return err
	}

	if !useTUI {
		run.RenderSummary(os.Stdout, results, run.WantColor(os.Stdout))
	}

	passed, failed, skipped := results.Counts()
	if err := state.RecordLastRun(state.LastRun{
		At:      time.Now(),
		Files:   len(paths),
		Passed:  passed,
		Failed:  failed,
		Skipped: skipped,
	}); err != nil {
		logger.WithError(err).Debug("could not record run state")
	}

	if results.Failed() {
		return ErrHookFailure
	}
	return nil
}

// discoverPaths resolves the set of changed files for this invocation:
// explicit --files, --all-files (tracked), or the staged set. ignore_globs
// from the configuration are applied before any hook filter.
func discoverPaths(cmd *cobra.Command, reg *config.Registry) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	explicit, _ := cmd.Flags().GetStringSlice("files")
	var paths []string
	switch {
	case len(explicit) > 0:
		paths = git.Dedupe(explicit)
	default:
		allFiles, _ := cmd.Flags().GetBool("all-files")
		if allFiles {
			paths, err = git.TrackedFiles(cwd)
		} else {
			paths, err = git.StagedFiles(cwd)
		}
		if err != nil {
			return nil, err
		}
	}

	return git.FilterIgnored(paths, reg.IgnoreGlobs)
}

// runWatch runs the hooks once, then re-runs them against each settled batch
// of filesystem changes until interrupted.
func runWatch(cmd *cobra.Command, reg *config.Registry, initial []string, opts run.Options) error {
	ctx := cmd.Context()

	runOnce := func(paths []string) {
		results, err := run.Dispatch(ctx, reg, paths, opts)
		if err != nil {
			cli.NewErrorHandler(cli.GetOptions(cmd).Verbose).Handle(err)
			return
		}
		run.RenderSummary(os.Stdout, results, run.WantColor(os.Stdout))
	}

	runOnce(initial)

	root, err := git.RepoRoot(".")
	if err != nil {
		return err
	}

	w, err := watcher.New(root, watcher.DefaultDebounce, func(paths []string) {
		filtered, ferr := git.FilterIgnored(paths, reg.IgnoreGlobs)
		if ferr != nil || len(filtered) == 0 {
			return
		}
		fmt.Println()
		runOnce(filtered)
	})
	if err != nil {
		return err
	}

	fmt.Println("Watching for changes. Press Ctrl-C to stop.")
	return w.Start(ctx)
}

// dispatchTUI runs the dispatcher in the background and streams its progress
// into the live run view.
func dispatchTUI(ctx context.Context, reg *config.Registry, paths []string, opts run.Options) (run.Results, error) {
	hooks := reg.Hooks()
	model := runview.New(hooks)
	program := tea.NewProgram(model)

	// Rows are addressed by declaration position: hook ids may repeat
	// across sources, so the id alone cannot identify a row.
	position := make(map[*config.Hook]int, len(hooks))
	for i, h := range hooks {
		position[h] = i
	}

	opts.OnStart = func(hook *config.Hook, matched []string) {
		program.Send(runview.HookStartedMsg{Index: position[hook], Matched: len(matched)})
	}
	opts.OnResult = func(result run.InvocationResult) {
		program.Send(runview.HookResultMsg{Index: position[result.Hook], Result: result})
	}

	go func() {
		results, err := run.Dispatch(ctx, reg, paths, opts)
		program.Send(runview.DoneMsg{Results: results, Err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, hookerrors.Wrap(err, hookerrors.ErrCodeInternal, "live run view failed")
	}

	m := final.(runview.Model)
	if m.Aborted() {
		return nil, hookerrors.New(hookerrors.ErrCodeInternal, "run aborted")
	}
	return m.Results()
}
