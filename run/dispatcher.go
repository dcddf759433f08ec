package run

import (
	"bytes"
	"context"
	"os/exec"
	"sync"
	"time"

	"github.com/grovetools/hooks/command"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/logging"
	"github.com/sirupsen/logrus"
)

// Options configure a dispatch.
type Options struct {
	// Jobs is the number of hooks allowed to execute concurrently.
	// Values below 2 mean strictly sequential execution.
	Jobs int

	// Dir is the working directory hooks run in; empty means inherit.
	Dir string

	// Env overrides the environment of hook processes; nil means inherit.
	Env []string

	// Executor substitutes command creation, for tests.
	Executor command.Executor

	// OnStart is called as a hook's process launches. In parallel runs the
	// calls may interleave; OnResult never does.
	OnStart func(hook *config.Hook, matched []string)

	// OnResult is called once per hook, always in declaration order.
	OnResult func(result InvocationResult)

	Logger *logrus.Entry
}

// Dispatch runs every hook of the registry over the changed paths, in
// declaration order, and returns one result per hook in that same order.
//
// A hook whose effective filter matches none of the paths is skipped without
// invocation. A failing hook never prevents later hooks from running; the
// caller decides overall failure from Results.Failed.
func Dispatch(ctx context.Context, reg *config.Registry, changedPaths []string, opts Options) (Results, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger("dispatch")
	}

	executor := opts.Executor
	if executor == nil {
		executor = &command.RealExecutor{}
	}

	paths := git.Dedupe(changedPaths)
	hooks := reg.Hooks()

	logger.WithFields(logrus.Fields{
		"hooks": len(hooks),
		"paths": len(paths),
		"jobs":  opts.Jobs,
	}).Debug("Dispatching hooks")

	if opts.Jobs > 1 {
		return dispatchParallel(ctx, hooks, paths, opts, executor, logger)
	}

	results := make(Results, 0, len(hooks))
	emit := newOrderedEmitter(opts.OnResult)
	for i, hook := range hooks {
		result := invoke(ctx, hook, paths, opts, executor, logger)
		results = append(results, result)
		emit.deliver(i, result)
	}
	return results, nil
}

// dispatchParallel fans hooks out to a bounded worker pool. Results land in a
// slice indexed by declaration position, and the emitter reassembles callback
// order, so callers observe exactly the sequential reporting order.
func dispatchParallel(ctx context.Context, hooks []*config.Hook, paths []string, opts Options, executor command.Executor, logger *logrus.Entry) (Results, error) {
	results := make(Results, len(hooks))
	emit := newOrderedEmitter(opts.OnResult)

	sem := make(chan struct{}, opts.Jobs)
	var wg sync.WaitGroup

	for i, hook := range hooks {
		wg.Add(1)
		go func(i int, hook *config.Hook) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := invoke(ctx, hook, paths, opts, executor, logger)
			results[i] = result
			emit.deliver(i, result)
		}(i, hook)
	}

	wg.Wait()
	return results, nil
}

// invoke runs a single hook over its matched subset of paths.
func invoke(ctx context.Context, hook *config.Hook, paths []string, opts Options, executor command.Executor, logger *logrus.Entry) InvocationResult {
	result := InvocationResult{
		Hook:   hook,
		HookID: hook.ID,
		Repo:   hook.RepoURL,
	}

	matched := hook.Select(paths)
	result.MatchedFiles = matched

	if len(matched) == 0 && !hook.AlwaysRun {
		result.Status = StatusSkipped
		logger.WithField("hook", hook.ID).Debug("No matching paths, skipping")
		return result
	}

	builder := command.NewSafeBuilderWithExecutor(executor)

	// Hook processes run without a timeout and are awaited synchronously.
	cmd, err := builder.BuildUnbounded(ctx, hook.ID, append(append([]string{}, hook.Args...), matched...)...)
	if err != nil {
		result.Status = StatusFailed
		result.Err = errors.Wrap(err, errors.ErrCodeInvalidInput, "refusing to invoke hook '"+hook.ID+"'")
		return result
	}

	execCmd := cmd.Exec()
	execCmd.Dir = opts.Dir
	if opts.Env != nil {
		execCmd.Env = opts.Env
	}

	var output bytes.Buffer
	execCmd.Stdout = &output
	execCmd.Stderr = &output

	if opts.OnStart != nil {
		opts.OnStart(hook, matched)
	}

	logger.WithFields(logrus.Fields{
		"hook":  hook.ID,
		"files": len(matched),
	}).Debug("Invoking hook")

	start := time.Now()
	runErr := execCmd.Run()
	result.Duration = time.Since(start)
	result.Output = output.String()

	if runErr == nil {
		result.Status = StatusPassed
		return result
	}

	result.Status = StatusFailed
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		result.Err = errors.HookFailed(hook.ID, runErr)
	} else if _, ok := runErr.(*exec.Error); ok {
		result.ExitCode = -1
		result.Err = errors.ToolNotFound(hook.ID, hook.ID)
	} else {
		result.ExitCode = -1
		result.Err = errors.Wrap(runErr, errors.ErrCodeHookFailed, "hook '"+hook.ID+"' could not run")
	}

	logger.WithFields(logrus.Fields{
		"hook":     hook.ID,
		"exitCode": result.ExitCode,
	}).Debug("Hook failed")

	return result
}

// orderedEmitter serializes OnResult callbacks into declaration order even
// when invocations complete out of order.
type orderedEmitter struct {
	mu      sync.Mutex
	next    int
	pending map[int]InvocationResult
	fn      func(InvocationResult)
}

func newOrderedEmitter(fn func(InvocationResult)) *orderedEmitter {
	return &orderedEmitter{pending: make(map[int]InvocationResult), fn: fn}
}

func (e *orderedEmitter) deliver(index int, result InvocationResult) {
	if e.fn == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending[index] = result
	for {
		r, ok := e.pending[e.next]
		if !ok {
			return
		}
		delete(e.pending, e.next)
		e.next++
		e.fn(r)
	}
}
