package dmbuild

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Injection points for tests.
var (
	execCommandContext = exec.CommandContext
	execLookPath       = exec.LookPath
)

// Runner executes external tools. Every invocation is blocking: the tool
// runs to completion before the caller continues. There is no retry and
// no timeout beyond context cancellation; a non-zero exit is returned as
// an error for the caller to treat as fatal or not.
type Runner struct {
	// Stdout and Stderr receive the streamed output of every Run call.
	// They default to the process's own streams, so a failing tool has
	// already printed its diagnostics by the time Run returns.
	Stdout io.Writer
	Stderr io.Writer

	// Env is an environment overlay applied to every command on top of
	// the ambient environment.
	Env map[string]string
}

// NewRunner returns a Runner writing to the process standard streams
// with the given environment overlay.
func NewRunner(env map[string]string) *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr, Env: env}
}

func (r *Runner) command(ctx context.Context, dir string, extra map[string]string, name string, args ...string) *exec.Cmd {
	cmd := execCommandContext(ctx, name, args...)
	cmd.Dir = dir

	cmd.Env = os.Environ()
	for key, value := range r.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}
	for key, value := range extra {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	return cmd
}

// Run executes name with args in dir, streaming output to the Runner's
// writers.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	return r.RunEnv(ctx, dir, nil, name, args...)
}

// RunEnv is Run with an additional per-call environment overlay.
func (r *Runner) RunEnv(ctx context.Context, dir string, extra map[string]string, name string, args ...string) error {
	cmd := r.command(ctx, dir, extra, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Output executes name with args in dir and returns its combined
// stdout and stderr. Used for banner probes rather than build steps.
func (r *Runner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := r.command(ctx, dir, nil, name, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}
