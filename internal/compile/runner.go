package compile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// ProcessRunner abstracts how external tool processes are executed. This
// allows swapping the real subprocess launch (ExecRunner) with alternative
// strategies in tests without changing phase orchestration.
//
// Run blocks until the process exits. Launch failures, non-zero exits and
// interruptions are reported uniformly as errors wrapping ErrExitStatus.
type ProcessRunner interface {
	Run(ctx context.Context, dir string, name string, args []string) error
}

// ExecRunner launches the tool as a child process inheriting the parent's
// standard streams. Output is never captured; only the exit status matters.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, name string, args []string) error {
	// #nosec G204 -- name comes from toolchain discovery or explicit configuration.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	slog.Debug("Running external tool", "command", name, "args", args, "dir", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExitStatus, name, err)
	}
	return nil
}

// NoopRunner performs no execution; useful in tests or dry runs.
type NoopRunner struct{}

func (NoopRunner) Run(_ context.Context, dir string, name string, args []string) error {
	slog.Debug("NoopRunner skipping execution", "command", name, "args", len(args), "dir", dir)
	return nil
}
