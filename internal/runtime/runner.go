// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pylaunch/pylaunch/pkg/platform"
)

type (
	// Invocation describes a single child process.
	Invocation struct {
		// Name is the executable, either a path or a name resolved on PATH.
		Name string
		// Args are the arguments passed after Name.
		Args []string
		// Dir is the working directory. Empty means the launcher's own.
		Dir string
		// Env is the complete child environment in KEY=VALUE form.
		// Nil means inherit the launcher's environment unchanged.
		Env []string
		// Stdin, Stdout and Stderr are the child's streams. Nil streams are
		// connected to the null device.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// PTY requests a pseudo-terminal when Stdout is a terminal.
		PTY bool
	}

	// Runner executes invocations.
	Runner interface {
		Run(ctx context.Context, inv Invocation) *Result
	}

	// CapturingRunner is a Runner that can also capture a child's output.
	CapturingRunner interface {
		Runner
		Capture(ctx context.Context, inv Invocation) *Result
	}

	// ExecRunner runs invocations as host processes via os/exec.
	// It must not be copied after first use.
	ExecRunner struct {
		// HostPrefix is prepended to every argv, e.g. to leave a sandbox.
		HostPrefix []string

		mu       sync.Mutex
		relay    *inputRelay
		relaySrc io.Reader
	}
)

// NewExecRunner creates an ExecRunner configured for the current sandbox.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{HostPrefix: platform.HostSpawnPrefix(platform.DetectSandbox())}
}

// Argv returns the full command line of the invocation.
func (inv Invocation) Argv() []string {
	return append([]string{inv.Name}, inv.Args...)
}

// String renders the invocation as a single display line.
func (inv Invocation) String() string {
	return strings.Join(inv.Argv(), " ")
}

// Run executes inv, streaming output to the invocation's writers.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) *Result {
	if err := ctx.Err(); err != nil {
		return NewErrorResult(ExitFailure, fmt.Errorf("run %s: %w", inv.Name, err))
	}

	cmd := r.command(ctx, inv)
	if inv.PTY && isTerminal(inv.Stdout) {
		return r.runWithPTY(cmd, inv)
	}

	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	return resultFromError(inv.Name, cmd.Run())
}

// Close stops forwarding input to pseudo-terminal children and releases the
// shared stdin reader.
func (r *ExecRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.relay != nil {
		r.relay.Close()
		r.relay, r.relaySrc = nil, nil
	}
	return nil
}

// stdinRelay returns the relay reading src, replacing one bound to another
// reader. src must be comparable, as every pointer-backed reader is.
func (r *ExecRunner) stdinRelay(src io.Reader) *inputRelay {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.relay == nil || r.relaySrc != src {
		if r.relay != nil {
			r.relay.Close()
		}
		r.relay, r.relaySrc = newInputRelay(src), src
	}
	return r.relay
}

// Capture executes inv and returns its stdout and stderr in the Result.
// The invocation's own writers are ignored.
func (r *ExecRunner) Capture(ctx context.Context, inv Invocation) *Result {
	if err := ctx.Err(); err != nil {
		return NewErrorResult(ExitFailure, fmt.Errorf("run %s: %w", inv.Name, err))
	}

	cmd := r.command(ctx, inv)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = inv.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := resultFromError(inv.Name, cmd.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *ExecRunner) command(ctx context.Context, inv Invocation) *exec.Cmd {
	if len(r.HostPrefix) == 0 {
		cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
		cmd.Dir = inv.Dir
		cmd.Env = inv.Env
		return cmd
	}

	// The host does not see the sandbox's environment or working directory,
	// so both are forwarded explicitly.
	args := append([]string{}, r.HostPrefix[1:]...)
	if inv.Dir != "" {
		args = append(args, "--directory="+inv.Dir)
	}
	for _, kv := range EnvDiff(os.Environ(), inv.Env) {
		args = append(args, "--env="+kv)
	}
	args = append(args, inv.Argv()...)

	return exec.CommandContext(ctx, r.HostPrefix[0], args...)
}

// resultFromError maps an os/exec error to a Result. A child that exited
// non-zero is reported through ExitCode only.
func resultFromError(name string, err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
	}

	return NewErrorResult(ExitFailure, fmt.Errorf("failed to execute %s: %w", name, err))
}
