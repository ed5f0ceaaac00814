// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	goruntime "runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

type (
	// Options are the launcher inputs. Zero values fall back to the defaults
	// of config.DefaultConfig.
	Options struct {
		Candidates     []string
		VersionArgs    []string
		MinVersion     string
		EnvironmentDir string
		Manifest       string
		Entry          string
		// Workdir is where every step runs. Empty means the process directory.
		Workdir string
		// Strict propagates the first failed step's exit status.
		Strict bool
		// PTY attaches install and invoke to a pseudo-terminal.
		PTY bool
	}

	// Dependencies are the launcher's collaborators. Nil fields get
	// production defaults.
	Dependencies struct {
		Runner   runtime.CapturingRunner
		Resolver runtime.Resolver
		Logger   *log.Logger
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
		// Environ returns the base process environment.
		Environ func() []string
		// GOOS selects the environment layout.
		GOOS string
	}

	// Launcher runs the setup pipeline.
	Launcher struct {
		opts    Options
		deps    Dependencies
		logger  *log.Logger
		workdir string
		baseEnv []string
		env     Environment
		now     func() time.Time
	}
)

// OptionsFromConfig maps a loaded configuration onto launcher options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Candidates:     slices.Clone(cfg.Interpreter.Candidates),
		VersionArgs:    slices.Clone(cfg.Interpreter.VersionArgs),
		MinVersion:     cfg.Interpreter.MinVersion,
		EnvironmentDir: cfg.Environment.Dir,
		Manifest:       cfg.Manifest,
		Entry:          cfg.Entry,
		Workdir:        cfg.Workdir,
		Strict:         cfg.Strict,
		PTY:            cfg.UI.PTY,
	}
}

// New creates a Launcher.
func New(opts Options, deps Dependencies) *Launcher {
	defaults := config.DefaultConfig()
	if len(opts.Candidates) == 0 {
		opts.Candidates = defaults.Interpreter.Candidates
	}
	if opts.VersionArgs == nil {
		opts.VersionArgs = defaults.Interpreter.VersionArgs
	}
	if opts.EnvironmentDir == "" {
		opts.EnvironmentDir = defaults.Environment.Dir
	}
	if opts.Manifest == "" {
		opts.Manifest = defaults.Manifest
	}
	if opts.Entry == "" {
		opts.Entry = defaults.Entry
	}

	if deps.Runner == nil {
		deps.Runner = runtime.NewExecRunner()
	}
	if deps.Resolver == nil {
		deps.Resolver = runtime.PathResolver{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}
	if deps.GOOS == "" {
		deps.GOOS = goruntime.GOOS
	}

	workdir := opts.Workdir
	if workdir == "" {
		workdir = "."
	}
	if abs, err := filepath.Abs(workdir); err == nil {
		workdir = abs
	}

	return &Launcher{
		opts:    opts,
		deps:    deps,
		logger:  deps.Logger,
		workdir: workdir,
		baseEnv: deps.Environ(),
		env:     NewEnvironment(workdir, opts.EnvironmentDir, deps.GOOS),
		now:     time.Now,
	}
}

// Environment returns the resolved environment layout.
func (l *Launcher) Environment() Environment {
	return l.env
}

// Workdir returns the absolute directory every step runs in.
func (l *Launcher) Workdir() string {
	return l.workdir
}

// Path resolves a path relative to the working directory.
func (l *Launcher) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(l.workdir, rel)
}

// Options returns the effective options.
func (l *Launcher) Options() Options {
	return l.opts
}

func (l *Launcher) getenv(key string) string {
	v, _ := runtime.EnvLookup(l.baseEnv, key)
	return v
}

// probe runs the interpreter gate and records its outcome.
func (l *Launcher) probe(ctx context.Context, report *Report) error {
	start := l.now()
	interp, err := l.Probe(ctx)
	if err != nil {
		var missing *MissingInterpreterError
		if errors.As(err, &missing) {
			return missingInterpreter(missing)
		}
		return err
	}

	report.Interpreter = interp
	report.record(StepOutcome{
		Step:     StepProbe,
		Status:   StatusOK,
		Duration: l.now().Sub(start),
		Argv:     interp.Command(l.opts.VersionArgs...).Argv(),
		Note:     interp.Version,
	})
	return nil
}

// Run executes the full pipeline. Only a failed interpreter gate returns an
// error; every other failure is recorded in the report.
func (l *Launcher) Run(ctx context.Context) (*Report, error) {
	report := &Report{Environment: l.env}

	if err := l.probe(ctx, report); err != nil {
		return nil, err
	}

	l.provision(ctx, report)

	activation := l.env.Activate(l.baseEnv)
	report.record(StepOutcome{Step: StepActivate, Status: StatusOK, Note: l.env.BinDir})
	l.logger.Debug("environment activated", "VIRTUAL_ENV", l.env.Root)

	l.runStep(ctx, report, StepInstall, l.installCommand(), activation)
	l.runStep(ctx, report, StepInvoke, l.invokeCommand(), activation)

	activation.Deactivate()
	report.record(StepOutcome{Step: StepDeactivate, Status: StatusOK})
	l.logger.Debug("environment deactivated")

	report.ExitCode = report.exitCode(l.opts.Strict)
	return report, nil
}

// Plan probes the interpreter and reports what Run would execute without
// running anything else.
func (l *Launcher) Plan(ctx context.Context) (*Report, error) {
	report := &Report{Environment: l.env, DryRun: true}

	if err := l.probe(ctx, report); err != nil {
		return nil, err
	}

	if l.env.Exists() {
		report.record(StepOutcome{Step: StepProvision, Status: StatusSkipped, Note: "environment already exists"})
	} else {
		report.record(StepOutcome{Step: StepProvision, Status: StatusPlanned, Argv: l.provisionCommand(report.Interpreter).Argv()})
	}
	report.record(StepOutcome{Step: StepActivate, Status: StatusPlanned, Note: l.env.BinDir})
	report.record(StepOutcome{Step: StepInstall, Status: StatusPlanned, Argv: l.installCommand().Argv()})
	report.record(StepOutcome{Step: StepInvoke, Status: StatusPlanned, Argv: l.invokeCommand().Argv()})
	report.record(StepOutcome{Step: StepDeactivate, Status: StatusPlanned})

	return report, nil
}

func (l *Launcher) provisionCommand(interp Interpreter) runtime.Invocation {
	return interp.Command("-m", "venv", l.opts.EnvironmentDir)
}

func (l *Launcher) installCommand() runtime.Invocation {
	return runtime.Invocation{Name: l.env.Python, Args: []string{"-m", "pip", "install", "-r", l.opts.Manifest}}
}

func (l *Launcher) invokeCommand() runtime.Invocation {
	return runtime.Invocation{Name: l.env.Python, Args: []string{l.opts.Entry}}
}

// provision creates the environment unless something already occupies its
// directory.
func (l *Launcher) provision(ctx context.Context, report *Report) {
	if l.env.Exists() {
		l.logger.Info("using existing environment", "dir", l.opts.EnvironmentDir)
		report.record(StepOutcome{Step: StepProvision, Status: StatusSkipped, Note: "environment already exists"})
		return
	}

	l.logger.Info("creating environment", "dir", l.opts.EnvironmentDir)
	inv := l.provisionCommand(report.Interpreter)
	inv.Env = l.baseEnv
	l.execute(ctx, report, StepProvision, inv)
}

// runStep runs inv with the activation's environment.
func (l *Launcher) runStep(ctx context.Context, report *Report, step Step, inv runtime.Invocation, activation *Activation) {
	switch step {
	case StepInstall:
		l.logger.Info("installing dependencies", "manifest", l.opts.Manifest)
	case StepInvoke:
		l.logger.Info("running build script", "entry", l.opts.Entry)
	}
	inv.Env = activation.Environ()
	inv.PTY = l.opts.PTY
	l.execute(ctx, report, step, inv)
}

func (l *Launcher) execute(ctx context.Context, report *Report, step Step, inv runtime.Invocation) {
	inv.Dir = l.workdir
	inv.Stdin = l.deps.Stdin
	inv.Stdout = l.deps.Stdout
	inv.Stderr = l.deps.Stderr

	if err := ctx.Err(); err != nil {
		l.logger.Warn("step not started", "step", step, "err", err)
		report.record(StepOutcome{
			Step:     step,
			Status:   StatusFailed,
			ExitCode: runtime.ExitFailure,
			Argv:     inv.Argv(),
			Err:      &StepError{Step: step, ExitCode: runtime.ExitFailure, Err: err},
		})
		return
	}

	l.logger.Debug("exec", "step", step, "cmd", inv.String())
	start := l.now()
	res := l.deps.Runner.Run(ctx, inv)

	outcome := StepOutcome{
		Step:     step,
		Status:   StatusOK,
		ExitCode: res.ExitCode,
		Duration: l.now().Sub(start),
		Argv:     inv.Argv(),
	}
	if !res.Success() {
		outcome.Status = StatusFailed
		outcome.Err = &StepError{Step: step, ExitCode: res.ExitCode, Err: res.Error}
		l.logger.Warn("step failed, continuing", "step", step, "exit", int(res.ExitCode), "err", res.Err())
	}
	report.record(outcome)
}
