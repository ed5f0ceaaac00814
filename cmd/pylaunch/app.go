// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/launcher"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives an App and reaches configuration and process execution through it.
	App struct {
		Config   config.Provider
		runner   runtime.CapturingRunner
		resolver runtime.Resolver
		environ  func() []string
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Runner   runtime.CapturingRunner
		Resolver runtime.Resolver
		Environ  func() []string
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// globalOptions holds the persistent flags shared by all commands.
	globalOptions struct {
		configPath string
		verbose    bool
		workdir    string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = runtime.NewExecRunner()
	}
	if deps.Resolver == nil {
		deps.Resolver = runtime.PathResolver{}
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
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

	return &App{
		Config:   deps.Config,
		runner:   deps.Runner,
		resolver: deps.Resolver,
		environ:  deps.Environ,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// loadConfig loads configuration honoring --config and --workdir, and folds
// the workdir flag into the result.
func (a *App) loadConfig(ctx context.Context, g *globalOptions) (config.Loaded, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: g.configPath,
		WorkDir:        g.workdir,
	})
	if err != nil {
		return config.Loaded{}, err
	}
	if g.workdir != "" {
		loaded.Config.Workdir = g.workdir
	}
	return loaded, nil
}

// newLauncher builds a launcher that writes child output to stdout/stderr.
func (a *App) newLauncher(opts launcher.Options, logger *log.Logger, stdout, stderr io.Writer) *launcher.Launcher {
	return launcher.New(opts, launcher.Dependencies{
		Runner:   a.runner,
		Resolver: a.resolver,
		Logger:   logger,
		Stdin:    a.stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Environ:  a.environ,
	})
}
