// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/launcher"
	"github.com/pylaunch/pylaunch/internal/logging"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

// runOptions holds the flags of the default command.
type runOptions struct {
	strict  bool
	noPause bool
	dryRun  bool
}

// runLaunch is the default command: probe, provision, install, build.
func runLaunch(cmd *cobra.Command, app *App, g *globalOptions, run *runOptions) error {
	ctx := cmd.Context()
	cmd.SilenceUsage = true

	loaded, err := app.loadConfig(ctx, g)
	if err != nil {
		renderIssue(app.stderr, err, config.ColorSchemeAuto, g.verbose)
		cmd.SilenceErrors = true
		return &ExitError{Code: runtime.ExitFailure}
	}
	cfg := loaded.Config

	verbose := g.verbose || cfg.UI.Verbose
	opts := launcher.OptionsFromConfig(cfg)
	if run.strict {
		opts.Strict = true
	}

	logDir := cfg.Log.Dir
	if logDir != "" && !filepath.IsAbs(logDir) && cfg.Workdir != "" {
		logDir = filepath.Join(cfg.Workdir, logDir)
	}
	sink, err := logging.Open(logging.Options{
		Stdout:     app.stdout,
		Stderr:     app.stderr,
		Verbose:    verbose,
		Dir:        logDir,
		FilePrefix: cfg.Log.Prefix,
	})
	if err != nil {
		return err
	}
	defer sink.Close()

	for _, path := range loaded.Paths {
		sink.Logger.Debug("configuration loaded", "path", path)
	}
	if sink.Path != "" {
		sink.Logger.Info("logging to file", "path", sink.Path)
	}

	l := app.newLauncher(opts, sink.Logger, sink.Stdout, sink.Stderr)
	if c, ok := app.runner.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	var report *launcher.Report
	if run.dryRun {
		report, err = l.Plan(ctx)
	} else {
		report, err = l.Run(ctx)
	}

	if errors.Is(err, launcher.ErrMissingInterpreter) {
		sink.Logger.Error("no usable Python interpreter found")
		renderIssue(sink.Stderr, err, cfg.UI.ColorScheme, verbose)
		if cfg.PauseOnError && !run.noPause && !run.dryRun {
			pause(app.stdin, sink.Stdout)
		}
		cmd.SilenceErrors = true
		return &ExitError{Code: runtime.ExitFailure}
	}
	if err != nil {
		return err
	}

	renderReport(sink.Stdout, report, verbose)
	if verbose {
		renderFailureGuides(sink.Stdout, report, cfg.UI.ColorScheme)
	}

	if !report.ExitCode.IsSuccess() {
		cmd.SilenceErrors = true
		return &ExitError{Code: report.ExitCode}
	}
	return nil
}
