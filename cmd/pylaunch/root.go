// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the pylaunch command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	g := &globalOptions{}
	run := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "pylaunch",
		Short: "Bootstrap a Python build environment and run the build",
		Long: TitleStyle.Render("pylaunch") + SubtitleStyle.Render(" - Bootstrap a Python build environment and run the build") + `

Running pylaunch in a project directory:
  1. checks that Python is installed and on PATH
  2. creates the virtual environment (venv) if it does not exist yet
  3. installs requirements.txt into it
  4. runs build.py with the environment active

Only a missing interpreter stops the run. Install or build failures are
reported but do not change the exit status unless --strict is given.

` + SubtitleStyle.Render("Examples:") + `
  pylaunch                  Set up and build the current project
  pylaunch --dry-run        Show what would be executed
  pylaunch -C ../app        Build another project directory
  pylaunch check            Check the interpreter and project files
  pylaunch config dump      Print the effective configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLaunch(cmd, app, g, run)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default is $HOME/.config/pylaunch/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&g.workdir, "workdir", "C", "", "run in this project directory")

	rootCmd.Flags().BoolVar(&run.strict, "strict", false, "exit with the status of the first failed step")
	rootCmd.Flags().BoolVar(&run.noPause, "no-pause", false, "do not wait for Enter when Python is missing")
	rootCmd.Flags().BoolVar(&run.dryRun, "dry-run", false, "check the interpreter and print the plan without running it")

	rootCmd.AddCommand(newCheckCommand(app, g))
	rootCmd.AddCommand(newConfigCommand(app, g))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// errorHandler prints errors through fang, except exit errors whose details
// were already shown to the user.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version is passed explicitly.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
