// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/launcher"
	"github.com/pylaunch/pylaunch/internal/logging"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

func newCheckCommand(app *App, g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the interpreter and project files without changing anything",
		Long: `Check that a Python interpreter is available and report the state of
the virtual environment, the requirements file and the build script.

Nothing is created or installed. Exits 1 when no interpreter is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, app, g)
		},
	}
}

func runCheck(cmd *cobra.Command, app *App, g *globalOptions) error {
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

	logger := logging.New(app.stderr, verbose)
	l := app.newLauncher(launcher.OptionsFromConfig(cfg), logger, io.Discard, io.Discard)
	opts := l.Options()

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Check"))

	interp, err := l.Probe(ctx)
	var missing *launcher.MissingInterpreterError
	if errors.As(err, &missing) {
		fmt.Fprintf(w, "  %s %s\n", ErrorStyle.Render("✗"), "interpreter not found")
		for _, c := range missing.Candidates {
			fmt.Fprintf(w, "      %s %s\n", CmdStyle.Render(c.Candidate+":"), SubtitleStyle.Render(c.Err.Error()))
		}
		cmd.SilenceErrors = true
		return &ExitError{Code: runtime.ExitFailure}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %s interpreter %s %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(interp.Path), SubtitleStyle.Render(interp.Version))

	env := l.Environment()
	if env.Exists() {
		fmt.Fprintf(w, "  %s environment %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(env.Root))
	} else {
		fmt.Fprintf(w, "  %s environment %s %s\n", SubtitleStyle.Render("-"), CmdStyle.Render(env.Root), SubtitleStyle.Render("(will be created)"))
	}

	checkFile(w, "manifest", l.Path(opts.Manifest))
	checkFile(w, "entry", l.Path(opts.Entry))
	return nil
}

// checkFile reports whether a project file is present. Missing files are a
// warning only; the launcher runs regardless.
func checkFile(w io.Writer, label, path string) {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  %s %s %s %s\n", WarningStyle.Render("!"), label, CmdStyle.Render(path), WarningStyle.Render("(missing)"))
		return
	}
	fmt.Fprintf(w, "  %s %s %s\n", SuccessStyle.Render("✓"), label, CmdStyle.Render(path))
}
