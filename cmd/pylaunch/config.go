// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

// newConfigCommand creates the `pylaunch config` command tree.
func newConfigCommand(app *App, g *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pylaunch configuration",
		Long: `Manage pylaunch configuration.

Configuration is read from the first of:
  - the file given with --config
  - the user config file:
      Linux: ~/.config/pylaunch/config.cue
      macOS: ~/Library/Application Support/pylaunch/config.cue
      Windows: %APPDATA%\pylaunch\config.cue
  - pylaunch.cue in the project directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, g)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			cfgPath, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
			fmt.Fprintf(app.stdout, "Project file: %s\n", config.LocalConfigFile)
			return nil
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context(), g)
			if err != nil {
				return err
			}
			out, err := config.Render(loaded.Config, config.Format(format))
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}
	dumpCmd.Flags().StringVarP(&format, "output", "o", string(config.FormatCUE), "output format ("+formatList()+")")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func formatList() string {
	formats := config.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func showConfig(cmd *cobra.Command, app *App, g *globalOptions) error {
	loaded, err := app.loadConfig(cmd.Context(), g)
	if err != nil {
		renderIssue(app.stderr, err, config.ColorSchemeAuto, g.verbose)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: runtime.ExitFailure}
	}
	cfg := loaded.Config
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	source := SubtitleStyle.Render("(using defaults)")
	if len(loaded.Paths) > 0 {
		source = strings.Join(loaded.Paths, " < ")
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), source)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("interpreter"))
	showValue(w, "candidates", strings.Join(cfg.Interpreter.Candidates, ", "))
	showValue(w, "version_args", strings.Join(cfg.Interpreter.VersionArgs, " "))
	showValue(w, "min_version", cfg.Interpreter.MinVersion)

	fmt.Fprintln(w)
	showValue(w, "environment.dir", cfg.Environment.Dir)
	showValue(w, "manifest", cfg.Manifest)
	showValue(w, "entry", cfg.Entry)
	showValue(w, "workdir", cfg.Workdir)
	showValue(w, "strict", fmt.Sprint(cfg.Strict))
	showValue(w, "pause_on_error", fmt.Sprint(cfg.PauseOnError))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("ui"))
	showValue(w, "color_scheme", string(cfg.UI.ColorScheme))
	showValue(w, "verbose", fmt.Sprint(cfg.UI.Verbose))
	showValue(w, "pty", fmt.Sprint(cfg.UI.PTY))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("log"))
	showValue(w, "dir", cfg.Log.Dir)
	showValue(w, "prefix", cfg.Log.Prefix)

	return nil
}

func showValue(w io.Writer, key, value string) {
	if value == "" {
		fmt.Fprintf(w, "  %s: %s\n", key, SubtitleStyle.Render("(not set)"))
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", key, SuccessStyle.Render(value))
}
