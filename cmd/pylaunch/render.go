// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/internal/launcher"
)

const pausePrompt = "Press Enter to continue..."

// glamourStyle picks the Markdown style for w. Non-terminals get plain text.
func glamourStyle(w io.Writer, scheme config.ColorScheme) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}

// renderIssue prints the issue linked to err, falling back to the error's
// formatted message when there is none or rendering fails.
func renderIssue(w io.Writer, err error, scheme config.ColorScheme, verbose bool) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+err.Error())
		return
	}

	if guide := ae.Guide(); guide != nil {
		if rendered, renderErr := guide.Render(glamourStyle(w, scheme)); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
}

// pause waits for the user to acknowledge a fatal message. End of input
// counts as acknowledgment.
func pause(in io.Reader, out io.Writer) {
	fmt.Fprint(out, WarningStyle.Render(pausePrompt))
	_, _ = bufio.NewReader(in).ReadString('\n')
	fmt.Fprintln(out)
}

func statusMark(s launcher.Status) string {
	switch s {
	case launcher.StatusOK:
		return SuccessStyle.Render("✓")
	case launcher.StatusFailed:
		return ErrorStyle.Render("✗")
	case launcher.StatusPlanned:
		return CmdStyle.Render("→")
	default:
		return SubtitleStyle.Render("-")
	}
}

func outcomeDetail(o launcher.StepOutcome) string {
	switch {
	case o.Err != nil:
		return ErrorStyle.Render(o.Err.Error())
	case o.Status == launcher.StatusPlanned && len(o.Argv) > 0:
		return CmdStyle.Render(strings.Join(o.Argv, " "))
	case o.Note != "":
		return SubtitleStyle.Render(o.Note)
	default:
		return ""
	}
}

// renderReport prints one line per step followed by a status line.
func renderReport(w io.Writer, report *launcher.Report, verbose bool) {
	title := "Summary"
	if report.DryRun {
		title = "Dry Run"
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render(title))

	if report.Interpreter.Found() {
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("Interpreter:"), report.Interpreter.Path)
	}
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("Environment:"), report.Environment.Root)
	fmt.Fprintln(w)

	for _, o := range report.Outcomes {
		line := fmt.Sprintf("  %s %s %s", statusMark(o.Status), stepNameStyle.Render(o.Step.String()), outcomeDetail(o))
		if verbose && o.Duration > 0 {
			line += " " + SubtitleStyle.Render("("+o.Duration.Round(time.Millisecond).String()+")")
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	if report.DryRun {
		return
	}

	failed := report.Failed()
	fmt.Fprintln(w)
	switch {
	case len(failed) == 0:
		fmt.Fprintln(w, SuccessStyle.Render("All steps completed."))
	case report.ExitCode.IsSuccess():
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("%d step(s) failed; exiting 0 (use --strict to propagate failures).", len(failed))))
	default:
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("%d step(s) failed; exiting %s.", len(failed), report.ExitCode)))
	}
}

// renderFailureGuides prints the guide for each failed step, once per issue.
func renderFailureGuides(w io.Writer, report *launcher.Report, scheme config.ColorScheme) {
	seen := make(map[issue.Id]bool)
	for _, o := range report.Failed() {
		var se *launcher.StepError
		if !errors.As(o.Err, &se) || seen[se.Issue()] {
			continue
		}
		seen[se.Issue()] = true
		if rendered, err := issue.Get(se.Issue()).Render(glamourStyle(w, scheme)); err == nil {
			fmt.Fprint(w, rendered)
		}
	}
}
