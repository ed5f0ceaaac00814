// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pylaunch/pylaunch/internal/runtime"
	"github.com/pylaunch/pylaunch/internal/testutil"
)

// fakePython answers the version query, creates an environment holding a
// copy of itself for `-m venv`, and logs every call with its VIRTUAL_ENV.
const fakePython = `echo "$* VIRTUAL_ENV=$VIRTUAL_ENV" >> calls.log
case "$1" in
--version) echo "Python 3.11.2" ;;
-m) if [ "$2" = venv ]; then mkdir -p "$3/bin" && cp "$0" "$3/bin/python"; fi ;;
fail.py) exit 3 ;;
esac`

func newExecLauncher(t *testing.T, python string, opts Options) *Launcher {
	t.Helper()
	opts.Candidates = []string{python}
	return New(opts, Dependencies{
		Runner:   &runtime.ExecRunner{},
		Resolver: runtime.PathResolver{},
		Stdin:    strings.NewReader(""),
		Stdout:   io.Discard,
		Stderr:   io.Discard,
		Environ:  func() []string { return []string{"PATH=/usr/bin:/bin"} },
	})
}

func readCalls(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	if err != nil {
		t.Fatalf("read calls.log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRunWithRealProcesses(t *testing.T) {
	python := testutil.WriteScript(t, t.TempDir(), "python", fakePython)
	work := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(work, "requirements.txt"), "requests\n")
	t.Cleanup(testutil.MustChdir(t, work))

	l := newExecLauncher(t, python, Options{})
	report, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if failed := report.Failed(); len(failed) != 0 {
		t.Fatalf("failed steps: %+v", failed)
	}
	if report.Interpreter.Version != "Python 3.11.2" {
		t.Errorf("version = %q", report.Interpreter.Version)
	}

	root := l.Environment().Root
	want := []string{
		"--version VIRTUAL_ENV=",
		"-m venv venv VIRTUAL_ENV=",
		"-m pip install -r requirements.txt VIRTUAL_ENV=" + root,
		"build.py VIRTUAL_ENV=" + root,
	}
	if got := readCalls(t, "."); !slices.Equal(got, want) {
		t.Errorf("calls:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	// A second run reuses the environment.
	if _, err := newExecLauncher(t, python, Options{}).Run(context.Background()); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	venvCalls := 0
	for _, line := range readCalls(t, ".") {
		if strings.HasPrefix(line, "-m venv") {
			venvCalls++
		}
	}
	if venvCalls != 1 {
		t.Errorf("environment created %d times, want 1", venvCalls)
	}
}

func TestRunWithRealProcessesStrict(t *testing.T) {
	python := testutil.WriteScript(t, t.TempDir(), "python", fakePython)
	work := t.TempDir()

	l := newExecLauncher(t, python, Options{Workdir: work, Entry: "fail.py", Strict: true})
	report, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if report.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", report.ExitCode)
	}
	o, _ := report.Outcome(StepInvoke)
	if o.Status != StatusFailed || o.ExitCode != 3 {
		t.Errorf("invoke outcome = %+v", o)
	}
	if o, _ := report.Outcome(StepDeactivate); o.Status != StatusOK {
		t.Errorf("deactivate status = %s, want ok", o.Status)
	}
}
