// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pylaunch/pylaunch/internal/runtime"
)

// versionPattern extracts "3.12.1" from "Python 3.12.1" and similar banners.
var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Interpreter is the resolved base interpreter.
type Interpreter struct {
	// Candidate is the configured command string that matched.
	Candidate string
	// Argv is the command with its executable resolved to Path.
	Argv []string
	// Path is the absolute executable path.
	Path string
	// Version is the raw version banner, trimmed.
	Version string
	// SemVer is the parsed version, nil when the banner had none.
	SemVer *semver.Version
}

// Command returns an invocation of the interpreter with extra arguments.
func (i Interpreter) Command(args ...string) runtime.Invocation {
	return runtime.Invocation{
		Name: i.Argv[0],
		Args: append(slices.Clone(i.Argv[1:]), args...),
	}
}

// Found reports whether the interpreter was resolved.
func (i Interpreter) Found() bool {
	return len(i.Argv) > 0
}

func parseVersion(banner string) *semver.Version {
	m := versionPattern.FindString(banner)
	if m == "" {
		return nil
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil
	}
	return v
}

// probeCandidate resolves one candidate and runs its version query.
func (l *Launcher) probeCandidate(ctx context.Context, candidate string, constraint *semver.Constraints) (Interpreter, error) {
	argv, err := runtime.ParseCommand(candidate, l.getenv)
	if err != nil {
		return Interpreter{}, err
	}

	path, err := l.deps.Resolver.LookPath(argv[0])
	if err != nil {
		return Interpreter{}, err
	}
	argv[0] = path

	interp := Interpreter{Candidate: candidate, Argv: argv, Path: path}
	inv := interp.Command(l.opts.VersionArgs...)
	inv.Dir = l.workdir
	inv.Env = l.baseEnv

	l.logger.Debug("probing interpreter", "candidate", candidate, "cmd", inv.String())
	res := l.deps.Runner.Capture(ctx, inv)
	if !res.Success() {
		return Interpreter{}, fmt.Errorf("version query: %w", res.Err())
	}

	// Python 2 prints its version to stderr.
	interp.Version = strings.TrimSpace(res.Output + res.ErrOutput)
	interp.SemVer = parseVersion(interp.Version)

	if constraint != nil {
		if interp.SemVer == nil {
			return Interpreter{}, fmt.Errorf("%w: %q", ErrVersionUnknown, interp.Version)
		}
		if !constraint.Check(interp.SemVer) {
			return Interpreter{}, &VersionRejectedError{Version: interp.SemVer, Constraint: l.opts.MinVersion}
		}
	}

	return interp, nil
}

// Probe finds the first usable interpreter candidate. It returns a
// *MissingInterpreterError listing every rejected candidate when none is.
func (l *Launcher) Probe(ctx context.Context) (Interpreter, error) {
	var constraint *semver.Constraints
	if l.opts.MinVersion != "" {
		c, err := semver.NewConstraint(l.opts.MinVersion)
		if err != nil {
			return Interpreter{}, fmt.Errorf("invalid interpreter version constraint %q: %w", l.opts.MinVersion, err)
		}
		constraint = c
	}

	missing := &MissingInterpreterError{}
	for _, candidate := range l.opts.Candidates {
		if err := ctx.Err(); err != nil {
			return Interpreter{}, err
		}

		interp, err := l.probeCandidate(ctx, candidate, constraint)
		if err == nil {
			l.logger.Debug("interpreter found", "path", interp.Path, "version", interp.Version)
			return interp, nil
		}

		l.logger.Debug("interpreter candidate rejected", "candidate", candidate, "err", err)
		missing.Candidates = append(missing.Candidates, CandidateFailure{Candidate: candidate, Err: err})
	}

	return Interpreter{}, missing
}
