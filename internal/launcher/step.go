// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"time"

	"github.com/pylaunch/pylaunch/internal/runtime"
)

const (
	// StepProbe locates a working interpreter.
	StepProbe Step = "probe"
	// StepProvision creates the virtual environment when it is absent.
	StepProvision Step = "provision"
	// StepActivate derives the environment's variables for later steps.
	StepActivate Step = "activate"
	// StepInstall installs the requirements manifest.
	StepInstall Step = "install"
	// StepInvoke runs the build script.
	StepInvoke Step = "invoke"
	// StepDeactivate restores the variables changed by activation.
	StepDeactivate Step = "deactivate"

	// StatusOK means the step ran and succeeded.
	StatusOK Status = "ok"
	// StatusFailed means the step ran, or tried to, and did not succeed.
	StatusFailed Status = "failed"
	// StatusSkipped means the step had nothing to do.
	StatusSkipped Status = "skipped"
	// StatusPlanned means the step would run (dry run only).
	StatusPlanned Status = "planned"
)

type (
	// Step names one stage of the pipeline.
	Step string

	// Status is the outcome class of a step.
	Status string

	// StepOutcome records what happened in one step.
	StepOutcome struct {
		Step     Step
		Status   Status
		ExitCode runtime.ExitCode
		// Err is a *StepError for failed steps.
		Err      error
		Duration time.Duration
		// Argv is the command the step executed, or would execute.
		Argv []string
		// Note is a short human-readable remark, e.g. why a step was skipped.
		Note string
	}

	// Report is the result of Run or Plan.
	Report struct {
		Interpreter Interpreter
		Environment Environment
		Outcomes    []StepOutcome
		// ExitCode is the status the process should exit with.
		ExitCode runtime.ExitCode
		// DryRun is set for reports produced by Plan.
		DryRun bool
	}
)

// Steps returns every step in execution order.
func Steps() []Step {
	return []Step{StepProbe, StepProvision, StepActivate, StepInstall, StepInvoke, StepDeactivate}
}

func (s Step) String() string { return string(s) }

// Failed returns the failed outcomes in execution order.
func (r *Report) Failed() []StepOutcome {
	var failed []StepOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Outcome returns the outcome recorded for step.
func (r *Report) Outcome(step Step) (StepOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Step == step {
			return o, true
		}
	}
	return StepOutcome{}, false
}

func (r *Report) record(o StepOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// exitCode computes the process exit status. Outside strict mode downstream
// failures never change it.
func (r *Report) exitCode(strict bool) runtime.ExitCode {
	if !strict {
		return runtime.ExitSuccess
	}
	failed := r.Failed()
	if len(failed) == 0 {
		return runtime.ExitSuccess
	}
	if code := failed[0].ExitCode; !code.IsSuccess() {
		return code
	}
	return runtime.ExitFailure
}
