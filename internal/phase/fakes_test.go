package phase

import (
	"context"
	"strings"
)

// fakeRunner records every invocation and lets tests script failures and
// captured output by matching a substring of the rendered command line.
type fakeRunner struct {
	calls   []string
	failOn  map[string]error  // substring of the command line -> error
	outputs map[string]string // substring of the command line -> stdout

	// onRun, when set, observes every successful Run call. Tests use it to
	// mimic filesystem side effects of commands like git clone or make.
	onRun func(line string)
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		failOn:  make(map[string]error),
		outputs: make(map[string]string),
	}
}

func (r *fakeRunner) record(name string, args []string) string {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	return line
}

func (r *fakeRunner) errorFor(line string) error {
	for substr, err := range r.failOn {
		if strings.Contains(line, substr) {
			return err
		}
	}
	return nil
}

func (r *fakeRunner) Run(_ context.Context, _, name string, args ...string) error {
	line := r.record(name, args)
	if err := r.errorFor(line); err != nil {
		return err
	}
	if r.onRun != nil {
		r.onRun(line)
	}
	return nil
}

func (r *fakeRunner) Output(_ context.Context, _, name string, args ...string) (string, error) {
	line := r.record(name, args)
	if err := r.errorFor(line); err != nil {
		return "", err
	}
	for substr, out := range r.outputs {
		if strings.Contains(line, substr) {
			return out, nil
		}
	}
	return "", nil
}

// sawCommand reports whether any recorded command line contains the substring.
func (r *fakeRunner) sawCommand(substr string) bool {
	for _, line := range r.calls {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// fakeDetector reports a fixed environment.
type fakeDetector struct {
	isWSL bool
	user  string
}

func (d *fakeDetector) IsWSL() bool { return d.isWSL }

func (d *fakeDetector) WindowsUser(_ context.Context) string { return d.user }

// fakeOuter classifies every trigger with a fixed outcome.
type fakeOuter struct {
	outcome    TriggerOutcome
	err        error
	scriptPath string
	calls      int
}

func (o *fakeOuter) ExecuteScript(_ context.Context, scriptPath string) (TriggerOutcome, error) {
	o.calls++
	o.scriptPath = scriptPath
	return o.outcome, o.err
}
