// Package suite models the Test / TestGroup / TestSuite hierarchy discovered
// from a vendor's ROM directory layout.
package suite

import (
	"github.com/jomag/romtest/types"
)

// Test is one runnable unit bound to one ROM file. Its definition is
// immutable after discovery; only the result changes, exactly once per run
// pass, through SetResult or Skip.
type Test struct {
	Name    string
	ROMPath string
	Machine types.MachineProfile
	Mode    types.InvocationMode

	result *types.TestResult
}

// NewTest constructs a test for a discovered ROM.
func NewTest(name, romPath string, machine types.MachineProfile, mode types.InvocationMode) *Test {
	return &Test{
		Name:    name,
		ROMPath: romPath,
		Machine: machine,
		Mode:    mode,
	}
}

// Result returns the recorded result, or nil if the test has not run.
func (t *Test) Result() *types.TestResult {
	return t.result
}

// Status returns the recorded verdict. An unrun test reports the empty
// status, which renders like a skip.
func (t *Test) Status() types.TestStatus {
	if t.result == nil {
		return ""
	}
	return t.result.Status
}

// SetResult records the outcome of an execution. The runner is the only
// caller; re-running overwrites the previous verdict.
func (t *Test) SetResult(r *types.TestResult) {
	t.result = r
}

// Skip marks the test skipped without invoking the emulator.
func (t *Test) Skip() {
	t.result = &types.TestResult{Status: types.TestStatusSkip}
}
