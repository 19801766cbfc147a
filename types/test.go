package types

import (
	"fmt"
	"strings"
	"time"
)

// MachineProfile selects the hardware variant the emulator boots for a test.
type MachineProfile string

const (
	MachineDMG MachineProfile = "dmg"
	MachineCGB MachineProfile = "cgb"
)

// String implements the Stringer interface for MachineProfile
func (m MachineProfile) String() string {
	return string(m)
}

// ProfileForROM derives the machine profile from a ROM path. Color test
// ROMs carry "cgb" somewhere in their path; everything else runs on the
// original hardware profile.
func ProfileForROM(romPath string) MachineProfile {
	if strings.Contains(romPath, "cgb") {
		return MachineCGB
	}
	return MachineDMG
}

// ModeKind tags the two invocation styles understood by the emulator.
type ModeKind string

const (
	// ModeProtocol asks the emulator to judge pass/fail itself using a
	// named test protocol, reported solely via exit status.
	ModeProtocol ModeKind = "protocol"
	// ModeExactOutput runs the ROM to completion and compares the captured
	// output against a literal expectation.
	ModeExactOutput ModeKind = "exact-output"
)

// InvocationMode describes how the emulator is invoked for a test and how
// its termination is judged. Exactly one of Protocol or Expect is set,
// selected by Kind.
//
// In exact-output mode the expectation is both forwarded to the emulator
// (via --test-expect) and compared locally against the captured stdout; a
// pass requires exit status zero and verbatim output equality.
type InvocationMode struct {
	Kind     ModeKind
	Protocol string // protocol identifier, protocol mode only
	Expect   string // literal expected output, exact-output mode only
}

// ProtocolMode returns an InvocationMode for a named test protocol.
func ProtocolMode(protocol string) InvocationMode {
	return InvocationMode{Kind: ModeProtocol, Protocol: protocol}
}

// ExactOutputMode returns an InvocationMode comparing against expect.
func ExactOutputMode(expect string) InvocationMode {
	return InvocationMode{Kind: ModeExactOutput, Expect: expect}
}

// Validate checks that the mode describes a runnable invocation. A test
// constructed without either a protocol or an expectation is a harness
// configuration error, not a test-subject defect.
func (m InvocationMode) Validate() error {
	switch m.Kind {
	case ModeProtocol:
		if m.Protocol == "" {
			return fmt.Errorf("protocol mode requires a protocol identifier")
		}
	case ModeExactOutput:
		if m.Expect == "" {
			return fmt.Errorf("exact-output mode requires an expectation")
		}
	default:
		return fmt.Errorf("not sure how to run test: invocation mode %q", m.Kind)
	}
	return nil
}

// TestResult captures the outcome of a single test run
type TestResult struct {
	Status   TestStatus
	Duration time.Duration // Track test execution time
	ExitCode int           // Exit status of the emulator process
	Output   string        // Captured stdout, normalized; kept for failing tests
	Error    error         // Execution detail for failures, nil otherwise
}

// Skipped reports whether the result marks a skipped test.
func (r *TestResult) Skipped() bool {
	return r != nil && r.Status == TestStatusSkip
}
