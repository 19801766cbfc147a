package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jomag/romtest/suite"
	"github.com/jomag/romtest/types"
)

// Emulator command-line surface. The mode flag selects how the emulator
// judges the run; success is always signaled by exit status zero.
const (
	TestFlag       = "--test"
	TestExpectFlag = "--test-expect"
	MachineFlag    = "-m"
)

var _ Executor = (*emulatorExecutor)(nil)

// Executor handles individual test execution and process management. It
// invokes the emulator once per test, blocks until the process terminates,
// and judges the termination against the test's invocation mode.
type Executor interface {
	Execute(ctx context.Context, test *suite.Test) (*types.TestResult, error)
}

// emulatorExecutor implements Executor against a real emulator binary.
type emulatorExecutor struct {
	emulatorPath string
	timeout      time.Duration
	cmdBuilder   func(ctx context.Context, name string, arg ...string) *exec.Cmd
	log          log.Logger
}

// NewExecutor creates an executor for the emulator binary at emulatorPath.
// A timeout of zero leaves a hung emulator process to stall the run.
func NewExecutor(emulatorPath string, timeout time.Duration, logger log.Logger) (Executor, error) {
	if emulatorPath == "" {
		return nil, fmt.Errorf("emulator path cannot be empty")
	}
	if logger == nil {
		logger = log.New()
	}
	return &emulatorExecutor{
		emulatorPath: emulatorPath,
		timeout:      timeout,
		cmdBuilder:   exec.CommandContext,
		log:          logger,
	}, nil
}

// Execute runs a single test. A returned error means the harness itself
// could not perform the invocation (misconfigured test, unstartable binary)
// and aborts the whole run; a failing emulator verdict is a normal result.
func (e *emulatorExecutor) Execute(ctx context.Context, test *suite.Test) (*types.TestResult, error) {
	if err := test.Mode.Validate(); err != nil {
		return nil, fmt.Errorf("test %q: %w", test.Name, err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := buildArgs(test)
	e.log.Debug("Invoking emulator", "binary", e.emulatorPath, "args", strings.Join(args, " "))

	cmd := e.cmdBuilder(ctx, e.emulatorPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			exitCode = exitErr.ExitCode()
		case ctx.Err() != nil:
			// Killed by the timeout or by cancellation; judged below.
			exitCode = -1
		default:
			// The emulator could not be started at all. That is a harness
			// configuration problem, not a test-subject defect.
			return nil, fmt.Errorf("invoking emulator for test %q: %w", test.Name, runErr)
		}
	}

	result := &types.TestResult{
		Duration: duration,
		ExitCode: exitCode,
	}
	output := normalizeOutput(stdout.String())

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Status = types.TestStatusFail
		result.Error = fmt.Errorf("emulator did not terminate within %v", e.timeout)
	case test.Mode.Kind == types.ModeExactOutput && exitCode == 0 && output != test.Mode.Expect:
		result.Status = types.TestStatusFail
		result.Error = fmt.Errorf("output mismatch: got %q, want %q", output, test.Mode.Expect)
	case exitCode == 0:
		result.Status = types.TestStatusPass
	default:
		result.Status = types.TestStatusFail
		result.Error = fmt.Errorf("emulator reported failure (exit code %d)", exitCode)
		if stderr.Len() > 0 {
			result.Error = fmt.Errorf("%w\nstderr: %s", result.Error, stderr.String())
		}
	}

	if result.Status == types.TestStatusFail {
		result.Output = output
	}
	return result, nil
}

// buildArgs composes the emulator command line for a test: the mode flag,
// the machine profile and the ROM path.
func buildArgs(test *suite.Test) []string {
	var args []string

	switch test.Mode.Kind {
	case types.ModeExactOutput:
		args = append(args, fmt.Sprintf("%s=%s", TestExpectFlag, test.Mode.Expect))
	case types.ModeProtocol:
		args = append(args, fmt.Sprintf("%s=%s", TestFlag, test.Mode.Protocol))
	}

	if test.Machine != "" {
		args = append(args, MachineFlag, test.Machine.String())
	}

	return append(args, test.ROMPath)
}

// normalizeOutput strips ANSI escape sequences and carriage returns from the
// captured emulator output before it is compared against an expectation.
func normalizeOutput(s string) string {
	return strings.ReplaceAll(stripansi.Strip(s), "\r\n", "\n")
}
