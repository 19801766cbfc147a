// Package romtest wires discovery, execution and reporting into the
// conformance harness service.
package romtest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jomag/romtest/metrics"
	"github.com/jomag/romtest/registry"
	"github.com/jomag/romtest/reporting"
	"github.com/jomag/romtest/runner"
	"github.com/jomag/romtest/suite"
	"github.com/jomag/romtest/types"
)

// Harness discovers the configured suites, runs them against the emulator
// under test and renders the results. In run-once mode it performs a single
// pass; otherwise the scheduler re-runs the full pass at the configured
// interval.
type Harness struct {
	ctx       context.Context
	config    *Config
	version   string
	registry  *registry.Registry
	runner    *runner.Runner
	printer   *reporting.ConsolePrinter
	scheduler TestScheduler
	result    *runner.RunnerResult

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating harness with config",
		"emulator", config.EmulatorPath,
		"testDir", config.TestDir,
		"manifest", config.ManifestFile,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	reg, err := registry.NewRegistry(registry.Config{
		Log:          config.Log,
		ManifestFile: config.ManifestFile,
		TestDir:      config.TestDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	executor, err := runner.NewExecutor(config.EmulatorPath, config.Timeout, config.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	testRunner, err := runner.NewRunner(runner.Config{
		Executor: executor,
		Log:      config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Harness{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		runner:           testRunner,
		printer:          reporting.NewConsolePrinter(nil),
		scheduler:        NewDefaultTestScheduler(config.RunInterval, config.RunOnce, config.Log),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the conformance tests, periodically when an interval is
// configured.
func (h *Harness) Start(ctx context.Context) error {
	h.ctx = ctx

	if h.config.RunOnce {
		h.config.Log.Info("Starting romtest in run-once mode")
	} else {
		h.config.Log.Info("Starting romtest in continuous mode", "interval", h.config.RunInterval)
	}

	h.scheduler.RegisterCallback(h.runTests)
	if err := h.scheduler.Start(ctx); err != nil {
		h.config.Log.Error("Runtime error running tests", "error", err)
		return err
	}

	if h.config.RunOnce {
		h.config.Log.Info("Tests completed, exiting (run-once mode)")

		if h.result != nil && h.result.Status == types.TestStatusFail {
			h.config.Log.Warn("Run-once test run completed with failures, returning exit code 1")
			return NewTestFailureError(h.result.String())
		}

		go func() {
			h.shutdownCallback(nil)
		}()
	}
	return nil
}

// runTests performs one full discovery-and-execution pass and renders the
// results. Discovery is repeated every pass so ROMs added between interval
// runs are picked up.
func (h *Harness) runTests() error {
	h.config.Log.Info("Running all suites...")

	suites, skips, err := h.registry.Suites(h.config.Selectors)
	if err != nil {
		h.config.Log.Error("Runtime error discovering suites", "error", err)
		return NewRuntimeError(err)
	}

	result, err := h.runner.RunSuites(h.ctx, suites, skips)
	if err != nil {
		h.config.Log.Error("Runtime error running tests", "error", err)
		return NewRuntimeError(err)
	}
	h.result = result

	for _, s := range suites {
		h.printer.PrintSuite(s)
	}
	h.printer.PrintSummary(result)

	if h.config.ReportFile != "" {
		if err := h.writeReport(suites); err != nil {
			return NewRuntimeError(err)
		}
	}

	h.recordMetrics(result)
	h.config.Log.Info("Test run completed", "run_id", result.RunID, "status", result.Status)
	return nil
}

// writeReport renders the markdown status matrix to the configured path.
func (h *Harness) writeReport(suites []*suite.TestSuite) error {
	doc := reporting.BuildDocument(suites, h.config.TestsPerRow)
	if err := os.WriteFile(h.config.ReportFile, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing report to %q: %w", h.config.ReportFile, err)
	}
	h.config.Log.Info("Wrote markdown report", "path", h.config.ReportFile)
	return nil
}

// recordMetrics emits the per-test verdicts and the aggregate run outcome.
func (h *Harness) recordMetrics(result *runner.RunnerResult) {
	for _, sr := range result.Suites {
		for _, g := range sr.Suite.Groups {
			for _, test := range g.Tests {
				status := test.Status()
				if status == "" {
					status = types.TestStatusSkip
				}
				metrics.RecordVerdict(sr.Suite.Name, result.RunID, g.Name, test.Name, status)
			}
		}
	}

	metrics.RecordConformance(
		h.config.EmulatorPath,
		result.RunID,
		string(result.Status),
		result.Stats.Total,
		result.Stats.Passed,
		result.Stats.Failed,
		result.Duration,
	)
}

// Result returns the outcome of the most recent pass, or nil before the
// first pass completes.
func (h *Harness) Result() *runner.RunnerResult {
	return h.result
}

// Stop stops the harness.
func (h *Harness) Stop(ctx context.Context) error {
	h.config.Log.Info("Stopping romtest")
	return h.scheduler.Stop()
}

// Stopped returns true if the harness is stopped.
func (h *Harness) Stopped() bool {
	return h.scheduler.Stopped()
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving to the next test.
func (h *Harness) WaitForShutdown(ctx context.Context) error {
	return h.scheduler.WaitForShutdown(ctx)
}
