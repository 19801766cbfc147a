// Package runner drives test execution: it walks the populated suite tree in
// declaration order, skips tests named in the caller's skip set, invokes the
// emulator for the rest and writes each verdict back onto its test.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/jomag/romtest/suite"
	"github.com/jomag/romtest/types"
)

// SkipSet holds the test names excluded from execution for one run.
// Membership is an exact test-name match, independent of group.
type SkipSet map[string]struct{}

// NewSkipSet builds a skip set from test names.
func NewSkipSet(names ...string) SkipSet {
	s := make(SkipSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the skip set.
func (s SkipSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ResultStats tracks verdict counts for one aggregation level.
type ResultStats struct {
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

func (s *ResultStats) record(status types.TestStatus) {
	s.Total++
	switch status {
	case types.TestStatusPass:
		s.Passed++
	case types.TestStatusFail:
		s.Failed++
	case types.TestStatusSkip:
		s.Skipped++
	}
}

// SuiteResult captures aggregated results for one suite.
type SuiteResult struct {
	Suite    *suite.TestSuite
	Status   types.TestStatus
	Duration time.Duration
	Stats    ResultStats
}

// RunnerResult captures the complete test run results.
type RunnerResult struct {
	Suites   []*SuiteResult
	Status   types.TestStatus
	Duration time.Duration
	Stats    ResultStats
	RunID    string
}

// String returns a one-line summary of the run.
func (r *RunnerResult) String() string {
	return fmt.Sprintf("%d/%d tests passed (%d failed, %d skipped) in %.1fs",
		r.Stats.Passed, r.Stats.Total, r.Stats.Failed, r.Stats.Skipped, r.Duration.Seconds())
}

// Config holds configuration for creating a new runner.
type Config struct {
	Executor Executor
	Log      log.Logger
}

// Runner executes suites strictly sequentially. Each call to RunSuites is an
// independent pass: verdicts from a previous pass are overwritten, never
// memoized.
type Runner struct {
	executor Executor
	log      log.Logger
}

// NewRunner creates a new runner instance.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	return &Runner{
		executor: cfg.Executor,
		log:      cfg.Log,
	}, nil
}

// RunSuites runs every suite, threading each suite's skip set through by
// name. Skip sets stay an explicit parameter so independent runs with
// different skip sets remain safe.
func (r *Runner) RunSuites(ctx context.Context, suites []*suite.TestSuite, skips map[string]SkipSet) (*RunnerResult, error) {
	start := time.Now()
	result := &RunnerResult{
		RunID: uuid.New().String(),
		Stats: ResultStats{StartTime: start},
	}
	r.log.Debug("Running suites", "run_id", result.RunID, "suites", len(suites))

	for _, s := range suites {
		suiteResult, err := r.runSuite(ctx, s, skips[s.Name])
		if err != nil {
			return nil, fmt.Errorf("running suite %q: %w", s.Name, err)
		}
		result.Suites = append(result.Suites, suiteResult)

		result.Stats.Total += suiteResult.Stats.Total
		result.Stats.Passed += suiteResult.Stats.Passed
		result.Stats.Failed += suiteResult.Stats.Failed
		result.Stats.Skipped += suiteResult.Stats.Skipped
	}

	result.Duration = time.Since(start)
	result.Stats.EndTime = time.Now()
	result.Status = determineStatus(result.Stats)
	return result, nil
}

// runSuite runs every group of a suite in declaration order.
func (r *Runner) runSuite(ctx context.Context, s *suite.TestSuite, skip SkipSet) (*SuiteResult, error) {
	start := time.Now()
	suiteResult := &SuiteResult{
		Suite: s,
		Stats: ResultStats{StartTime: start},
	}

	for _, g := range s.Groups {
		if err := r.runGroup(ctx, g, skip, &suiteResult.Stats); err != nil {
			return nil, err
		}
	}

	suiteResult.Duration = time.Since(start)
	suiteResult.Stats.EndTime = time.Now()
	suiteResult.Status = determineStatus(suiteResult.Stats)
	return suiteResult, nil
}

// runGroup runs each test of a group in declaration order, skipping tests
// named in the skip set without invoking the emulator.
func (r *Runner) runGroup(ctx context.Context, g *suite.TestGroup, skip SkipSet, stats *ResultStats) error {
	for _, test := range g.Tests {
		if skip.Contains(test.Name) {
			test.Skip()
			stats.record(types.TestStatusSkip)
			r.log.Info("Skipping test", "group", g.Name, "test", test.Name)
			continue
		}

		r.log.Info("Running test", "group", g.Name, "test", test.Name)
		result, err := r.executor.Execute(ctx, test)
		if err != nil {
			return err
		}
		test.SetResult(result)
		stats.record(result.Status)

		if result.Status == types.TestStatusPass {
			r.log.Info("Pass", "test", test.Name, "duration", result.Duration)
		} else {
			r.log.Warn("Fail", "test", test.Name, "duration", result.Duration, "err", result.Error)
		}
	}
	return nil
}

// determineStatus derives an aggregate verdict: any failure fails the level,
// a level where nothing ran but something was skipped is a skip, everything
// else passes.
func determineStatus(stats ResultStats) types.TestStatus {
	if stats.Failed > 0 {
		return types.TestStatusFail
	}
	if stats.Passed == 0 && stats.Skipped > 0 {
		return types.TestStatusSkip
	}
	return types.TestStatusPass
}
