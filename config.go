package romtest

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/jomag/romtest/flags"
	"github.com/jomag/romtest/reporting"
)

// Config holds the application configuration
type Config struct {
	EmulatorPath string        // Path to the emulator binary under test
	TestDir      string        // Base directory for relative suite directories
	ManifestFile string        // Suite manifest path; empty selects the built-in suites
	ReportFile   string        // Markdown report destination; empty disables the report
	TestsPerRow  int           // Cells per markdown report row
	Selectors    []string      // Suite selectors from positional arguments
	Timeout      time.Duration // Per-test timeout; zero means unbounded
	RunInterval  time.Duration // Interval between runs
	RunOnce      bool          // Indicates if the harness should exit after one run
	Log          log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	emulator := ctx.String(flags.Emulator.Name)
	if emulator == "" {
		return nil, errors.New("emulator binary is required")
	}
	absEmulator, err := filepath.Abs(emulator)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for emulator '%s': %w", emulator, err)
	}

	testDir := ctx.String(flags.TestDir.Name)
	absTestDir, err := filepath.Abs(testDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for test directory '%s': %w", testDir, err)
	}

	manifest := ctx.String(flags.Manifest.Name)
	if manifest != "" {
		manifest, err = filepath.Abs(manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for manifest '%s': %w", manifest, err)
		}
	}

	testsPerRow := ctx.Int(flags.TestsPerRow.Name)
	if testsPerRow <= 0 {
		testsPerRow = reporting.DefaultTestsPerRow
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)

	return &Config{
		EmulatorPath: absEmulator,
		TestDir:      absTestDir,
		ManifestFile: manifest,
		ReportFile:   ctx.String(flags.Report.Name),
		TestsPerRow:  testsPerRow,
		Selectors:    ctx.Args().Slice(),
		Timeout:      ctx.Duration(flags.Timeout.Name),
		RunInterval:  runInterval,
		RunOnce:      runInterval == 0,
		Log:          log,
	}, nil
}
