package romtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/jomag/romtest/flags"
)

// parseConfig runs the CLI surface against args and returns the resulting
// Config.
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := &cli.App{
		Flags: flags.Flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx, log.New())
			return nil
		},
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {}
	err := app.Run(append([]string{"romtest"}, args...))
	if err != nil {
		return nil, err
	}
	return cfg, cfgErr
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(t, "--emulator", "emu")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.EmulatorPath))
	assert.True(t, filepath.IsAbs(cfg.TestDir))
	assert.Equal(t, "tests", filepath.Base(cfg.TestDir))
	assert.Empty(t, cfg.ManifestFile)
	assert.Empty(t, cfg.ReportFile)
	assert.Equal(t, 12, cfg.TestsPerRow)
	assert.Zero(t, cfg.Timeout)
	assert.True(t, cfg.RunOnce)
	assert.Empty(t, cfg.Selectors)
}

func TestNewConfigMissingEmulator(t *testing.T) {
	_, err := parseConfig(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emulator")
}

func TestNewConfigAllFlags(t *testing.T) {
	cfg, err := parseConfig(t,
		"--emulator", "emu",
		"--testdir", "roms",
		"--config", "suites.yaml",
		"--report", "STATUS.md",
		"--tests-per-row", "6",
		"--timeout", "30s",
		"--run-interval", "1h",
		"blargg", "mooneye",
	)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.ManifestFile))
	assert.Equal(t, "STATUS.md", cfg.ReportFile)
	assert.Equal(t, 6, cfg.TestsPerRow)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.False(t, cfg.RunOnce)
	assert.Equal(t, []string{"blargg", "mooneye"}, cfg.Selectors)
}

func TestNewConfigNonPositiveTestsPerRowFallsBack(t *testing.T) {
	cfg, err := parseConfig(t, "--emulator", "emu", "--tests-per-row", "0")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.TestsPerRow)
}
