// Package flags defines the CLI surface of romtest. Every flag can also be
// set through an environment variable carrying the ROMTEST_ prefix.
package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "ROMTEST"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Emulator = &cli.StringFlag{
		Name:     "emulator",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("EMULATOR"),
		Usage:    "Path to the emulator binary under test",
	}
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   "tests",
		EnvVars: prefixEnvVars("TESTDIR"),
		Usage:   "Base directory that relative suite directories are resolved against",
	}
	Manifest = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Path to suite manifest file (eg. 'suites.yaml'). Omit to use the built-in suites.",
	}
	Report = &cli.StringFlag{
		Name:    "report",
		Value:   "",
		EnvVars: prefixEnvVars("REPORT"),
		Usage:   "Path to write the markdown status matrix to. Omit to skip the report.",
	}
	TestsPerRow = &cli.IntFlag{
		Name:    "tests-per-row",
		Value:   12,
		EnvVars: prefixEnvVars("TESTS_PER_ROW"),
		Usage:   "Number of test cells per markdown report row",
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   0,
		EnvVars: prefixEnvVars("TIMEOUT"),
		Usage:   "Per-test timeout (e.g. '30s'). Set to 0 or omit for no timeout.",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log.level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "The lowest log level that will be output (trace|debug|info|warn|error|crit)",
	}
)

var requiredFlags = []cli.Flag{
	Emulator,
}

var optionalFlags = []cli.Flag{
	TestDir,
	Manifest,
	Report,
	TestsPerRow,
	Timeout,
	RunInterval,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
