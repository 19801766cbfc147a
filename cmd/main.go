package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	romtest "github.com/jomag/romtest"
	"github.com/jomag/romtest/exitcodes"
	"github.com/jomag/romtest/flags"
	"github.com/jomag/romtest/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := newApp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "romtest"
	app.Usage = "Game Boy emulator conformance tester"
	app.Description = "romtest runs test ROM suites against an emulator binary and reports the verdicts"
	app.ArgsUsage = "[suite ...]"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Check for typed runtime errors
			if romtest.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if romtest.IsTestFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			} else {
				// For other unspecified errors, default to exit code 2
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			}
		}
	}
	return app
}

func run(ctx *cli.Context) error {
	logger := newLogger(ctx.String(flags.LogLevel.Name))

	cfg, err := romtest.NewConfig(ctx, logger)
	if err != nil {
		return romtest.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	runCtx, cancel := context.WithCancelCause(ctx.Context)
	defer cancel(nil)

	harness, err := romtest.New(runCtx, cfg, Version, cancel)
	if err != nil {
		return romtest.NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	if cfg.RunOnce {
		return harness.Start(runCtx)
	}

	// Continuous mode runs as a service with healthz and metrics endpoints.
	svc := service.New()
	svc.Start(runCtx)
	defer svc.Shutdown()

	if err := harness.Start(runCtx); err != nil {
		return err
	}

	<-runCtx.Done()
	if err := harness.Stop(context.Background()); err != nil {
		logger.Error("error stopping harness", "err", err)
	}
	return harness.WaitForShutdown(context.Background())
}

// newLogger builds the root logger at the requested level; unknown levels
// fall back to info.
func newLogger(level string) log.Logger {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		lvl = log.LvlInfo
	}
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(int(lvl)), true)
	logger := log.NewLogger(handler)
	log.SetDefault(logger)
	return logger
}
