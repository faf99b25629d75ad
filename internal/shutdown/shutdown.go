// Package shutdown runs a blocking component until it returns or the process
// receives SIGINT or SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// RunWithGracefulShutdown starts runner and waits for it to finish. On a
// signal the runner's context is cancelled, cleanup runs with a deadline of
// timeout, and the runner is given until that deadline to return.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	cleanup func(ctx context.Context) error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	return run(ctx, logger, timeout, sigChan, runner, cleanup)
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	sigChan <-chan os.Signal,
	runner func(ctx context.Context) error,
	cleanup func(ctx context.Context) error,
) error {
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig)
		runCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("runner error during shutdown", "error", err)
			}
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout exceeded")
		}

		if cleanup != nil {
			if err := cleanup(shutdownCtx); err != nil {
				logger.Error("shutdown error", "error", err)
			}
		}
		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		if cleanup != nil {
			if cerr := cleanup(ctx); cerr != nil {
				logger.Error("cleanup error", "error", cerr)
			}
		}
		return err
	}
}
