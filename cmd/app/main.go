package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dispatch/cmd"
	"dispatch/internal/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	zl, err := logger.New(config.LogLevel)
	if err != nil {
		log.Fatalf("logger initialization error: %v", err)
	}

	os.Exit(finish(zl, run(config, zl)))
}

// finish logs the error run returned, flushes the logger and returns the process
// exit code. run has already released its resources by the time it returns.
func finish(zl *zap.Logger, err error) int {
	code := 0
	if err != nil {
		zl.Error("application terminated with error", zap.Error(err))
		code = 1
	}
	_ = zl.Sync()
	return code
}

func run(config cmd.Config, zl *zap.Logger) error {
	app, err := cmd.NewCompositionRoot(config, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			zl.Error("failed to close storage", zap.Error(err))
		}
	}()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		zl.Info("starting dispatch server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		zl.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		zl.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
