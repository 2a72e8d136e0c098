package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/di"
	"github.com/mikey/email-persona/internal/factory"
	"github.com/mikey/email-persona/internal/server"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	srv *server.Server,
	store factory.Store,
) error {
	defer logger.Sync()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", zap.Error(err))
			return err
		}
	case <-sigCh:
		logger.Info("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			logger.Error("Failed to stop server", zap.Error(err))
		}
	}

	if err := store.Close(); err != nil {
		logger.Error("Failed to close store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
