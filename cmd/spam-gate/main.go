package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/core"
	"github.com/its-bede/is-it-spam-go/internal/di"
	"github.com/its-bede/is-it-spam-go/internal/ports"
)

func main() {
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run gets all dependencies injected and owns the process lifecycle.
func run(
	logger *zap.Logger,
	gateway ports.Gateway,
	cacheRepo core.CacheRepository,
) error {
	defer func() { _ = logger.Sync() }()

	if err := gateway.Start(); err != nil {
		logger.Error("Failed to start HTTP gateway", zap.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := gateway.Stop(); err != nil {
		logger.Error("Failed to stop HTTP gateway", zap.Error(err))
	}

	if stopper, ok := cacheRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
