package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/di"
	"github.com/mikey/llm-triage/internal/ports"
	"go.uber.org/zap"
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
	transport ports.Transport,
	llmClient core.LLMClient,
	repo core.MessageRepository,
) error {
	defer logger.Sync()

	// Start the HTTP API
	if err := transport.Start(); err != nil {
		logger.Fatal("Failed to start HTTP API", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the HTTP API
	if err := transport.Stop(); err != nil {
		logger.Error("Failed to stop HTTP API", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if closer, ok := repo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close message store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
