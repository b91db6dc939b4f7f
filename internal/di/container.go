package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-triage/internal/adapters/httpapi"
	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/factory"
	"github.com/mikey/llm-triage/internal/logging"
	"github.com/mikey/llm-triage/internal/ports"
	"github.com/mikey/llm-triage/internal/utils"
	"github.com/mikey/llm-triage/internal/validation"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStorageFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register message repository
	if err := container.Provide(func(f *factory.StorageFactory) (core.MessageRepository, error) {
		return f.CreateMessageRepository()
	}); err != nil {
		return nil, err
	}

	// Register response parser
	if err := container.Provide(core.NewResponseParser); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register submission validator
	if err := container.Provide(validation.NewValidator); err != nil {
		return nil, err
	}

	// Register HTTP transport
	if err := container.Provide(func(
		service *core.TriageService,
		validator *validation.Validator,
		cfg *config.Config,
		logger *zap.Logger,
	) (ports.Transport, error) {
		serverCfg := cfg.GetServer()
		shutdownTimeout, err := cfg.GetDuration("server.shutdown_timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid server shutdown timeout: %w", err)
		}
		return httpapi.NewServer(service, validator, logger, serverCfg.ListenAddress, shutdownTimeout), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
