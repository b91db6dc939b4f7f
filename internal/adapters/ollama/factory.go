package ollama

import (
	"fmt"
	"time"

	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of OllamaClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for OllamaClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new OllamaClient
func (f *Factory) CreateLLMClient() (core.LLMClient, error) {
	ollamaCfg := f.cfg.GetOllama()

	timeout, err := time.ParseDuration(ollamaCfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama timeout: %w", err)
	}

	return NewOllamaClient(
		ollamaCfg.Endpoint,
		ollamaCfg.ModelName,
		timeout,
		ollamaCfg.ReasoningMarker,
		ollamaCfg.MaxMessageSize,
		f.logger,
		f.textProcessor,
	), nil
}
