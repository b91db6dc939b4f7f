package factory

import (
	"fmt"

	"github.com/mikey/llm-triage/internal/adapters/bedrock"
	"github.com/mikey/llm-triage/internal/adapters/gemini"
	"github.com/mikey/llm-triage/internal/adapters/ollama"
	"github.com/mikey/llm-triage/internal/adapters/openai"
	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

// LLMFactory creates LLM clients
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new LLM client based on the configuration
func (f *LLMFactory) CreateLLMClient() (core.LLMClient, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "ollama":
		return ollama.NewFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
