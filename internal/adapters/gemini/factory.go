package gemini

import (
	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new GeminiClient
func (f *Factory) CreateLLMClient() (core.LLMClient, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewGeminiClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		geminiCfg.ReasoningMarker,
		geminiCfg.MaxMessageSize,
		f.logger,
		f.textProcessor,
	)
}
