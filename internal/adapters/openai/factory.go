package openai

import (
	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new OpenAIClient
func (f *Factory) CreateLLMClient() (core.LLMClient, error) {
	openaiCfg := f.cfg.GetOpenAI()

	client := openai.NewClient(openaiCfg.APIKey)

	return NewOpenAIClient(
		client,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		openaiCfg.ReasoningMarker,
		openaiCfg.MaxMessageSize,
		f.logger,
		f.textProcessor,
	), nil
}
