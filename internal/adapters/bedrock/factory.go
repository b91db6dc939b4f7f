package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of BedrockClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for BedrockClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new BedrockClient
func (f *Factory) CreateLLMClient() (core.LLMClient, error) {
	bedrockCfg := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(bedrockCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg)

	return NewBedrockClient(
		client,
		bedrockCfg.ModelID,
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		bedrockCfg.TopP,
		bedrockCfg.ReasoningMarker,
		bedrockCfg.MaxMessageSize,
		f.logger,
		f.textProcessor,
	), nil
}
