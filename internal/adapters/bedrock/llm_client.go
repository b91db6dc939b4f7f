package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	client          *bedrockruntime.Client
	modelID         string
	maxTokens       int
	temperature     float32
	topP            float32
	reasoningMarker string
	maxMessageSize  int
	logger          *zap.Logger
	textProcessor   *utils.TextProcessor
	systemPrompt    string
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	reasoningMarker string,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockClient {
	return &BedrockClient{
		client:          client,
		modelID:         modelID,
		maxTokens:       maxTokens,
		temperature:     temperature,
		topP:            topP,
		reasoningMarker: reasoningMarker,
		maxMessageSize:  maxMessageSize,
		logger:          logger,
		textProcessor:   textProcessor,
		systemPrompt: `Classify this medical message into ONE category:

emergency - Life-threatening, needs immediate help
(chest pain, bleeding, can't breathe, severe injury, stroke symptoms)

routine - Normal medical care, can wait
(prescription refill, annual checkup, mild symptoms, general health questions)

followup - About previous treatment or appointment
(medication side effects, post-surgery questions, appointment rescheduling)

other - Not medical or administrative
(billing questions, insurance, "hello", unclear messages, technical issues)

RESPOND WITH ONLY 2 LINES:
[category]
[confidence percentage]

Example:
emergency
95%

NO other text.`,
	}
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (c *BedrockClient) isAnthropicModel() bool {
	return strings.Contains(c.modelID, "anthropic")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *BedrockClient) isAmazonTitanModel() bool {
	return strings.Contains(c.modelID, "amazon.titan")
}

// Classify submits a patient message for triage and returns the raw model reply
func (c *BedrockClient) Classify(ctx context.Context, message string) (string, error) {
	processed := c.textProcessor.ProcessText(message, c.maxMessageSize)
	prompt := c.systemPrompt + "\n\nMessage:\n" + processed

	var payload []byte
	var err error

	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", prompt),
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else if c.isAmazonTitanModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
				"topP":          c.topP,
			},
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal model payload: %w", err)
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		var respErr *smithyhttp.ResponseError
		if errors.As(err, &respErr) {
			return "", &core.BackendError{Status: respErr.HTTPStatusCode(), Body: respErr.Err.Error()}
		}
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}

	responseText, err := c.extractText(output.Body)
	if err != nil {
		return "", err
	}

	reply, err := utils.StripReasoning(responseText, c.reasoningMarker)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Received model reply",
		zap.String("model", c.modelID),
		zap.Int("reply_size", len(reply)))

	return reply, nil
}

// extractText pulls the generated text out of the model-family-specific
// response body
func (c *BedrockClient) extractText(body []byte) (string, error) {
	if c.isAmazonTitanModel() {
		var resp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to decode Titan response: %w", err)
		}
		if len(resp.Results) == 0 {
			return "", &core.BackendError{Status: 0, Body: "empty response from Bedrock"}
		}
		return resp.Results[0].OutputText, nil
	}

	var resp struct {
		Completion string `json:"completion"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if resp.Completion == "" {
		return "", &core.BackendError{Status: 0, Body: "empty response from Bedrock"}
	}
	return resp.Completion, nil
}
