package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClient interface using OpenAI
type OpenAIClient struct {
	client          *openai.Client
	modelName       string
	maxTokens       int
	temperature     float32
	topP            float32
	reasoningMarker string
	maxMessageSize  int
	logger          *zap.Logger
	textProcessor   *utils.TextProcessor
	systemPrompt    string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	reasoningMarker string,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:          client,
		modelName:       modelName,
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

// Classify submits a patient message for triage and returns the raw model reply
func (c *OpenAIClient) Classify(ctx context.Context, message string) (string, error) {
	processed := c.textProcessor.ProcessText(message, c.maxMessageSize)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: c.systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: processed,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &core.BackendError{Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}

	if len(resp.Choices) == 0 {
		return "", &core.BackendError{Status: 0, Body: "empty response from OpenAI"}
	}

	reply, err := utils.StripReasoning(resp.Choices[0].Message.Content, c.reasoningMarker)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Received model reply",
		zap.String("model", c.modelName),
		zap.String("completion_id", resp.ID),
		zap.Int("reply_size", len(reply)))

	return reply, nil
}
