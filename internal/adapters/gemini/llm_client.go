package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient is an implementation of the LLMClient interface using Google Gemini
type GeminiClient struct {
	client          *genai.Client
	model           *genai.GenerativeModel
	modelName       string
	reasoningMarker string
	maxMessageSize  int
	logger          *zap.Logger
	textProcessor   *utils.TextProcessor
}

const systemPrompt = `Classify this medical message into ONE category:

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

NO other text.`

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	reasoningMarker string,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &GeminiClient{
		client:          client,
		model:           model,
		modelName:       modelName,
		reasoningMarker: reasoningMarker,
		maxMessageSize:  maxMessageSize,
		logger:          logger,
		textProcessor:   textProcessor,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Classify submits a patient message for triage and returns the raw model reply
func (c *GeminiClient) Classify(ctx context.Context, message string) (string, error) {
	processed := c.textProcessor.ProcessText(message, c.maxMessageSize)

	resp, err := c.model.GenerateContent(ctx, genai.Text(processed))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", &core.BackendError{Status: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &core.BackendError{Status: 0, Body: "empty response from Gemini"}
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	reply, err := utils.StripReasoning(responseText, c.reasoningMarker)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Received model reply",
		zap.String("model", c.modelName),
		zap.Int("reply_size", len(reply)))

	return reply, nil
}
