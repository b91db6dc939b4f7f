package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

// OllamaClient is an implementation of the LLMClient interface backed by a
// local Ollama server running a reasoning model
type OllamaClient struct {
	endpoint        string
	modelName       string
	reasoningMarker string
	maxMessageSize  int
	httpClient      *http.Client
	logger          *zap.Logger
	textProcessor   *utils.TextProcessor
	systemPrompt    string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(
	endpoint string,
	modelName string,
	timeout time.Duration,
	reasoningMarker string,
	maxMessageSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OllamaClient {
	return &OllamaClient{
		endpoint:        endpoint,
		modelName:       modelName,
		reasoningMarker: reasoningMarker,
		maxMessageSize:  maxMessageSize,
		httpClient:      &http.Client{Timeout: timeout},
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

// Classify submits a patient message for triage and returns the raw model
// reply with the reasoning preamble stripped
func (c *OllamaClient) Classify(ctx context.Context, message string) (string, error) {
	processed := c.textProcessor.ProcessText(message, c.maxMessageSize)

	payload, err := json.Marshal(chatRequest{
		Model: c.modelName,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: processed},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &core.BackendError{Status: resp.StatusCode, Body: string(body)}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	reply, err := utils.StripReasoning(chatResp.Message.Content, c.reasoningMarker)
	if err != nil {
		c.logger.Warn("Model reply is missing the reasoning delimiter",
			zap.String("model", c.modelName),
			zap.Int("reply_size", len(chatResp.Message.Content)))
		return "", err
	}

	c.logger.Debug("Received model reply",
		zap.String("model", c.modelName),
		zap.Int("reply_size", len(reply)))

	return reply, nil
}
