package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/factory"
	"github.com/mikey/llm-triage/internal/logging"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

var (
	// LLM provider flags
	provider    = flag.String("provider", "ollama", "LLM provider (ollama, openai, gemini, bedrock)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for LLM response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for LLM generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for LLM generation")
	maxMsgSize  = flag.Int("max-message-size", 4096, "Maximum message size to send to LLM")

	// Ollama flags
	ollamaEndpoint = flag.String("ollama-endpoint", "http://localhost:11434", "Ollama server endpoint")
	ollamaModel    = flag.String("ollama-model", "deepseek-r1:latest", "Ollama model name")
	ollamaMarker   = flag.String("ollama-marker", "</think>", "Reasoning delimiter marker")
	ollamaTimeout  = flag.String("ollama-timeout", "90s", "Ollama request timeout")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	message    = flag.String("message", "", "Patient message to classify (use -file or stdin if not specified)")
	inputFile  = flag.String("file", "", "Input message file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Initialize LLM client
	textProcessor := utils.NewTextProcessor(logger)
	llmFactory := factory.NewLLMFactory(cfg, logger, textProcessor)
	llmClient, err := llmFactory.CreateLLMClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Read the message from flag, file or stdin
	text := *message
	if text == "" {
		var reader io.Reader
		if *inputFile != "" {
			file, err := os.Open(*inputFile)
			if err != nil {
				logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
			}
			defer file.Close()
			reader = file
			logger.Info("Reading message from file", zap.String("file", *inputFile))
		} else {
			reader = os.Stdin
			logger.Info("Reading message from stdin")
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			logger.Fatal("Failed to read message", zap.Error(err))
		}
		text = strings.TrimSpace(string(data))
	}

	if text == "" {
		logger.Fatal("No message to classify")
	}

	// Print message summary
	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Message length: %d bytes\n", len(text))
	fmt.Printf("\n")

	// Classify the message
	fmt.Printf("=== Classification ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetString("llm.provider"))

	startTime := time.Now()

	rawReply, err := llmClient.Classify(context.Background(), text)
	if err != nil {
		logger.Fatal("Failed to classify message", zap.Error(err))
	}

	parser := core.NewResponseParser(logger)
	result := parser.Parse(rawReply)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Category: %s\n", result.Category)
	fmt.Printf("Confidence: %.4f\n", result.Confidence)
	fmt.Printf("Raw reply: %s\n", strings.TrimSpace(rawReply))
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set LLM provider
	v.Set("llm.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "ollama":
		v.Set("ollama.endpoint", *ollamaEndpoint)
		v.Set("ollama.model_name", *ollamaModel)
		v.Set("ollama.timeout", *ollamaTimeout)
		v.Set("ollama.reasoning_marker", *ollamaMarker)
		v.Set("ollama.max_message_size", *maxMsgSize)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
		v.Set("openai.max_message_size", *maxMsgSize)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
		v.Set("gemini.max_message_size", *maxMsgSize)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
		v.Set("bedrock.max_message_size", *maxMsgSize)
	}

	return config.NewFromViper(v)
}
