package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// ServerConfig represents the configuration for the HTTP API server
type ServerConfig struct {
	ListenAddress   string
	ShutdownTimeout string
}

// OllamaConfig represents the configuration for a local Ollama backend
type OllamaConfig struct {
	Endpoint        string
	ModelName       string
	Timeout         string
	ReasoningMarker string
	MaxMessageSize  int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey          string
	ModelName       string
	MaxTokens       int
	Temperature     float32
	TopP            float32
	ReasoningMarker string
	MaxMessageSize  int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey          string
	ModelName       string
	MaxTokens       int
	Temperature     float32
	TopP            float32
	ReasoningMarker string
	MaxMessageSize  int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region          string
	ModelID         string
	MaxTokens       int
	Temperature     float32
	TopP            float32
	ReasoningMarker string
	MaxMessageSize  int
}

// StorageConfig represents the configuration for the message store
type StorageConfig struct {
	Type         string
	SQLitePath   string
	MySQLDSN     string
	HistoryLimit int
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:   c.GetString("server.listen_address"),
		ShutdownTimeout: c.GetString("server.shutdown_timeout"),
	}
}

// GetOllama returns the Ollama configuration
func (c *Config) GetOllama() OllamaConfig {
	return OllamaConfig{
		Endpoint:        c.GetString("ollama.endpoint"),
		ModelName:       c.GetString("ollama.model_name"),
		Timeout:         c.GetString("ollama.timeout"),
		ReasoningMarker: c.GetString("ollama.reasoning_marker"),
		MaxMessageSize:  c.GetInt("ollama.max_message_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:          c.GetString("openai.api_key"),
		ModelName:       c.GetString("openai.model_name"),
		MaxTokens:       c.GetInt("openai.max_tokens"),
		Temperature:     float32(c.GetFloat64("openai.temperature")),
		TopP:            float32(c.GetFloat64("openai.top_p")),
		ReasoningMarker: c.GetString("openai.reasoning_marker"),
		MaxMessageSize:  c.GetInt("openai.max_message_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:          c.GetString("gemini.api_key"),
		ModelName:       c.GetString("gemini.model_name"),
		MaxTokens:       c.GetInt("gemini.max_tokens"),
		Temperature:     float32(c.GetFloat64("gemini.temperature")),
		TopP:            float32(c.GetFloat64("gemini.top_p")),
		ReasoningMarker: c.GetString("gemini.reasoning_marker"),
		MaxMessageSize:  c.GetInt("gemini.max_message_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:          c.GetString("bedrock.region"),
		ModelID:         c.GetString("bedrock.model_id"),
		MaxTokens:       c.GetInt("bedrock.max_tokens"),
		Temperature:     float32(c.GetFloat64("bedrock.temperature")),
		TopP:            float32(c.GetFloat64("bedrock.top_p")),
		ReasoningMarker: c.GetString("bedrock.reasoning_marker"),
		MaxMessageSize:  c.GetInt("bedrock.max_message_size"),
	}
}

// GetStorage returns the message store configuration
func (c *Config) GetStorage() StorageConfig {
	return StorageConfig{
		Type:         c.GetString("storage.type"),
		SQLitePath:   c.GetString("storage.sqlite_path"),
		MySQLDSN:     c.GetString("storage.mysql_dsn"),
		HistoryLimit: c.GetInt("storage.history_limit"),
	}
}
