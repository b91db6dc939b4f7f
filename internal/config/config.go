package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/llm-triage/")
	v.AddConfigPath("$HOME/.llm-triage")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "ollama")

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Ollama defaults
	v.SetDefault("ollama.endpoint", "http://localhost:11434")
	v.SetDefault("ollama.model_name", "deepseek-r1:latest")
	v.SetDefault("ollama.timeout", "90s")
	v.SetDefault("ollama.reasoning_marker", "</think>")
	v.SetDefault("ollama.max_message_size", 4096)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)
	v.SetDefault("openai.reasoning_marker", "")
	v.SetDefault("openai.max_message_size", 4096)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)
	v.SetDefault("gemini.reasoning_marker", "")
	v.SetDefault("gemini.max_message_size", 4096)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)
	v.SetDefault("bedrock.reasoning_marker", "")
	v.SetDefault("bedrock.max_message_size", 4096)

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.sqlite_path", "/data/triage.db")
	v.SetDefault("storage.mysql_dsn", "user:password@tcp(localhost:3306)/llm_triage?parseTime=true")
	v.SetDefault("storage.history_limit", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
