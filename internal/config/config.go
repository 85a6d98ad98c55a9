package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Extraction providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderRemote    = "remote"
)

type Config struct {
	Port     int
	LogLevel string

	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string
	ExtractorURL    string

	ExtractionTimeout   time.Duration
	ExtractionMaxTokens int

	NatsURL     string
	NatsToken   string
	DatabaseURL string

	APIToken    string
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first; variables already set take precedence.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     envInt("NER_PORT", 8000),
		LogLevel: envStr("LOG_LEVEL", "info"),

		LLMProvider:     strings.ToLower(envStr("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", ""),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		ExtractorURL:    envStr("EXTRACTOR_URL", ""),

		ExtractionTimeout:   envDuration("EXTRACTION_TIMEOUT", 120*time.Second),
		ExtractionMaxTokens: envInt("EXTRACTION_MAX_TOKENS", 16384),

		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),

		APIToken:    envStr("NER_API_TOKEN", ""),
		CORSOrigins: envList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}
}

// Provider resolves the extraction backend. EXTRACTOR_URL wins over
// LLM_PROVIDER.
func (c Config) Provider() string {
	if c.ExtractorURL != "" {
		return ProviderRemote
	}
	return c.LLMProvider
}

// Validate reports configuration that would make extraction impossible.
func (c Config) Validate() error {
	switch c.Provider() {
	case ProviderRemote:
		return nil
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY not configured")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY not configured")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.ExtractionMaxTokens <= 0 {
		return fmt.Errorf("EXTRACTION_MAX_TOKENS must be positive, got %d", c.ExtractionMaxTokens)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
