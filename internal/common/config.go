package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig `toml:"logging"`
	Storage     StorageConfig `toml:"storage"`
	Market      MarketConfig  `toml:"market"`
	News        NewsConfig    `toml:"news"`
	LLM         LLMConfig     `toml:"llm"`
	Chat        ChatConfig    `toml:"chat"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// MarketConfig configures the daily price history source.
type MarketConfig struct {
	RequestTimeout string `toml:"request_timeout"` // Per-fetch timeout, e.g. "15s"
}

// NewsConfig configures the news-sentiment source.
type NewsConfig struct {
	APIKey         string `toml:"api_key"`         // Alpha Vantage API key
	BaseURL        string `toml:"base_url"`        // Override for tests; empty uses the public endpoint
	Limit          int    `toml:"limit"`           // Max news items per query
	RequestTimeout string `toml:"request_timeout"` // Per-request timeout, e.g. "15s"
	RateLimit      int    `toml:"rate_limit"`      // Requests per second
}

// LLMConfig configures the generative text model.
type LLMConfig struct {
	GoogleAPIKey    string  `toml:"google_api_key"`    // Gemini API key
	ChatModelName   string  `toml:"chat_model_name"`   // Chat completion model
	Temperature     float32 `toml:"temperature"`       // Chat sampling temperature
	Timeout         string  `toml:"timeout"`           // Per-call timeout, e.g. "30s"
	MaxOutputTokens int32   `toml:"max_output_tokens"` // Upper bound on generated tokens
}

// ChatConfig configures the support chat responder.
type ChatConfig struct {
	EscalationThreshold float64  `toml:"escalation_threshold"` // Compound score below which we escalate
	EscalationKeywords  []string `toml:"escalation_keywords"`  // Case-insensitive substring matches
	SupportContact      string   `toml:"support_contact"`      // Contact line appended to the escalation message
}

// NewDefaultConfig returns the configuration defaults. File values, then
// environment variables, override these.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/finsight.db",
				ResetOnStartup: false,
			},
		},
		Market: MarketConfig{
			RequestTimeout: "15s",
		},
		News: NewsConfig{
			APIKey:         "", // User must provide API key in config file
			Limit:          20,
			RequestTimeout: "15s",
			RateLimit:      5,
		},
		LLM: LLMConfig{
			GoogleAPIKey:    "", // User must provide API key (no fallback)
			ChatModelName:   "gemini-2.0-flash",
			Temperature:     0.7,
			Timeout:         "30s",
			MaxOutputTokens: 1024,
		},
		Chat: ChatConfig{
			EscalationThreshold: -0.5,
			EscalationKeywords: []string{
				"talk to an agent",
				"human support",
				"speak to a person",
				"customer service",
				"representative",
			},
			SupportContact: "Support is available 9am-5pm weekdays on 1800 346 744.",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSIGHT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("FINSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("FINSIGHT_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("FINSIGHT_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("FINSIGHT_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// News source configuration
	if apiKey := os.Getenv("FINSIGHT_NEWS_API_KEY"); apiKey != "" {
		config.News.APIKey = apiKey
	}
	if baseURL := os.Getenv("FINSIGHT_NEWS_BASE_URL"); baseURL != "" {
		config.News.BaseURL = baseURL
	}
	if limit := os.Getenv("FINSIGHT_NEWS_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			config.News.Limit = l
		}
	}

	// LLM configuration
	if apiKey := os.Getenv("FINSIGHT_LLM_GOOGLE_API_KEY"); apiKey != "" {
		config.LLM.GoogleAPIKey = apiKey
	}
	if model := os.Getenv("FINSIGHT_LLM_CHAT_MODEL"); model != "" {
		config.LLM.ChatModelName = model
	}
	if timeout := os.Getenv("FINSIGHT_LLM_TIMEOUT"); timeout != "" {
		config.LLM.Timeout = timeout
	}
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// ParseDurationOrDefault parses a duration config value, returning the
// fallback when the value is empty or invalid.
func ParseDurationOrDefault(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
