package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultReviewFile  = "customer_review/review.txt"
	DefaultOutput      = "json"
	DefaultProvider    = "openai"
	DefaultOpenAIModel = "gpt-4o"
	DefaultClaudeModel = "claude-sonnet-4-20250514"
	DefaultMaxTokens   = 4000
	DefaultTimeout     = 60 * time.Second
)

// Config is the resolved configuration for one run.
type Config struct {
	LLM        LLM    `mapstructure:"llm"`
	ReviewFile string `mapstructure:"review_file"`
	Output     string `mapstructure:"output"`
}

// LLM holds provider selection and credentials.
type LLM struct {
	Provider         string        `mapstructure:"provider"`
	OpenAIAPIKey     string        `mapstructure:"openai_api_key"`
	OpenAIModel      string        `mapstructure:"openai_model"`
	OpenAIBaseURL    string        `mapstructure:"openai_base_url"`
	AnthropicAPIKey  string        `mapstructure:"anthropic_api_key"`
	ClaudeModel      string        `mapstructure:"claude_model"`
	AnthropicBaseURL string        `mapstructure:"anthropic_base_url"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

var envBindings = map[string]string{
	"llm.provider":           "LLM_PROVIDER",
	"llm.openai_api_key":     "OPENAI_API_KEY",
	"llm.openai_model":       "OPENAI_MODEL",
	"llm.openai_base_url":    "OPENAI_BASE_URL",
	"llm.anthropic_api_key":  "ANTHROPIC_API_KEY",
	"llm.claude_model":       "CLAUDE_MODEL",
	"llm.anthropic_base_url": "ANTHROPIC_BASE_URL",
	"llm.max_tokens":         "LLM_MAX_TOKENS",
	"llm.timeout":            "LLM_TIMEOUT",
	"review_file":            "REVIEW_FILE",
	"output":                 "REVIEW_OUTPUT",
}

// Load reads configuration from cfgFile, or from review-insights.yaml in
// the working directory when cfgFile is empty. A missing default file is
// not an error; environment variables and defaults still apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("review-insights")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.openai_model", DefaultOpenAIModel)
	v.SetDefault("llm.claude_model", DefaultClaudeModel)
	v.SetDefault("llm.max_tokens", DefaultMaxTokens)
	v.SetDefault("llm.timeout", DefaultTimeout)
	v.SetDefault("review_file", DefaultReviewFile)
	v.SetDefault("output", DefaultOutput)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	return &cfg, nil
}

// Validate checks values that do not depend on which provider is used.
// Credentials are checked when the provider client is created.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "", "openai", "claude", "anthropic":
	default:
		return fmt.Errorf("unsupported llm.provider %q (supported: openai, claude)", c.LLM.Provider)
	}

	switch c.Output {
	case "json", "yaml", "human":
	default:
		return fmt.Errorf("unsupported output format %q (supported: json, yaml, human)", c.Output)
	}

	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.max_tokens must be a positive integer")
	}
	if strings.TrimSpace(c.ReviewFile) == "" {
		return errors.New("review_file is required")
	}
	return nil
}
