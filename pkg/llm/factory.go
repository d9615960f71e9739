package llm

import (
	"fmt"
	"strings"

	"github.com/helmcode/review-insights/pkg/config"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// ParseProvider maps a configured name to a Provider. An empty name selects
// OpenAI.
func ParseProvider(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "openai":
		return ProviderOpenAI, nil
	case "claude", "anthropic":
		return ProviderClaude, nil
	default:
		return "", fmt.Errorf("%w: %s (supported: openai, claude)", ErrUnsupportedProvider, name)
	}
}

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLM creates an LLM instance for provider from the given settings.
// It fails with ErrMissingAPIKey before any client is built.
func (f *Factory) CreateLLM(provider Provider, cfg config.LLM) (LLM, error) {
	switch provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable not set", ErrMissingAPIKey)
		}
		return NewOpenAI(OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.OpenAIModel,
			BaseURL:   cfg.OpenAIBaseURL,
			MaxTokens: cfg.MaxTokens,
		}), nil

	case ProviderClaude:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY environment variable not set", ErrMissingAPIKey)
		}
		return NewClaude(ClaudeConfig{
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.ClaudeModel,
			BaseURL:   cfg.AnthropicBaseURL,
			MaxTokens: cfg.MaxTokens,
		}), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderOpenAI, ProviderClaude}
}

// CreateFromConfig creates an LLM instance from loaded configuration.
// Non-empty overrides replace the configured provider and model.
func CreateFromConfig(cfg config.LLM, providerOverride, modelOverride string) (LLM, error) {
	name := cfg.Provider
	if providerOverride != "" {
		name = providerOverride
	}
	provider, err := ParseProvider(name)
	if err != nil {
		return nil, err
	}

	if modelOverride != "" {
		switch provider {
		case ProviderOpenAI:
			cfg.OpenAIModel = modelOverride
		case ProviderClaude:
			cfg.ClaudeModel = modelOverride
		}
	}

	return NewFactory().CreateLLM(provider, cfg)
}
