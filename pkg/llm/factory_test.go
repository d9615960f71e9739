package llm

import (
	"errors"
	"testing"

	"github.com/helmcode/review-insights/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{in: "", want: ProviderOpenAI},
		{in: "openai", want: ProviderOpenAI},
		{in: " OpenAI ", want: ProviderOpenAI},
		{in: "claude", want: ProviderClaude},
		{in: "anthropic", want: ProviderClaude},
		{in: "gemini", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedProvider))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateLLM_MissingAPIKey(t *testing.T) {
	f := NewFactory()

	_, err := f.CreateLLM(ProviderOpenAI, config.LLM{AnthropicAPIKey: "sk-ant"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	_, err = f.CreateLLM(ProviderClaude, config.LLM{OpenAIAPIKey: "sk-openai"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestCreateLLM_UnknownProvider(t *testing.T) {
	_, err := NewFactory().CreateLLM(Provider("mistral"), config.LLM{OpenAIAPIKey: "sk"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestCreateFromConfig(t *testing.T) {
	cfg := config.LLM{
		Provider:        "openai",
		OpenAIAPIKey:    "sk-openai",
		OpenAIModel:     "gpt-configured",
		AnthropicAPIKey: "sk-ant",
		ClaudeModel:     "claude-configured",
		MaxTokens:       100,
	}

	t.Run("configured provider", func(t *testing.T) {
		l, err := CreateFromConfig(cfg, "", "")
		require.NoError(t, err)
		assert.Equal(t, "openai", l.Name())
		assert.Equal(t, "gpt-configured", l.GetModel())
	})

	t.Run("provider override", func(t *testing.T) {
		l, err := CreateFromConfig(cfg, "claude", "")
		require.NoError(t, err)
		assert.Equal(t, "claude", l.Name())
		assert.Equal(t, "claude-configured", l.GetModel())
	})

	t.Run("model override", func(t *testing.T) {
		l, err := CreateFromConfig(cfg, "", "gpt-override")
		require.NoError(t, err)
		assert.Equal(t, "gpt-override", l.GetModel())
	})

	t.Run("bad override", func(t *testing.T) {
		_, err := CreateFromConfig(cfg, "bard", "")
		assert.ErrorIs(t, err, ErrUnsupportedProvider)
	})
}

func TestGetAvailableProviders(t *testing.T) {
	assert.ElementsMatch(t, []Provider{ProviderOpenAI, ProviderClaude}, NewFactory().GetAvailableProviders())
}
