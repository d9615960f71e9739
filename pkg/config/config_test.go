package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultProvider, cfg.LLM.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.LLM.OpenAIModel)
	assert.Equal(t, DefaultClaudeModel, cfg.LLM.ClaudeModel)
	assert.Equal(t, DefaultMaxTokens, cfg.LLM.MaxTokens)
	assert.Equal(t, DefaultTimeout, cfg.LLM.Timeout)
	assert.Equal(t, DefaultReviewFile, cfg.ReviewFile)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Empty(t, cfg.LLM.OpenAIAPIKey)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("CLAUDE_MODEL", "claude-test")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("LLM_MAX_TOKENS", "1200")
	t.Setenv("REVIEW_FILE", "/tmp/review.txt")
	t.Setenv("REVIEW_OUTPUT", "YAML")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-test", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, "claude-test", cfg.LLM.ClaudeModel)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 1200, cfg.LLM.MaxTokens)
	assert.Equal(t, "/tmp/review.txt", cfg.ReviewFile)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_MODEL", "gpt-from-env")

	path := filepath.Join(t.TempDir(), "review-insights.yaml")
	content := `llm:
  provider: openai
  openai_api_key: sk-file
  openai_model: gpt-from-file
  timeout: 30s
review_file: reviews/latest.txt
output: human
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-file", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, "gpt-from-env", cfg.LLM.OpenAIModel, "environment wins over the config file")
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "reviews/latest.txt", cfg.ReviewFile)
	assert.Equal(t, "human", cfg.Output)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LLM:        LLM{Provider: "openai", MaxTokens: 100, Timeout: time.Second},
			ReviewFile: "review.txt",
			Output:     "json",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "anthropic alias", mutate: func(c *Config) { c.LLM.Provider = "anthropic" }},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "gemini" }, wantErr: "unsupported llm.provider"},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "xml" }, wantErr: "unsupported output format"},
		{name: "zero timeout", mutate: func(c *Config) { c.LLM.Timeout = 0 }, wantErr: "llm.timeout"},
		{name: "zero max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 0 }, wantErr: "llm.max_tokens"},
		{name: "blank review file", mutate: func(c *Config) { c.ReviewFile = " " }, wantErr: "review_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
