package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/helmcode/review-insights/pkg/config"
	log "github.com/sirupsen/logrus"
)

const defaultToolName = "structured_output"

// ClaudeConfig configures an Anthropic client.
type ClaudeConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	HTTPClient *http.Client
}

type Claude struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewClaude builds a client that makes exactly one attempt per request; the
// SDK's automatic retries are turned off.
func NewClaude(cfg ClaudeConfig) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultClaudeModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}

	return &Claude{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Chat sends a single user message. When req carries a schema the reply is
// forced through a tool whose input schema is req.Schema, and the tool
// input is returned as the JSON reply.
func (c *Claude) Chat(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(0),
	}

	toolName := ""
	if req.Schema != nil {
		toolName = req.SchemaName
		if toolName == "" {
			toolName = defaultToolName
		}
		params.Tools = []anthropic.ToolUnionParam{{
			OfTool: &anthropic.ToolParam{
				Name:        toolName,
				Description: anthropic.String("Record the structured result of the analysis."),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: req.Schema.Properties,
					Required:   req.Schema.Required,
				},
			},
		}}
		params.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: toolName},
		}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", claudeError(err)
	}

	log.WithFields(log.Fields{
		"provider":      c.Name(),
		"model":         resp.Model,
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
		"stop_reason":   resp.StopReason,
	}).Debug("Claude completion received")

	var text strings.Builder
	for _, block := range resp.Content {
		switch block.Type {
		case "tool_use":
			if toolName != "" && block.Name == toolName && len(block.Input) > 0 {
				return string(block.Input), nil
			}
		case "text":
			text.WriteString(block.Text)
		}
	}
	// Without a matching tool call the text is returned and left to the
	// parser to accept or reject.
	if text.Len() == 0 {
		return "", fmt.Errorf("%w from Claude", ErrEmptyResponse)
	}
	return text.String(), nil
}

func (c *Claude) Name() string { return string(ProviderClaude) }

func (c *Claude) GetModel() string { return c.model }

func claudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &APIError{Provider: "Claude", StatusCode: apiErr.StatusCode, Message: apiErr.Error(), Err: err}
	}
	return &APIError{Provider: "Claude", Message: err.Error(), Err: err}
}
