package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/helmcode/review-insights/pkg/config"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIConfig configures an OpenAI client.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	// HTTPClient overrides the SDK's default client when set.
	HTTPClient *http.Client
}

type OpenAI struct {
	client    chatCompleter
	model     string
	maxTokens int
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	return newOpenAIWithClient(openai.NewClientWithConfig(clientCfg), cfg.Model, cfg.MaxTokens)
}

func newOpenAIWithClient(client chatCompleter, model string, maxTokens int) *OpenAI {
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}
	return &OpenAI{client: client, model: model, maxTokens: maxTokens}
}

// Chat sends a single user message. When req carries a schema the reply is
// requested in strict json_schema mode.
func (o *OpenAI) Chat(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		}},
		MaxTokens: o.maxTokens,
	}
	if req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w from OpenAI", ErrEmptyResponse)
	}

	choice := resp.Choices[0]
	log.WithFields(log.Fields{
		"provider":          o.Name(),
		"model":             resp.Model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"finish_reason":     choice.FinishReason,
	}).Debug("OpenAI completion received")

	if choice.Message.Refusal != "" {
		return "", &APIError{Provider: "OpenAI", Message: "request refused: " + choice.Message.Refusal}
	}
	if choice.Message.Content == "" {
		return "", fmt.Errorf("%w from OpenAI", ErrEmptyResponse)
	}
	return choice.Message.Content, nil
}

func (o *OpenAI) Name() string { return string(ProviderOpenAI) }

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Provider: "OpenAI", StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{Provider: "OpenAI", StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}
	return &APIError{Provider: "OpenAI", Message: err.Error(), Err: err}
}
