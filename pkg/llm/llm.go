package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"
)

var (
	// ErrMissingAPIKey is returned when the selected provider has no credential.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrUnsupportedProvider is returned for provider names the factory does not know.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("empty response")
)

// Request is a single completion request.
type Request struct {
	Prompt string
	// SchemaName and Schema describe the shape the reply must follow.
	// OpenAI enforces it as a strict response format, Claude as a forced
	// tool call.
	SchemaName string
	Schema     *jsonschema.Definition
}

// LLM is a text completion provider.
type LLM interface {
	Chat(ctx context.Context, req Request) (string, error)
	Name() string
	GetModel() string
}

// APIError is a failed call to a provider: transport failure, non-2xx
// status, rate limiting or a refused request.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }
