package provider

import (
	"context"
	"errors"

	"github.com/lucidquery/lucid/config"
	openai_provider "github.com/lucidquery/lucid/provider/openai"
)

// Client represents different LLM providers.
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// Provider is the completion capability consumed by the agent pipeline.
// A completion either answers with free text or requests one of the
// offered tools with JSON-encoded arguments.
type Provider interface {
	Complete(ctx context.Context, messages []openai_provider.Message, opts openai_provider.Options) (openai_provider.Completion, error)
}

// Convenience aliases so callers don't need to import the concrete
// provider package for wire types.
type (
	Message    = openai_provider.Message
	Options    = openai_provider.Options
	ToolDef    = openai_provider.ToolDef
	ToolCall   = openai_provider.ToolCall
	Completion = openai_provider.Completion
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NewProvider creates a new LLM client based on the provided configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("OPENAI_API_KEY not set")
		}
		return openai_provider.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
