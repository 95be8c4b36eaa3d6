package websearch

import (
	"context"
	"errors"
	"time"

	"github.com/lucidquery/lucid/tools/websearch/models"
	"github.com/lucidquery/lucid/tools/websearch/tavily"
)

// Re-exported wire types so consumers only import this package.
type (
	Result   = models.Result
	Envelope = models.Envelope
)

const (
	DepthBasic    = models.DepthBasic
	DepthAdvanced = models.DepthAdvanced
)

// Searcher is the search capability consumed by the research executor.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, depth string) (models.Envelope, error)
}

// Provider identifies a search backend.
type Provider string

const (
	TavilyProvider Provider = "tavily"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported search provider")
	// ErrMissingAPIKey is a configuration error, surfaced at construction
	// rather than on first query.
	ErrMissingAPIKey = errors.New("search API key not configured")
)

// NewSearcher creates a search client for the given provider. A missing
// credential is rejected immediately.
func NewSearcher(provider Provider, apiKey, endpoint string, timeout time.Duration) (Searcher, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch provider {
	case TavilyProvider:
		return tavily.New(apiKey, endpoint, timeout), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
