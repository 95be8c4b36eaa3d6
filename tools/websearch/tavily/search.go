package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lucidquery/lucid/tools/websearch/models"
)

const defaultEndpoint = "https://api.tavily.com/search"

// minResults is the floor the Tavily API expects for max_results.
const minResults = 5

// Search is a Tavily web-search client.
// https://docs.tavily.com/ for the API shape.
type Search struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// New creates a Tavily client.
func New(apiKey, endpoint string, timeout time.Duration) Search {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return Search{apiKey: apiKey, endpoint: endpoint, http: &http.Client{Timeout: timeout}}
}

// Search runs one query and returns the answer summary, ranked results,
// images and timing metadata.
func (s Search) Search(ctx context.Context, query string, maxResults int, depth string) (models.Envelope, error) {
	if maxResults < minResults {
		maxResults = minResults
	}
	if depth != models.DepthAdvanced {
		depth = models.DepthBasic
	}

	payload := map[string]any{
		"api_key":         s.apiKey,
		"query":           query,
		"max_results":     maxResults,
		"search_depth":    depth,
		"include_images":  true,
		"include_answers": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return models.Envelope{}, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Envelope{}, fmt.Errorf("tavily API error: %d - %s", resp.StatusCode, string(errBody))
	}

	var envelope models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.Envelope{}, fmt.Errorf("decode search response: %w", err)
	}
	return envelope, nil
}
