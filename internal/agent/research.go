package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lucidquery/lucid/internal/agent/telemetry"
	"github.com/lucidquery/lucid/provider"
	"github.com/lucidquery/lucid/tools/websearch"
)

// searchResultsPrefix wraps a serialized envelope so downstream stages can
// distinguish tool-backed answers from direct completions.
const searchResultsPrefix = "Based on the search results: "

// researchFallbackText is the degraded answer adopted when a provider or
// search call fails mid-loop.
const researchFallbackText = "I encountered an error while trying to research this topic. Please try again."

const (
	defaultSearchResults = 10
	minSearchResults     = 5
)

var searchTool = provider.ToolDef{
	Name:        "search",
	Description: "Search the web for information",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query",
			},
			"max_results": map[string]interface{}{
				"type":        "number",
				"description": "Maximum number of results to return",
				"default":     defaultSearchResults,
			},
			"search_depth": map[string]interface{}{
				"type":        "string",
				"enum":        []string{websearch.DepthBasic, websearch.DepthAdvanced},
				"description": "Search depth level",
				"default":     websearch.DepthBasic,
			},
		},
		"required": []string{"query"},
	},
}

// Research drives the bounded search-then-synthesize loop and returns the
// final answer text. When an envelope is obtained, one search_data event
// (without the answer summary) is emitted through emit before synthesis.
// Empty answers are retried with backoff up to the configured attempt
// limit; exhaustion is a ResearchExhaustedError. Provider and search
// failures degrade to best-available text instead of failing the turn.
func (p *Pipeline) Research(ctx context.Context, messages []provider.Message, emit EmitFunc) (string, error) {
	var raw string
	degraded := false
	attempts := 0
	for attempts < p.cfg.MaxResearchAttempts {
		attempts++
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := p.researchAttempt(ctx, messages)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			p.logger.Printf("research attempt %d failed: %v", attempts, err)
			raw = researchFallbackText
			degraded = true
			break
		}
		if text != "" {
			raw = text
			break
		}
		p.logger.Printf("research attempt %d returned an empty answer", attempts)
		if attempts < p.cfg.MaxResearchAttempts {
			select {
			case <-time.After(p.cfg.RetryBackoff * time.Duration(attempts)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	telemetry.ResearchAttempts.Observe(float64(attempts))

	if raw == "" {
		return "", &ResearchExhaustedError{Attempts: attempts}
	}
	if degraded {
		return raw, nil
	}

	rest, found := strings.CutPrefix(raw, searchResultsPrefix)
	if !found {
		// Direct completion without a search round-trip; use it verbatim.
		return raw, nil
	}
	var envelope websearch.Envelope
	if err := json.Unmarshal([]byte(rest), &envelope); err != nil {
		p.logger.Printf("search envelope unparseable, using raw answer: %v", err)
		return raw, nil
	}

	if err := emit(StreamEvent{Type: EventSearchData, SearchData: &SearchData{
		Images:       envelope.Images,
		Results:      envelope.Results,
		ResponseTime: envelope.ResponseTime,
	}}); err != nil {
		return "", err
	}

	return p.synthesize(ctx, messages, envelope, raw), nil
}

// researchAttempt makes one completion call with the search tool on
// offer. A requested search is executed and its envelope wrapped; a
// direct text reply passes through untouched.
func (p *Pipeline) researchAttempt(ctx context.Context, messages []provider.Message) (string, error) {
	request := append([]provider.Message{{Role: provider.RoleSystem, Content: researchSystemPrompt}}, messages...)
	completion, err := p.complete(ctx, stageResearch, request, provider.Options{
		Model:     p.model(stageResearch),
		MaxTokens: 2500,
		Tools:     []provider.ToolDef{searchTool},
	})
	if err != nil {
		return "", err
	}

	if completion.ToolCall == nil || completion.ToolCall.Name != searchTool.Name {
		return completion.Text, nil
	}

	var args struct {
		Query       string `json:"query"`
		MaxResults  int    `json:"max_results"`
		SearchDepth string `json:"search_depth"`
	}
	if err := json.Unmarshal([]byte(completion.ToolCall.Arguments), &args); err != nil {
		return "", fmt.Errorf("invalid search arguments: %w", err)
	}
	if args.MaxResults == 0 {
		args.MaxResults = defaultSearchResults
	}
	if args.MaxResults < minSearchResults {
		args.MaxResults = minSearchResults
	}
	if args.SearchDepth != websearch.DepthAdvanced {
		args.SearchDepth = websearch.DepthBasic
	}

	envelope, err := p.searcher.Search(ctx, args.Query, args.MaxResults, args.SearchDepth)
	if err != nil {
		telemetry.SearchRequests.WithLabelValues("error").Inc()
		return "", err
	}
	telemetry.SearchRequests.WithLabelValues("ok").Inc()

	serialized, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("marshal search envelope: %w", err)
	}
	return searchResultsPrefix + string(serialized), nil
}

// synthesize issues the second completion that turns the search answer
// into the canonical structured shape. Every failure degrades: a call
// error keeps the wrapped envelope text, an unparseable reply stands in
// verbatim.
func (p *Pipeline) synthesize(ctx context.Context, messages []provider.Message, envelope websearch.Envelope, raw string) string {
	request := append([]provider.Message{{Role: provider.RoleSystem, Content: synthesisSystemPrompt}}, messages...)
	request = append(request, provider.Message{
		Role: provider.RoleUser,
		Content: fmt.Sprintf("The web search returned this answer: %q\nUsing it, provide a comprehensive response in the required JSON format.",
			envelope.Answer),
	})
	completion, err := p.complete(ctx, stageSynthesis, request, provider.Options{
		Model:    p.model(stageSynthesis),
		JSONOnly: true,
	})
	if err != nil {
		p.logger.Printf("synthesis failed, using search answer text: %v", err)
		return raw
	}

	var answer StructuredAnswer
	if err := json.Unmarshal([]byte(completion.Text), &answer); err != nil || answer.Summary == "" {
		return completion.Text
	}
	canonical, err := json.Marshal(answer)
	if err != nil {
		return completion.Text
	}
	return string(canonical)
}
