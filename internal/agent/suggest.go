package agent

import (
	"context"
	"encoding/json"

	"github.com/lucidquery/lucid/provider"
)

var relatedQueriesTool = provider.ToolDef{
	Name:        "generate_related_queries",
	Description: "Generate related queries based on the conversation",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"related": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Array of related queries",
			},
		},
		"required": []string{"related"},
	},
}

// SuggestRelated proposes follow-up queries for the just-produced answer.
// Anything other than a well-formed tool call yields an empty list; this
// path never fails the turn.
func (p *Pipeline) SuggestRelated(ctx context.Context, messages []provider.Message) []string {
	request := append([]provider.Message{{Role: provider.RoleSystem, Content: suggestorSystemPrompt}}, messages...)
	completion, err := p.complete(ctx, stageSuggestions, request, provider.Options{
		Model: p.model(stageSuggestions),
		Tools: []provider.ToolDef{relatedQueriesTool},
	})
	if err != nil {
		p.logger.Printf("related query generation failed: %v", err)
		return nil
	}
	if completion.ToolCall == nil || completion.ToolCall.Name != relatedQueriesTool.Name {
		return nil
	}
	var args struct {
		Related []string `json:"related"`
	}
	if err := json.Unmarshal([]byte(completion.ToolCall.Arguments), &args); err != nil {
		return nil
	}
	return args.Related
}
