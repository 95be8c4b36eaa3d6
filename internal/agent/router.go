package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lucidquery/lucid/provider"
)

// Classify decides whether the turn can be answered now or needs a
// clarifying question first. Unlike the other stages this is a fail-fast
// boundary: an invalid or unparseable decision is a hard error, with no
// retry and no silent coercion to proceed.
func (p *Pipeline) Classify(ctx context.Context, messages []provider.Message) (Decision, error) {
	request := append([]provider.Message{{Role: provider.RoleSystem, Content: routerSystemPrompt}}, messages...)
	completion, err := p.complete(ctx, stageRouter, request, provider.Options{
		Model:    p.model(stageRouter),
		JSONOnly: true,
	})
	if err != nil {
		return "", fmt.Errorf("router classification failed: %w", err)
	}

	var decoded struct {
		Object struct {
			Next string `json:"next"`
		} `json:"object"`
	}
	if err := json.Unmarshal([]byte(completion.Text), &decoded); err != nil {
		return "", fmt.Errorf("router returned unparseable decision: %w", err)
	}

	switch Decision(decoded.Object.Next) {
	case DecisionProceed:
		return DecisionProceed, nil
	case DecisionInquire:
		return DecisionInquire, nil
	default:
		return "", fmt.Errorf("router returned invalid decision %q", decoded.Object.Next)
	}
}
