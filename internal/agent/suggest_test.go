package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/lucidquery/lucid/provider"
)

func TestSuggestRelatedFromToolCall(t *testing.T) {
	llm := &fakeLLM{responses: []provider.Completion{
		toolCompletion("generate_related_queries", `{"related":["EV battery lifespan","EV insurance costs"]}`),
	}}
	p := testPipeline(llm, &fakeSearcher{})

	related := p.SuggestRelated(context.Background(), routerMessages())
	if len(related) != 2 || related[0] != "EV battery lifespan" {
		t.Fatalf("related = %v", related)
	}
	if len(llm.calls[0].opts.Tools) != 1 || llm.calls[0].opts.Tools[0].Name != "generate_related_queries" {
		t.Fatalf("tool not offered: %+v", llm.calls[0].opts.Tools)
	}
}

func TestSuggestRelatedTextReplyYieldsNil(t *testing.T) {
	llm := &fakeLLM{responses: []provider.Completion{textCompletion("you could ask about batteries")}}
	p := testPipeline(llm, &fakeSearcher{})

	if related := p.SuggestRelated(context.Background(), routerMessages()); related != nil {
		t.Fatalf("expected nil, got %v", related)
	}
}

func TestSuggestRelatedBadArgumentsYieldNil(t *testing.T) {
	llm := &fakeLLM{responses: []provider.Completion{toolCompletion("generate_related_queries", `{"related":`)}}
	p := testPipeline(llm, &fakeSearcher{})

	if related := p.SuggestRelated(context.Background(), routerMessages()); related != nil {
		t.Fatalf("expected nil, got %v", related)
	}
}

func TestSuggestRelatedProviderErrorYieldsNil(t *testing.T) {
	llm := &fakeLLM{errs: []error{errors.New("provider down")}}
	p := testPipeline(llm, &fakeSearcher{})

	if related := p.SuggestRelated(context.Background(), routerMessages()); related != nil {
		t.Fatalf("expected nil, got %v", related)
	}
}
