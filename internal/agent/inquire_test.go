package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/lucidquery/lucid/provider"
)

func TestGenerateInquiryFromToolCall(t *testing.T) {
	args := `{"question":"Which aspect of applied AI?","options":[{"value":"trends","label":"Current Trends"}],"allowsInput":true,"inputLabel":"Other","inputPlaceholder":"e.g. robotics"}`
	llm := &fakeLLM{responses: []provider.Completion{toolCompletion("generate_inquiry", args)}}
	p := testPipeline(llm, &fakeSearcher{})

	inquiry := p.GenerateInquiry(context.Background(), routerMessages())
	if inquiry.Question != "Which aspect of applied AI?" {
		t.Fatalf("question = %q", inquiry.Question)
	}
	if len(inquiry.Options) != 1 || inquiry.Options[0].Value != "trends" {
		t.Fatalf("options = %+v", inquiry.Options)
	}
	if !inquiry.AllowsInput || inquiry.InputLabel != "Other" {
		t.Fatalf("free-form fields lost: %+v", inquiry)
	}
}

func TestGenerateInquiryFromFreeText(t *testing.T) {
	text := `{"question":"What budget range?","options":[],"allowsInput":false}`
	llm := &fakeLLM{responses: []provider.Completion{textCompletion(text)}}
	p := testPipeline(llm, &fakeSearcher{})

	inquiry := p.GenerateInquiry(context.Background(), routerMessages())
	if inquiry.Question != "What budget range?" {
		t.Fatalf("question = %q", inquiry.Question)
	}
	if inquiry.AllowsInput {
		t.Fatal("allowsInput should be false")
	}
}

func TestGenerateInquiryTextWithoutOptionsFallsBack(t *testing.T) {
	llm := &fakeLLM{responses: []provider.Completion{textCompletion(`{"question":"Anything else?"}`)}}
	p := testPipeline(llm, &fakeSearcher{})

	inquiry := p.GenerateInquiry(context.Background(), routerMessages())
	if inquiry.Question != defaultInquiry.Question {
		t.Fatalf("expected default inquiry, got %+v", inquiry)
	}
}

func TestGenerateInquiryGarbageFallsBack(t *testing.T) {
	llm := &fakeLLM{responses: []provider.Completion{textCompletion("let me think about that")}}
	p := testPipeline(llm, &fakeSearcher{})

	inquiry := p.GenerateInquiry(context.Background(), routerMessages())
	if inquiry.Question != defaultInquiry.Question || !inquiry.AllowsInput {
		t.Fatalf("expected default inquiry, got %+v", inquiry)
	}
}

func TestGenerateInquiryProviderErrorFallsBack(t *testing.T) {
	llm := &fakeLLM{errs: []error{errors.New("provider down")}}
	p := testPipeline(llm, &fakeSearcher{})

	inquiry := p.GenerateInquiry(context.Background(), routerMessages())
	if inquiry.Question != defaultInquiry.Question {
		t.Fatalf("expected default inquiry, got %+v", inquiry)
	}
}

func TestGenerateInquiryToolCallWithEmptyQuestionFallsBack(t *testing.T) {
	llm := &fakeLLM{responses: []provider.Completion{toolCompletion("generate_inquiry", `{"question":"","options":[]}`)}}
	p := testPipeline(llm, &fakeSearcher{})

	inquiry := p.GenerateInquiry(context.Background(), routerMessages())
	if inquiry.Question != defaultInquiry.Question {
		t.Fatalf("expected default inquiry, got %+v", inquiry)
	}
}
