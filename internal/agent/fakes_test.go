package agent

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/lucidquery/lucid/config"
	"github.com/lucidquery/lucid/provider"
	"github.com/lucidquery/lucid/tools/websearch"
)

// fakeLLM replays scripted completions in call order.
type fakeLLM struct {
	responses []provider.Completion
	errs      []error
	calls     []fakeCall
}

type fakeCall struct {
	messages []provider.Message
	opts     provider.Options
}

func (f *fakeLLM) Complete(ctx context.Context, messages []provider.Message, opts provider.Options) (provider.Completion, error) {
	i := len(f.calls)
	f.calls = append(f.calls, fakeCall{messages: messages, opts: opts})
	if i < len(f.errs) && f.errs[i] != nil {
		return provider.Completion{}, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return provider.Completion{}, nil
}

func textCompletion(text string) provider.Completion {
	return provider.Completion{Text: text}
}

func toolCompletion(name, arguments string) provider.Completion {
	return provider.Completion{ToolCall: &provider.ToolCall{Name: name, Arguments: arguments}}
}

// fakeSearcher records the last query and returns a fixed envelope.
type fakeSearcher struct {
	envelope websearch.Envelope
	err      error
	calls    int

	lastQuery string
	lastMax   int
	lastDepth string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int, depth string) (websearch.Envelope, error) {
	f.calls++
	f.lastQuery = query
	f.lastMax = maxResults
	f.lastDepth = depth
	if f.err != nil {
		return websearch.Envelope{}, f.err
	}
	return f.envelope, nil
}

func testPipeline(llm provider.Provider, searcher websearch.Searcher) *Pipeline {
	cfg := &config.Config{}
	cfg.Agent = config.AgentConfig{
		MaxResearchAttempts: 3,
		RetryBackoff:        time.Millisecond,
		HistoryWindow:       4,
		ChunkDelay:          0,
	}
	cfg.LLM.Routing = config.LLMRoutingConfig{Fallback: "test-model"}
	return NewPipeline(cfg, llm, searcher, log.New(io.Discard, "", 0))
}

// collector gathers emitted events for assertions.
type collector struct {
	events []StreamEvent
	err    error
}

func (c *collector) emit(event StreamEvent) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

func (c *collector) types() []EventType {
	out := make([]EventType, len(c.events))
	for i, e := range c.events {
		out[i] = e.Type
	}
	return out
}
