package agent

import (
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lucidquery/lucid/config"
	"github.com/lucidquery/lucid/internal/agent/telemetry"
	"github.com/lucidquery/lucid/provider"
	"github.com/lucidquery/lucid/tools/websearch"

	"context"
)

// Pipeline drives one conversational turn: routing, optional inquiry,
// the research loop, chunked streaming and the history window. It keeps
// no state between turns; every invocation is a pure function of the new
// input and the serialized prior history.
type Pipeline struct {
	cfg      config.AgentConfig
	routing  config.LLMRoutingConfig
	llm      provider.Provider
	searcher websearch.Searcher
	logger   *log.Logger
}

// Pipeline stages, used for model routing and metrics labels.
const (
	stageRouter      = "router"
	stageInquiry     = "inquiry"
	stageResearch    = "research"
	stageSynthesis   = "synthesis"
	stageSuggestions = "suggestions"
)

var pipelineTracer trace.Tracer = otel.Tracer("lucid/internal/agent")

// NewPipeline creates a turn pipeline.
func NewPipeline(cfg *config.Config, llm provider.Provider, searcher websearch.Searcher, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	agentCfg := cfg.Agent
	if agentCfg.MaxResearchAttempts <= 0 {
		agentCfg.MaxResearchAttempts = 3
	}
	if agentCfg.HistoryWindow <= 0 {
		agentCfg.HistoryWindow = DefaultHistoryWindow
	}
	return &Pipeline{
		cfg:      agentCfg,
		routing:  cfg.LLM.Routing,
		llm:      llm,
		searcher: searcher,
		logger:   logger,
	}
}

// model resolves the configured model for a stage, falling back to the
// routing fallback when unset.
func (p *Pipeline) model(stage string) string {
	var m string
	switch stage {
	case stageRouter:
		m = p.routing.Router
	case stageInquiry:
		m = p.routing.Inquiry
	case stageResearch:
		m = p.routing.Research
	case stageSynthesis:
		m = p.routing.Synthesis
	case stageSuggestions:
		m = p.routing.Suggestions
	}
	if m == "" {
		m = p.routing.Fallback
	}
	return m
}

// complete wraps the provider call with stage metrics.
func (p *Pipeline) complete(ctx context.Context, stage string, messages []provider.Message, opts provider.Options) (provider.Completion, error) {
	start := time.Now()
	completion, err := p.llm.Complete(ctx, messages, opts)
	telemetry.LLMRequestDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	telemetry.LLMRequests.WithLabelValues(stage, status).Inc()
	return completion, err
}

// Run executes one turn. Events are delivered in order through emit:
// either a single terminal inquiry event, or search_data? -> chunk* ->
// complete. A router failure propagates as an error; every other failure
// degrades inside its stage. An emit error or context cancellation stops
// the turn at the next suspension point.
func (p *Pipeline) Run(ctx context.Context, input, priorHistory string, emit EmitFunc) error {
	ctx, span := pipelineTracer.Start(ctx, "agent.turn")
	defer span.End()

	prior := LoadHistory(priorHistory, p.logger)
	messages := make([]provider.Message, len(prior))
	copy(messages, prior)

	skip := input == SkipRoutingInput
	span.SetAttributes(attribute.Bool("turn.skip_routing", skip))

	var userMessage string
	if !skip {
		userMessage = input
		messages = append(messages, provider.Message{Role: provider.RoleUser, Content: input})
	}

	decision := DecisionProceed
	if !skip {
		d, err := p.Classify(ctx, messages)
		if err != nil {
			telemetry.TurnsTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		decision = d
	}
	span.SetAttributes(attribute.String("turn.decision", string(decision)))

	if decision == DecisionInquire {
		inquiry := p.GenerateInquiry(ctx, messages)
		telemetry.TurnsTotal.WithLabelValues("inquiry").Inc()
		return emit(StreamEvent{Type: EventInquiry, Inquiry: &inquiry})
	}

	finalText, err := p.Research(ctx, messages, emit)
	if err != nil {
		telemetry.TurnsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := p.streamChunks(ctx, finalText, emit); err != nil {
		return err
	}

	related := p.SuggestRelated(ctx, messages)

	nextHistory := ExtendHistory(prior, userMessage, finalText, p.cfg.HistoryWindow)
	telemetry.TurnsTotal.WithLabelValues("complete").Inc()
	return emit(StreamEvent{
		Type:           EventComplete,
		MessageHistory: nextHistory,
		RelatedQueries: related,
	})
}

// streamChunks emits the final text one sentence at a time with a fixed
// pacing delay between chunks.
func (p *Pipeline) streamChunks(ctx context.Context, text string, emit EmitFunc) error {
	for _, sentence := range SplitSentences(text) {
		if err := emit(StreamEvent{Type: EventChunk, Text: sentence + " "}); err != nil {
			return err
		}
		telemetry.ChunksEmitted.Inc()
		if p.cfg.ChunkDelay > 0 {
			select {
			case <-time.After(p.cfg.ChunkDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
