package agent

import (
	"fmt"

	"github.com/lucidquery/lucid/tools/websearch"
)

// Decision is the router's classification of a turn.
type Decision string

const (
	DecisionProceed Decision = "proceed"
	DecisionInquire Decision = "inquire"
)

// SkipRoutingInput is the caller-supplied literal that bypasses the
// router and forces a proceed turn, used when the user is answering a
// prior clarification. The prior history already carries their response.
const SkipRoutingInput = "skip"

// InquiryOption is one predefined choice of a clarification prompt.
type InquiryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Inquiry is a structured clarification request presented to the user.
type Inquiry struct {
	Question         string          `json:"question"`
	Options          []InquiryOption `json:"options"`
	AllowsInput      bool            `json:"allowsInput"`
	InputLabel       string          `json:"inputLabel,omitempty"`
	InputPlaceholder string          `json:"inputPlaceholder,omitempty"`
}

// StructuredAnswer is the canonical shape of a finished answer.
type StructuredAnswer struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Details   string   `json:"details"`
	Sources   []string `json:"sources"`
}

// EventType discriminates stream event variants.
type EventType string

const (
	EventInquiry    EventType = "inquiry"
	EventSearchData EventType = "search_data"
	EventChunk      EventType = "chunk"
	EventComplete   EventType = "complete"
)

// SearchData is the search envelope shared with the consumer. The answer
// summary is withheld; it feeds synthesis, not direct display.
type SearchData struct {
	Images       []string           `json:"images"`
	Results      []websearch.Result `json:"results"`
	ResponseTime float64            `json:"response_time"`
}

// StreamEvent is one element of the ordered turn stream. Exactly one
// terminal event (inquiry or complete) ends a turn.
type StreamEvent struct {
	Type           EventType   `json:"type"`
	Inquiry        *Inquiry    `json:"inquiry,omitempty"`
	SearchData     *SearchData `json:"searchData,omitempty"`
	Text           string      `json:"text,omitempty"`
	MessageHistory string      `json:"messageHistory,omitempty"`
	RelatedQueries []string    `json:"relatedQueries,omitempty"`
}

// EmitFunc delivers one stream event to the consumer. A non-nil error
// means the consumer is gone and the turn must stop.
type EmitFunc func(StreamEvent) error

// ResearchExhaustedError reports that every bounded research attempt
// produced an empty answer.
type ResearchExhaustedError struct {
	Attempts int
}

func (e *ResearchExhaustedError) Error() string {
	return fmt.Sprintf("research exhausted after %d attempts without a usable answer", e.Attempts)
}
