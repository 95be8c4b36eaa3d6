package agent

import (
	"context"
	"encoding/json"

	"github.com/lucidquery/lucid/provider"
)

// defaultInquiry is returned whenever the capability cannot produce a
// usable clarification. This path never fails the turn.
var defaultInquiry = Inquiry{
	Question:         "Could you please provide more details about your query?",
	Options:          []InquiryOption{},
	AllowsInput:      true,
	InputLabel:       "Your response",
	InputPlaceholder: "Please provide more details...",
}

var inquiryTool = provider.ToolDef{
	Name:        "generate_inquiry",
	Description: "Generate an inquiry to gather more information from the user",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "The question to ask the user",
			},
			"options": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"value": map[string]interface{}{"type": "string", "description": "The value of the option"},
						"label": map[string]interface{}{"type": "string", "description": "The label to display for the option"},
					},
					"required": []string{"value", "label"},
				},
				"description": "Array of predefined options for the user to choose from",
			},
			"allowsInput": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether to allow free-form input",
			},
			"inputLabel": map[string]interface{}{
				"type":        "string",
				"description": "Label for the free-form input field",
			},
			"inputPlaceholder": map[string]interface{}{
				"type":        "string",
				"description": "Placeholder text for the free-form input field",
			},
		},
		"required": []string{"question", "options", "allowsInput"},
	},
}

// inquiryParsers is the ordered resolution chain for the capability's
// response; the first success wins, exhaustion yields the fixed default.
var inquiryParsers = []func(provider.Completion) (Inquiry, bool){
	parseInquiryToolCall,
	parseInquiryText,
}

// GenerateInquiry produces a structured clarification request.
func (p *Pipeline) GenerateInquiry(ctx context.Context, messages []provider.Message) Inquiry {
	request := append([]provider.Message{{Role: provider.RoleSystem, Content: inquirySystemPrompt}}, messages...)
	completion, err := p.complete(ctx, stageInquiry, request, provider.Options{
		Model: p.model(stageInquiry),
		Tools: []provider.ToolDef{inquiryTool},
	})
	if err != nil {
		p.logger.Printf("inquiry generation failed, using default: %v", err)
		return defaultInquiry
	}
	for _, parse := range inquiryParsers {
		if inquiry, ok := parse(completion); ok {
			return inquiry
		}
	}
	return defaultInquiry
}

// parseInquiryToolCall accepts a generate_inquiry tool call with valid
// arguments.
func parseInquiryToolCall(completion provider.Completion) (Inquiry, bool) {
	if completion.ToolCall == nil || completion.ToolCall.Name != inquiryTool.Name {
		return Inquiry{}, false
	}
	var inquiry Inquiry
	if err := json.Unmarshal([]byte(completion.ToolCall.Arguments), &inquiry); err != nil {
		return Inquiry{}, false
	}
	if inquiry.Question == "" {
		return Inquiry{}, false
	}
	return inquiry, true
}

// parseInquiryText accepts free text that parses as JSON with at least a
// non-empty question string and an options array.
func parseInquiryText(completion provider.Completion) (Inquiry, bool) {
	if completion.Text == "" {
		return Inquiry{}, false
	}
	var probe struct {
		Question         *string          `json:"question"`
		Options          *[]InquiryOption `json:"options"`
		AllowsInput      bool             `json:"allowsInput"`
		InputLabel       string           `json:"inputLabel"`
		InputPlaceholder string           `json:"inputPlaceholder"`
	}
	if err := json.Unmarshal([]byte(completion.Text), &probe); err != nil {
		return Inquiry{}, false
	}
	if probe.Question == nil || *probe.Question == "" || probe.Options == nil {
		return Inquiry{}, false
	}
	return Inquiry{
		Question:         *probe.Question,
		Options:          *probe.Options,
		AllowsInput:      probe.AllowsInput,
		InputLabel:       probe.InputLabel,
		InputPlaceholder: probe.InputPlaceholder,
	}, true
}
