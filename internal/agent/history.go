package agent

import (
	"encoding/json"
	"log"

	"github.com/lucidquery/lucid/provider"
)

// DefaultHistoryWindow is the number of recent messages carried between
// turns. Older context is dropped, not summarized.
const DefaultHistoryWindow = 4

// LoadHistory deserializes the prior conversation history. Malformed
// input yields an empty history; it is logged but never fatal.
func LoadHistory(serialized string, logger *log.Logger) []provider.Message {
	if serialized == "" {
		return nil
	}
	var messages []provider.Message
	if err := json.Unmarshal([]byte(serialized), &messages); err != nil {
		if logger != nil {
			logger.Printf("malformed message history, starting fresh: %v", err)
		}
		return nil
	}
	return messages
}

// ExtendHistory appends the new user and assistant messages to the prior
// history, truncates to the most recent window messages, and serializes
// the result for round-tripping through the caller.
func ExtendHistory(prior []provider.Message, userMessage, assistantMessage string, window int) string {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	next := make([]provider.Message, 0, len(prior)+2)
	next = append(next, prior...)
	if userMessage != "" {
		next = append(next, provider.Message{Role: provider.RoleUser, Content: userMessage})
	}
	if assistantMessage != "" {
		next = append(next, provider.Message{Role: provider.RoleAssistant, Content: assistantMessage})
	}
	if len(next) > window {
		next = next[len(next)-window:]
	}
	raw, err := json.Marshal(next)
	if err != nil {
		// []Message with string fields cannot fail to marshal; keep the
		// contract total anyway.
		return "[]"
	}
	return string(raw)
}
