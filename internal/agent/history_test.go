package agent

import (
	"encoding/json"
	"io"
	"log"
	"testing"

	"github.com/lucidquery/lucid/provider"
)

var discard = log.New(io.Discard, "", 0)

func TestLoadHistoryMalformedIsSoft(t *testing.T) {
	if got := LoadHistory("{not json", discard); got != nil {
		t.Fatalf("expected empty history, got %v", got)
	}
	if got := LoadHistory("", discard); got != nil {
		t.Fatalf("expected empty history for empty input, got %v", got)
	}
}

func TestLoadHistoryRoundTrip(t *testing.T) {
	serialized := `[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]`
	got := LoadHistory(serialized, discard)
	if len(got) != 2 || got[0].Role != provider.RoleUser || got[1].Content != "hello" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestExtendHistoryTruncatesToWindow(t *testing.T) {
	prior := []provider.Message{
		{Role: provider.RoleUser, Content: "q1"},
		{Role: provider.RoleAssistant, Content: "a1"},
		{Role: provider.RoleUser, Content: "q2"},
		{Role: provider.RoleAssistant, Content: "a2"},
	}
	serialized := ExtendHistory(prior, "q3", "a3", 4)

	var next []provider.Message
	if err := json.Unmarshal([]byte(serialized), &next); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(next) != 4 {
		t.Fatalf("expected window of 4, got %d", len(next))
	}
	if next[0].Content != "q2" || next[3].Content != "a3" {
		t.Fatalf("unexpected window contents: %+v", next)
	}
}

func TestExtendHistoryPreservesOrder(t *testing.T) {
	serialized := ExtendHistory(nil, "question", "answer", 4)
	var next []provider.Message
	if err := json.Unmarshal([]byte(serialized), &next); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(next) != 2 || next[0].Role != provider.RoleUser || next[1].Role != provider.RoleAssistant {
		t.Fatalf("unexpected history: %+v", next)
	}
}

func TestExtendHistorySkipsEmptyUserMessage(t *testing.T) {
	prior := []provider.Message{{Role: provider.RoleUser, Content: "earlier"}}
	serialized := ExtendHistory(prior, "", "answer", 4)
	var next []provider.Message
	if err := json.Unmarshal([]byte(serialized), &next); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(next) != 2 || next[1].Content != "answer" {
		t.Fatalf("unexpected history: %+v", next)
	}
}
