package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lucidquery/lucid/tools/websearch/models"
)

func TestSearchSendsExpectedPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(models.Envelope{
			Query:        "ev safety",
			Answer:       "EVs rate well.",
			Results:      []models.Result{{Title: "IIHS", URL: "https://example.com", Score: 0.9}},
			ResponseTime: 0.8,
		})
	}))
	defer srv.Close()

	client := New("tvly-key", srv.URL, 5*time.Second)
	envelope, err := client.Search(context.Background(), "ev safety", 10, models.DepthAdvanced)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if envelope.Answer != "EVs rate well." || len(envelope.Results) != 1 {
		t.Fatalf("envelope = %+v", envelope)
	}

	if captured["api_key"] != "tvly-key" || captured["query"] != "ev safety" {
		t.Fatalf("payload = %+v", captured)
	}
	if captured["search_depth"] != models.DepthAdvanced {
		t.Fatalf("search_depth = %v", captured["search_depth"])
	}
	if captured["include_images"] != true || captured["include_answers"] != true {
		t.Fatalf("include flags = %+v", captured)
	}
}

func TestSearchEnforcesResultFloor(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(models.Envelope{})
	}))
	defer srv.Close()

	client := New("tvly-key", srv.URL, 5*time.Second)
	if _, err := client.Search(context.Background(), "ev safety", 2, "weird-depth"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured["max_results"] != float64(5) {
		t.Fatalf("max_results = %v, want 5", captured["max_results"])
	}
	// unknown depth normalizes to basic
	if captured["search_depth"] != models.DepthBasic {
		t.Fatalf("search_depth = %v", captured["search_depth"])
	}
}

func TestSearchSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New("bad-key", srv.URL, 5*time.Second)
	_, err := client.Search(context.Background(), "ev safety", 5, models.DepthBasic)
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("error missing status or body: %v", err)
	}
}

func TestSearchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := New("tvly-key", srv.URL, 5*time.Second)
	if _, err := client.Search(ctx, "ev safety", 5, models.DepthBasic); err == nil {
		t.Fatal("expected context error")
	}
}
