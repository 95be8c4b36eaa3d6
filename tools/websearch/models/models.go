package models

// Search depth levels understood by providers.
const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"
)

// Result is a single ranked search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// Envelope is the full payload of one search round-trip.
type Envelope struct {
	Query        string   `json:"query,omitempty"`
	Answer       string   `json:"answer"`
	Images       []string `json:"images"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time"`
}
