// Package search provides free-text search over the assessment's text
// fields: dimension evidence, checklist comments, and planning notes.
package search

// ResultKind identifies the kind of text field a search hit came from.
type ResultKind string

const (
	KindEvidence ResultKind = "evidence"
	KindComment  ResultKind = "comment"
	KindNote     ResultKind = "note"
)

// Result is a single search hit returned to the caller.
type Result struct {
	Kind    ResultKind `json:"kind"`
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Snippet string     `json:"snippet"`
}

// Query describes a search request.
type Query struct {
	Text  string
	Limit int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Record is one indexed text field.
type Record struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}
