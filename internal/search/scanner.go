package search

import (
	"sort"
	"strings"
	"sync"
)

// Scanner is the in-process fallback searcher: a case-insensitive
// substring scan over the current document's records. The assessment is
// small enough that a linear scan is instant.
type Scanner struct {
	mu      sync.RWMutex
	records []Record
}

// NewScanner creates an empty scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Replace swaps in the records for the latest document.
func (s *Scanner) Replace(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

// Healthy always reports true; the scanner has no external dependency.
func (s *Scanner) Healthy() bool {
	return true
}

// Search performs a substring match against labels and text, ranking
// text matches above label-only matches.
func (s *Scanner) Search(q Query) ([]Result, int, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit == 0 {
		limit = 20
	}

	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	type ranked struct {
		result Result
		score  int
	}
	var matches []ranked
	for _, rec := range records {
		textHit := strings.Contains(strings.ToLower(rec.Text), needle)
		labelHit := strings.Contains(strings.ToLower(rec.Label), needle)
		if !textHit && !labelHit {
			continue
		}
		score := 1
		if textHit {
			score = 2
		}
		matches = append(matches, ranked{
			result: Result{
				Kind:    ResultKind(rec.Kind),
				ID:      rec.ID,
				Label:   rec.Label,
				Snippet: snippet(rec.Text, needle),
			},
			score: score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.result)
	}
	return results, total, nil
}

// snippet trims long text around the first occurrence of the needle.
func snippet(text, needle string) string {
	const window = 80
	idx := strings.Index(strings.ToLower(text), needle)
	if idx < 0 {
		idx = 0
	}
	start := idx - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(text) {
		end = len(text)
	}
	out := text[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}
