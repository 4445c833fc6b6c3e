package search

import (
	"log"

	"radar/api/internal/assessment"
)

// Service is the facade that tries Meilisearch first and falls back to
// the in-process scanner.
type Service struct {
	meili   *Meili
	scanner *Scanner
}

// NewService creates a search service. meili may be nil if Meilisearch is
// not configured.
func NewService(meili *Meili, scanner *Scanner) *Service {
	return &Service{meili: meili, scanner: scanner}
}

// Search tries Meilisearch if healthy, otherwise falls back to the
// scanner.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to scanner: %v", err)
	}

	results, total, err := s.scanner.Search(q)
	if err != nil {
		log.Printf("search: scanner error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// IndexDocument reindexes the document's text fields. The scanner is
// updated synchronously; Meilisearch indexing is fire-and-forget.
func (s *Service) IndexDocument(doc assessment.Document) {
	records := BuildRecords(doc)
	s.scanner.Replace(records)

	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	present := make(map[string]bool, len(records))
	for _, rec := range records {
		present[rec.ID] = true
	}
	var stale []string
	for _, id := range AllRecordIDs(doc) {
		if !present[id] {
			stale = append(stale, id)
		}
	}
	go func() {
		if err := s.meili.ReplaceRecords(records, stale); err != nil {
			log.Printf("search: reindex assessment: %v", err)
		}
	}()
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
