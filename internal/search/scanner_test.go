package search

import (
	"testing"
	"time"

	"radar/api/internal/assessment"
)

func indexedDocument() assessment.Document {
	doc := assessment.DefaultDocument(time.Now())
	doc.Dimensions[0].Evidence = "Program director chairs the assessment committee"
	doc.ProgrammaticItems[0].Comments = "Milestones reviewed by the committee each semester"
	doc.PlanningNotes.Strengths = "Strong committee culture"
	return doc
}

func TestBuildRecordsSkipsEmptyFields(t *testing.T) {
	doc := assessment.DefaultDocument(time.Now())
	if got := BuildRecords(doc); len(got) != 0 {
		t.Errorf("empty document should produce no records, got %d", len(got))
	}

	records := BuildRecords(indexedDocument())
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	kinds := map[string]bool{}
	for _, rec := range records {
		kinds[rec.Kind] = true
	}
	for _, kind := range []string{"evidence", "comment", "note"} {
		if !kinds[kind] {
			t.Errorf("missing record kind %s", kind)
		}
	}
}

func TestScannerSearch(t *testing.T) {
	scanner := NewScanner()
	scanner.Replace(BuildRecords(indexedDocument()))

	results, total, err := scanner.Search(Query{Text: "committee"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 hits for 'committee', got %d", total)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestScannerSearchCaseInsensitive(t *testing.T) {
	scanner := NewScanner()
	scanner.Replace(BuildRecords(indexedDocument()))

	_, total, err := scanner.Search(Query{Text: "MILESTONES"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 hit, got %d", total)
	}
}

func TestScannerSearchEmptyQuery(t *testing.T) {
	scanner := NewScanner()
	scanner.Replace(BuildRecords(indexedDocument()))

	results, total, err := scanner.Search(Query{Text: "   "})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 0 || len(results) != 0 {
		t.Error("blank query must match nothing")
	}
}

func TestScannerSearchLimit(t *testing.T) {
	scanner := NewScanner()
	scanner.Replace(BuildRecords(indexedDocument()))

	results, total, err := scanner.Search(Query{Text: "committee", Limit: 1})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total must count all matches, got %d", total)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result with limit 1, got %d", len(results))
	}
}

func TestServiceFallsBackWithoutMeili(t *testing.T) {
	svc := NewService(nil, NewScanner())
	svc.IndexDocument(indexedDocument())

	resp := svc.Search(Query{Text: "director"})
	if resp.Total != 1 {
		t.Errorf("expected 1 hit via scanner fallback, got %d", resp.Total)
	}
	if resp.Results[0].Kind != KindEvidence {
		t.Errorf("expected evidence hit, got %s", resp.Results[0].Kind)
	}
}

func TestServiceReindexDropsClearedFields(t *testing.T) {
	svc := NewService(nil, NewScanner())
	doc := indexedDocument()
	svc.IndexDocument(doc)

	doc.Dimensions[0].Evidence = ""
	svc.IndexDocument(doc)

	resp := svc.Search(Query{Text: "director"})
	if resp.Total != 0 {
		t.Errorf("cleared evidence still searchable: %d hits", resp.Total)
	}
}
