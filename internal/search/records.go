package search

import "radar/api/internal/assessment"

// BuildRecords flattens the document's free-text fields into indexable
// records. Empty fields are skipped; stable field ids double as index
// primary keys so re-indexing overwrites rather than accumulates.
func BuildRecords(doc assessment.Document) []Record {
	var records []Record
	for _, dim := range doc.Dimensions {
		if dim.Evidence == "" {
			continue
		}
		records = append(records, Record{
			ID:    "evidence-" + dim.ID,
			Kind:  string(KindEvidence),
			Label: dim.Name,
			Text:  dim.Evidence,
		})
	}
	for _, item := range doc.ProgrammaticItems {
		if item.Comments == "" {
			continue
		}
		records = append(records, Record{
			ID:    "comment-" + item.ID,
			Kind:  string(KindComment),
			Label: item.Question,
			Text:  item.Comments,
		})
	}
	notes := []struct {
		id    string
		label string
		text  string
	}{
		{assessment.NoteStrengths, "Current Strengths", doc.PlanningNotes.Strengths},
		{assessment.NoteImprovements, "Areas for Improvement", doc.PlanningNotes.Improvements},
		{assessment.NoteChampions, "Champions & Allies", doc.PlanningNotes.Champions},
		{assessment.NoteResources, "Resources Needed", doc.PlanningNotes.Resources},
	}
	for _, note := range notes {
		if note.text == "" {
			continue
		}
		records = append(records, Record{
			ID:    "note-" + note.id,
			Kind:  string(KindNote),
			Label: note.label,
			Text:  note.text,
		})
	}
	return records
}

// AllRecordIDs enumerates every id a document could ever index, so the
// caller can compute which ids went stale after a field was cleared.
func AllRecordIDs(doc assessment.Document) []string {
	ids := make([]string, 0, len(doc.Dimensions)+len(doc.ProgrammaticItems)+4)
	for _, dim := range doc.Dimensions {
		ids = append(ids, "evidence-"+dim.ID)
	}
	for _, item := range doc.ProgrammaticItems {
		ids = append(ids, "comment-"+item.ID)
	}
	for _, field := range []string{
		assessment.NoteStrengths,
		assessment.NoteImprovements,
		assessment.NoteChampions,
		assessment.NoteResources,
	} {
		ids = append(ids, "note-"+field)
	}
	return ids
}
