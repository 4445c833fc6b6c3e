package assessment

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := DefaultDocument(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	doc.ProgramName = "Biology"
	doc.Dimensions[0].CurrentRating = 3
	doc.Dimensions[0].Evidence = "formal governance role since 2025"
	doc.ProgrammaticItems[0].Answer = Yes
	doc.ProgrammaticItems[1].Answer = No
	doc.PlanningNotes.Strengths = "engaged staff"

	data, err := EncodeFile(doc)
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}

	decoded, err := DecodeFile(data)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	if !reflect.DeepEqual(doc, decoded) {
		t.Error("round trip did not preserve the document")
	}
}

func TestDecodeFileMalformedJSON(t *testing.T) {
	prev := DefaultDocument(time.Now())
	_, err := DecodeFile([]byte(`{"programName": "Bio`))
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	// Decoding never touches the caller's document.
	if len(prev.Dimensions) != 14 {
		t.Error("prior document changed")
	}
}

func TestDecodeFileInvalidStructure(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"top level array", `[1, 2, 3]`},
		{"top level scalar", `"just a string"`},
		{"missing dimensions", `{"programmaticItems": [], "planningNotes": {}}`},
		{"dimensions not array", `{"dimensions": 5, "programmaticItems": [], "planningNotes": {}}`},
		{"items not array", `{"dimensions": [], "programmaticItems": "nope", "planningNotes": {}}`},
		{"planning notes not object", `{"dimensions": [], "programmaticItems": [], "planningNotes": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFile([]byte(tt.input))
			if !errors.Is(err, ErrStructure) {
				t.Errorf("expected ErrStructure, got %v", err)
			}
			if errors.Is(err, ErrParse) {
				t.Error("structure errors must be distinct from parse errors")
			}
		})
	}
}

func TestAnswerWireFormat(t *testing.T) {
	doc := DefaultDocument(time.Now())
	doc.ProgrammaticItems[0].Answer = Yes
	doc.ProgrammaticItems[1].Answer = No

	data, err := EncodeFile(doc)
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"answer": true`) {
		t.Error("yes answer must serialize as true")
	}
	if !strings.Contains(text, `"answer": false`) {
		t.Error("no answer must serialize as false")
	}
	if !strings.Contains(text, `"answer": null`) {
		t.Error("unanswered must serialize as null")
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		program  string
		expected string
	}{
		{"plain program name", "Biology", "Biology_assessment_data_2026-03-14.json"},
		{"spaces become hyphens", "Marine Biology", "Marine-Biology_assessment_data_2026-03-14.json"},
		{"empty falls back", "", "program_assessment_data_2026-03-14.json"},
		{"special chars stripped", "B.Sc. (Hons)!", "BSc-Hons_assessment_data_2026-03-14.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.program, now); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
