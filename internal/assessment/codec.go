package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrParse indicates data that is not well-formed JSON at all.
	ErrParse = errors.New("assessment data is not valid JSON")
	// ErrStructure indicates well-formed JSON that is not an assessment
	// document (missing or wrong-typed structural keys).
	ErrStructure = errors.New("assessment data has invalid structure")
)

// EncodeFile serializes a document to the portable file form.
func EncodeFile(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal assessment: %w", err)
	}
	return data, nil
}

// DecodeFile parses and shape-validates portable assessment data. The
// check is deliberately minimal: dimensions and programmaticItems must be
// arrays and planningNotes an object. Anything that passes is accepted
// verbatim; there is no per-field repair.
func DecodeFile(data []byte) (Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	top, ok := raw.(map[string]any)
	if !ok {
		return Document{}, fmt.Errorf("%w: top level is not an object", ErrStructure)
	}
	if _, ok := top["dimensions"].([]any); !ok {
		return Document{}, fmt.Errorf("%w: dimensions is not an array", ErrStructure)
	}
	if _, ok := top["programmaticItems"].([]any); !ok {
		return Document{}, fmt.Errorf("%w: programmaticItems is not an array", ErrStructure)
	}
	if _, ok := top["planningNotes"].(map[string]any); !ok {
		return Document{}, fmt.Errorf("%w: planningNotes is not an object", ErrStructure)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrStructure, err)
	}
	return doc, nil
}

// FileName derives the portable export filename from the program name and
// the given date.
func FileName(programName string, now time.Time) string {
	return fmt.Sprintf("%s_assessment_data_%s.json", SanitizeName(programName), now.Format("2006-01-02"))
}

// SanitizeName creates a safe filename fragment from free text.
func SanitizeName(name string) string {
	result := ""
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			result += string(r)
		case r == ' ':
			result += "-"
		case r == '-', r == '_':
			result += string(r)
		default:
			// Skip other characters
		}
	}

	if len(result) > 50 {
		result = result[:50]
	}

	if result == "" {
		result = "program"
	}

	return result
}
