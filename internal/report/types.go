// Package report renders the currently visible section of the assessment
// into a paginated image-based PDF.
package report

import "errors"

// Section identifies one exportable view of the assessment.
type Section struct {
	ID    string
	Label string
}

// Sections lists the exportable views in display order.
func Sections() []Section {
	return []Section{
		{ID: "overview", Label: "Radar Overview"},
		{ID: "dimensions", Label: "Dimension Ratings"},
		{ID: "programmatic", Label: "Programmatic Checklist"},
		{ID: "planning", Label: "Planning Notes"},
	}
}

// SectionByID returns the section with the given id.
func SectionByID(id string) (Section, bool) {
	for _, s := range Sections() {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
	Pages    int
}

var (
	// ErrSectionNotFound indicates no visible section was available to
	// export. No file is produced.
	ErrSectionNotFound = errors.New("export section not found")
	// ErrCaptureDegraded indicates rasterization failed and the export
	// fell back to a title page with an inline error annotation. A
	// degraded Result is still returned alongside this error.
	ErrCaptureDegraded = errors.New("export capture degraded")
	// ErrCaptureDependencyMissing indicates the headless browser needed
	// for rasterization is not installed.
	ErrCaptureDependencyMissing = errors.New("export capture dependency missing")
)
