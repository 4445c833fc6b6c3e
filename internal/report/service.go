package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"radar/api/internal/assessment"
)

// Service assembles section exports. It never writes back to the
// assessment store: exports read a document snapshot taken at invocation
// time.
type Service struct {
	capturer Capturer
	now      func() time.Time
}

// NewService creates an export service using the given capturer.
func NewService(capturer Capturer) *Service {
	return &Service{capturer: capturer, now: time.Now}
}

// NewServiceWithClock creates a service with a fixed clock for tests.
func NewServiceWithClock(capturer Capturer, now func() time.Time) *Service {
	return &Service{capturer: capturer, now: now}
}

// Export renders the given section into a paginated image PDF:
// a generated title page, then the section rasterized as one tall image
// sliced across fixed-size pages.
//
// An unknown or empty section id fails with ErrSectionNotFound before any
// page is produced. A rasterization failure degrades instead: the title
// page is kept, an inline error annotation is added, and the degraded
// Result is returned together with ErrCaptureDegraded.
func (s *Service) Export(ctx context.Context, doc assessment.Document, sectionID string) (*Result, error) {
	section, ok := SectionByID(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, sectionID)
	}

	generated := s.now()
	pdf := newReportPDF(titleInfo{
		ProgramName:  doc.ProgramName,
		SectionLabel: section.Label,
		GeneratedAt:  generated,
	})

	result := &Result{
		Filename: fmt.Sprintf("%s_%s_%s.pdf", assessment.SanitizeName(doc.ProgramName), section.ID, generated.Format("2006-01-02")),
		MimeType: "application/pdf",
		Pages:    1,
	}

	capture, err := s.capture(ctx, doc, section)
	if err == nil {
		pages, sliceErr := appendImagePages(pdf, capture)
		result.Pages += pages
		err = sliceErr
	}
	if err != nil {
		log.Printf("report: capture for section %s degraded: %v", section.ID, err)
		appendErrorAnnotation(pdf, err)
		data, outErr := outputPDF(pdf)
		if outErr != nil {
			return nil, outErr
		}
		result.Data = data
		return result, fmt.Errorf("%w: %v", ErrCaptureDegraded, err)
	}

	data, err := outputPDF(pdf)
	if err != nil {
		return nil, err
	}
	result.Data = data
	return result, nil
}

func (s *Service) capture(ctx context.Context, doc assessment.Document, section Section) ([]byte, error) {
	html, err := RenderSection(doc, section)
	if err != nil {
		return nil, err
	}
	return s.capturer.Capture(ctx, html)
}
