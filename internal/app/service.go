package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"radar/api/internal/archive"
	"radar/api/internal/assessment"
	"radar/api/internal/metrics"
	"radar/api/internal/report"
	"radar/api/internal/search"
	"radar/api/internal/snapshot"
)

// FileDownload is a portable-file export offered to the user.
type FileDownload struct {
	Data     []byte
	Filename string
	MimeType string
}

// Service orchestrates the document store, persistence, search, and
// report export, and converts every operation outcome into a
// notification. Errors never escape Save/Load/Export to crash the app.
type Service struct {
	store     *assessment.Store
	snapshots snapshot.Store
	reports   *report.Service
	searcher  *search.Service
	archiver  *archive.Service
	notifier  Notifier

	mu            sync.Mutex
	activeSection string
}

// New wires the service. archiver may be nil when archiving is not
// configured.
func New(store *assessment.Store, snapshots snapshot.Store, reports *report.Service, searcher *search.Service, archiver *archive.Service, notifier Notifier) *Service {
	s := &Service{
		store:     store,
		snapshots: snapshots,
		reports:   reports,
		searcher:  searcher,
		archiver:  archiver,
		notifier:  notifier,
	}
	store.Subscribe(func(doc assessment.Document) {
		searcher.IndexDocument(doc)
	})
	return s
}

// Bootstrap restores the saved snapshot, if any. An empty slot keeps the
// seeded default document; an invalid slot keeps the default and warns,
// for parity with file-import error reporting.
func (s *Service) Bootstrap(ctx context.Context) {
	doc, err := s.snapshots.Load(ctx)
	switch {
	case err == nil:
		s.store.Replace(doc)
		log.Printf("bootstrap: restored saved assessment for program %q", doc.ProgramName)
	case errors.Is(err, snapshot.ErrNoSnapshot):
		s.searcher.IndexDocument(s.store.Document())
	default:
		log.Printf("bootstrap: saved assessment unusable, starting fresh: %v", err)
		s.notifier.Notify("Saved Data Ignored",
			"The previously saved assessment could not be read and a fresh one was started.",
			VariantDestructive)
		s.searcher.IndexDocument(s.store.Document())
	}
}

// Document returns a snapshot of the current document.
func (s *Service) Document() assessment.Document {
	return s.store.Document()
}

// Field mutators. Validation is by construction: ratings clamp, unknown
// ids are no-ops, so these cannot fail.

func (s *Service) SetProgramName(name string)             { s.store.SetProgramName(name) }
func (s *Service) SetDimensionRating(id string, r int)    { s.store.SetDimensionRating(id, r) }
func (s *Service) SetDimensionEvidence(id, text string)   { s.store.SetDimensionEvidence(id, text) }
func (s *Service) SetProgrammaticComments(id, text string) {
	s.store.SetProgrammaticComments(id, text)
}
func (s *Service) SetProgrammaticAnswer(id string, answer assessment.Answer) {
	s.store.SetProgrammaticAnswer(id, answer)
}
func (s *Service) SetPlanningNotes(field, text string) { s.store.SetPlanningNotes(field, text) }

// Save writes the current document to the durable slot.
func (s *Service) Save(ctx context.Context) error {
	if err := s.snapshots.Save(ctx, s.store.Document()); err != nil {
		metrics.RecordOperation("save", false)
		s.notifier.Notify("Save Failed", "Your assessment data could not be saved.", VariantDestructive)
		return fmt.Errorf("save assessment: %w", err)
	}
	metrics.RecordOperation("save", true)
	s.notifier.Notify("Assessment Saved", "Your assessment data has been saved successfully.", VariantNormal)
	return nil
}

// Load replaces the document from the durable slot. On any failure the
// current document is left untouched.
func (s *Service) Load(ctx context.Context) error {
	doc, err := s.snapshots.Load(ctx)
	if err != nil {
		metrics.RecordOperation("load", false)
		switch {
		case errors.Is(err, snapshot.ErrNoSnapshot):
			s.notifier.Notify("No Saved Data", "There is no saved assessment data to load.", VariantDestructive)
		case errors.Is(err, assessment.ErrParse):
			s.notifier.Notify("Load Failed", "The saved assessment data is corrupted and could not be read.", VariantDestructive)
		case errors.Is(err, assessment.ErrStructure):
			s.notifier.Notify("Load Failed", "The saved data is not an assessment document.", VariantDestructive)
		default:
			s.notifier.Notify("Load Failed", "The saved assessment could not be loaded.", VariantDestructive)
		}
		return fmt.Errorf("load assessment: %w", err)
	}
	s.store.Replace(doc)
	metrics.RecordOperation("load", true)
	s.notifier.Notify("Assessment Loaded", "Your assessment data has been loaded from storage.", VariantNormal)
	return nil
}

// Reset restores the default document and clears the durable slot. The
// confirmed flag carries the user's answer to the confirmation prompt;
// without it nothing happens.
func (s *Service) Reset(ctx context.Context, confirmed bool) bool {
	if !s.store.Reset(func() bool { return confirmed }) {
		return false
	}
	if err := s.snapshots.Clear(ctx); err != nil {
		log.Printf("reset: clear snapshot: %v", err)
	}
	metrics.RecordOperation("reset", true)
	s.notifier.Notify("Assessment Reset", "The assessment has been reset to default values.", VariantNormal)
	return true
}

// ExportFile serializes the document to the portable file form.
func (s *Service) ExportFile() (*FileDownload, error) {
	doc := s.store.Document()
	data, err := assessment.EncodeFile(doc)
	if err != nil {
		metrics.RecordOperation("export_file", false)
		s.notifier.Notify("Export Failed", "The assessment data could not be serialized.", VariantDestructive)
		return nil, err
	}
	download := &FileDownload{
		Data:     data,
		Filename: assessment.FileName(doc.ProgramName, time.Now()),
		MimeType: "application/json",
	}
	metrics.RecordOperation("export_file", true)
	s.notifier.Notify("Assessment Exported", "Your assessment data file is ready to download.", VariantNormal)
	s.archiveAsync(download.Filename, download.Data, download.MimeType)
	return download, nil
}

// ImportFile validates uploaded data and, only when it passes, replaces
// the document wholesale. Parse and structure failures are reported
// distinctly and leave the document unchanged.
func (s *Service) ImportFile(data []byte) error {
	doc, err := assessment.DecodeFile(data)
	if err != nil {
		metrics.RecordOperation("import_file", false)
		if errors.Is(err, assessment.ErrStructure) {
			s.notifier.Notify("Invalid File Structure", "That file is not an assessment data file.", VariantDestructive)
		} else {
			s.notifier.Notify("Import Failed", "The selected file is not valid JSON.", VariantDestructive)
		}
		return err
	}
	s.store.Replace(doc)
	metrics.RecordOperation("import_file", true)
	s.notifier.Notify("Assessment Imported", "Your assessment data has been loaded from the file.", VariantNormal)
	return nil
}

// SetActiveSection records which section of the interface is currently
// visible. This is the one piece of view state the core reads.
func (s *Service) SetActiveSection(id string) error {
	if id != "" {
		if _, ok := report.SectionByID(id); !ok {
			return domainError(400, "UNKNOWN_SECTION", fmt.Sprintf("Unknown section %q", id), nil)
		}
	}
	s.mu.Lock()
	s.activeSection = id
	s.mu.Unlock()
	return nil
}

// ActiveSection returns the currently visible section id, empty when no
// view has reported one yet.
func (s *Service) ActiveSection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSection
}

// ExportReport renders the currently visible section to a paginated PDF.
// The document is read once at invocation time; the export never writes
// back to the store.
func (s *Service) ExportReport(ctx context.Context) (*report.Result, error) {
	doc := s.store.Document()
	result, err := s.reports.Export(ctx, doc, s.ActiveSection())
	switch {
	case err == nil:
		metrics.RecordOperation("export_report", true)
		metrics.RecordExportPages(result.Pages)
		s.notifier.Notify("Report Exported", fmt.Sprintf("A %d-page report is ready to download.", result.Pages), VariantNormal)
		s.archiveAsync(result.Filename, result.Data, result.MimeType)
		return result, nil
	case errors.Is(err, report.ErrCaptureDegraded):
		// Partial recovery: the title page survived with an inline error
		// annotation, so still offer it.
		metrics.RecordOperation("export_report", false)
		s.notifier.Notify("Report Export Incomplete",
			"The visible section could not be captured; a partial report was produced.", VariantDestructive)
		s.archiveAsync(result.Filename, result.Data, result.MimeType)
		return result, err
	case errors.Is(err, report.ErrSectionNotFound):
		metrics.RecordOperation("export_report", false)
		s.notifier.Notify("Export Failed", "No visible section is available to export.", VariantDestructive)
		return nil, err
	default:
		metrics.RecordOperation("export_report", false)
		s.notifier.Notify("Export Failed", "The report could not be generated.", VariantDestructive)
		return nil, err
	}
}

// Search queries the assessment's free-text fields.
func (s *Service) Search(q search.Query) search.Response {
	return s.searcher.Search(q)
}

// Notifications returns the recent outcome feed when the notifier is the
// in-memory hub.
func (s *Service) Notifications() []Notification {
	if hub, ok := s.notifier.(*Hub); ok {
		return hub.Recent()
	}
	return nil
}

// Ping checks the durable store.
func (s *Service) Ping(ctx context.Context) error {
	return s.snapshots.Ping(ctx)
}

func (s *Service) archiveAsync(filename string, data []byte, contentType string) {
	if s.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.archiver.Put(ctx, filename, data, contentType)
	}()
}
