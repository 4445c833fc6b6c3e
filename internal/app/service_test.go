package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"reflect"
	"testing"
	"time"

	"radar/api/internal/assessment"
	"radar/api/internal/report"
	"radar/api/internal/search"
	"radar/api/internal/snapshot"
)

type fakeSnapshots struct {
	saveFn  func(context.Context, assessment.Document) error
	loadFn  func(context.Context) (assessment.Document, error)
	clearFn func(context.Context) error

	saved   *assessment.Document
	cleared bool
}

func (f *fakeSnapshots) Save(ctx context.Context, doc assessment.Document) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, doc)
	}
	clone := doc.Clone()
	f.saved = &clone
	return nil
}

func (f *fakeSnapshots) Load(ctx context.Context) (assessment.Document, error) {
	if f.loadFn != nil {
		return f.loadFn(ctx)
	}
	if f.saved == nil {
		return assessment.Document{}, snapshot.ErrNoSnapshot
	}
	return f.saved.Clone(), nil
}

func (f *fakeSnapshots) Clear(ctx context.Context) error {
	if f.clearFn != nil {
		return f.clearFn(ctx)
	}
	f.saved = nil
	f.cleared = true
	return nil
}

func (f *fakeSnapshots) Ping(context.Context) error { return nil }
func (f *fakeSnapshots) Close() error               { return nil }

type stubCapturer struct {
	err error
}

func (c *stubCapturer) Capture(context.Context, string) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return onePixelPNG(), nil
}

func onePixelPNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func newTestService(snapshots snapshot.Store, capturer report.Capturer) (*Service, *Hub) {
	if snapshots == nil {
		snapshots = &fakeSnapshots{}
	}
	if capturer == nil {
		capturer = &stubCapturer{}
	}
	hub := NewHub(20)
	store := assessment.NewStore(assessment.DefaultDocument(time.Now()))
	reports := report.NewService(capturer)
	searcher := search.NewService(nil, search.NewScanner())
	return New(store, snapshots, reports, searcher, nil, hub), hub
}

func lastNotification(t *testing.T, hub *Hub) Notification {
	t.Helper()
	recent := hub.Recent()
	if len(recent) == 0 {
		t.Fatal("expected a notification")
	}
	return recent[0]
}

func TestSaveThenLoadRestoresDocument(t *testing.T) {
	snapshots := &fakeSnapshots{}
	svc, hub := newTestService(snapshots, nil)
	ctx := context.Background()

	svc.SetProgramName("Biology")
	svc.SetDimensionRating("leadership", 3)

	if err := svc.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if n := lastNotification(t, hub); n.Variant != VariantNormal || n.Title != "Assessment Saved" {
		t.Errorf("unexpected save notification: %+v", n)
	}

	// Wipe the in-memory document, then restore from the snapshot.
	svc.SetProgramName("")
	svc.SetDimensionRating("leadership", 1)

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	doc := svc.Document()
	if doc.ProgramName != "Biology" {
		t.Errorf("expected restored program name Biology, got %q", doc.ProgramName)
	}
	dim, _ := doc.Dimension("leadership")
	if dim.CurrentRating != 3 {
		t.Errorf("expected restored leadership rating 3, got %d", dim.CurrentRating)
	}
}

func TestLoadWithoutSnapshotLeavesDocumentUntouched(t *testing.T) {
	svc, hub := newTestService(&fakeSnapshots{}, nil)

	svc.SetProgramName("Biology")
	before := svc.Document()

	if err := svc.Load(context.Background()); !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	if !reflect.DeepEqual(before, svc.Document()) {
		t.Error("failed load changed the document")
	}
	if n := lastNotification(t, hub); n.Variant != VariantDestructive || n.Title != "No Saved Data" {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestLoadFailureLeavesDocumentUntouched(t *testing.T) {
	snapshots := &fakeSnapshots{loadFn: func(context.Context) (assessment.Document, error) {
		return assessment.Document{}, fmt.Errorf("%w: broken payload", assessment.ErrParse)
	}}
	svc, hub := newTestService(snapshots, nil)

	svc.SetProgramName("Biology")
	before := svc.Document()

	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if !reflect.DeepEqual(before, svc.Document()) {
		t.Error("failed load changed the document")
	}
	if n := lastNotification(t, hub); n.Variant != VariantDestructive {
		t.Errorf("expected destructive notification, got %+v", n)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	snapshots := &fakeSnapshots{}
	svc, _ := newTestService(snapshots, nil)
	ctx := context.Background()

	svc.SetProgramName("Biology")
	if err := svc.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if svc.Reset(ctx, false) {
		t.Error("unconfirmed reset must not apply")
	}
	if svc.Document().ProgramName != "Biology" {
		t.Error("unconfirmed reset changed the document")
	}
	if snapshots.cleared {
		t.Error("unconfirmed reset cleared the snapshot")
	}

	if !svc.Reset(ctx, true) {
		t.Error("confirmed reset did not apply")
	}
	if svc.Document().ProgramName != "" {
		t.Error("confirmed reset did not restore defaults")
	}
	if !snapshots.cleared {
		t.Error("confirmed reset must clear the durable slot")
	}
}

func TestImportFileParseAndStructureErrors(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantErr   error
		wantTitle string
	}{
		{"malformed", `{"dimensions": [`, assessment.ErrParse, "Import Failed"},
		{"wrong shape", `{"dimensions": 7, "programmaticItems": [], "planningNotes": {}}`, assessment.ErrStructure, "Invalid File Structure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, hub := newTestService(nil, nil)
			svc.SetProgramName("Biology")
			before := svc.Document()

			err := svc.ImportFile([]byte(tt.payload))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(before, svc.Document()) {
				t.Error("rejected import changed the document")
			}
			if n := lastNotification(t, hub); n.Title != tt.wantTitle || n.Variant != VariantDestructive {
				t.Errorf("unexpected notification: %+v", n)
			}
		})
	}
}

func TestImportFileRoundTrip(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	svc.SetProgramName("Biology")
	svc.SetProgrammaticAnswer("milestones", assessment.Yes)

	download, err := svc.ExportFile()
	if err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	other, _ := newTestService(nil, nil)
	if err := other.ImportFile(download.Data); err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if !reflect.DeepEqual(svc.Document(), other.Document()) {
		t.Error("file round trip did not preserve the document")
	}
}

func TestExportReportNoVisibleSection(t *testing.T) {
	svc, hub := newTestService(nil, nil)

	result, err := svc.ExportReport(context.Background())
	if !errors.Is(err, report.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if result != nil {
		t.Error("no file must be produced without a visible section")
	}
	if n := lastNotification(t, hub); n.Variant != VariantDestructive {
		t.Errorf("expected destructive notification, got %+v", n)
	}
}

func TestExportReportVisibleSection(t *testing.T) {
	svc, hub := newTestService(nil, nil)
	if err := svc.SetActiveSection("planning"); err != nil {
		t.Fatalf("SetActiveSection failed: %v", err)
	}

	result, err := svc.ExportReport(context.Background())
	if err != nil {
		t.Fatalf("ExportReport failed: %v", err)
	}
	if result.Pages < 2 {
		t.Errorf("expected a title page plus content, got %d pages", result.Pages)
	}
	if n := lastNotification(t, hub); n.Title != "Report Exported" {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestExportReportDegradedCapture(t *testing.T) {
	svc, hub := newTestService(nil, &stubCapturer{err: fmt.Errorf("renderer crashed")})
	if err := svc.SetActiveSection("overview"); err != nil {
		t.Fatalf("SetActiveSection failed: %v", err)
	}

	result, err := svc.ExportReport(context.Background())
	if !errors.Is(err, report.ErrCaptureDegraded) {
		t.Fatalf("expected ErrCaptureDegraded, got %v", err)
	}
	if result == nil || len(result.Data) == 0 {
		t.Fatal("degraded export must still produce the title page")
	}
	if n := lastNotification(t, hub); n.Title != "Report Export Incomplete" {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestSetActiveSectionValidation(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	if err := svc.SetActiveSection("dimensions"); err != nil {
		t.Errorf("valid section rejected: %v", err)
	}
	if svc.ActiveSection() != "dimensions" {
		t.Errorf("active section not recorded")
	}
	if err := svc.SetActiveSection("bogus"); err == nil {
		t.Error("unknown section accepted")
	}
	if err := svc.SetActiveSection(""); err != nil {
		t.Errorf("clearing the section rejected: %v", err)
	}
}

func TestBootstrapWithCorruptSnapshotWarns(t *testing.T) {
	snapshots := &fakeSnapshots{loadFn: func(context.Context) (assessment.Document, error) {
		return assessment.Document{}, fmt.Errorf("%w: garbage", assessment.ErrParse)
	}}
	svc, hub := newTestService(snapshots, nil)

	svc.Bootstrap(context.Background())

	if len(svc.Document().Dimensions) != 14 {
		t.Error("bootstrap must fall back to the default document")
	}
	if n := lastNotification(t, hub); n.Variant != VariantDestructive {
		t.Errorf("expected a warning notification, got %+v", n)
	}
}

func TestSearchFindsEvidence(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	svc.SetDimensionEvidence("leadership", "program director chairs the committee")

	resp := svc.Search(search.Query{Text: "director"})
	if resp.Total != 1 {
		t.Errorf("expected 1 hit, got %d", resp.Total)
	}
}
