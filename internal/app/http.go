package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"radar/api/internal/assessment"
	"radar/api/internal/metrics"
	"radar/api/internal/report"
	"radar/api/internal/search"
	"radar/api/internal/snapshot"
)

const maxImportBytes = 4 << 20

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		// Check durable store connectivity
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"snapshots": map[string]any{"status": "ok"},
		}

		if err := s.service.Ping(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["snapshots"] = map[string]any{
				"status": "error",
				"error":  err.Error(),
			}
		}

		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/metrics" {
		metrics.Handler().ServeHTTP(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/assessment" {
		writeJSON(w, http.StatusOK, s.service.Document())
		return
	}

	if r.Method == http.MethodPut && r.URL.Path == "/api/assessment/program-name" {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		s.service.SetProgramName(body.Name)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/assessment/save" {
		s.handleSave(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/assessment/load" {
		s.handleLoad(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/assessment/reset" {
		s.handleReset(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/assessment/file" {
		s.handleExportFile(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/assessment/file" {
		s.handleImportFile(w, r)
		return
	}

	if r.Method == http.MethodPut && r.URL.Path == "/api/view/section" {
		s.handleSetSection(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/view/section" {
		writeJSON(w, http.StatusOK, map[string]any{"section": s.service.ActiveSection()})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/report" {
		s.handleExportReport(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/search" {
		s.handleSearch(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/notifications" {
		writeJSON(w, http.StatusOK, map[string]any{"notifications": s.service.Notifications()})
		return
	}

	// Parameterized field mutators:
	//   PUT /api/assessment/dimensions/{id}/rating
	//   PUT /api/assessment/dimensions/{id}/evidence
	//   PUT /api/assessment/items/{id}/answer
	//   PUT /api/assessment/items/{id}/comments
	//   PUT /api/assessment/planning/{field}
	parts := splitPath(r.URL.Path)
	if r.Method == http.MethodPut && len(parts) == 5 && parts[0] == "api" && parts[1] == "assessment" && parts[2] == "dimensions" {
		s.handleDimensionField(w, r, parts[3], parts[4])
		return
	}
	if r.Method == http.MethodPut && len(parts) == 5 && parts[0] == "api" && parts[1] == "assessment" && parts[2] == "items" {
		s.handleItemField(w, r, parts[3], parts[4])
		return
	}
	if r.Method == http.MethodPut && len(parts) == 4 && parts[0] == "api" && parts[1] == "assessment" && parts[2] == "planning" {
		s.handlePlanningField(w, r, parts[3])
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func (s *HTTPServer) handleDimensionField(w http.ResponseWriter, r *http.Request, id, field string) {
	switch field {
	case "rating":
		var body struct {
			Rating int `json:"rating"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		s.service.SetDimensionRating(id, body.Rating)
	case "evidence":
		var body struct {
			Evidence string `json:"evidence"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		s.service.SetDimensionEvidence(id, body.Evidence)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleItemField(w http.ResponseWriter, r *http.Request, id, field string) {
	switch field {
	case "answer":
		// answer is tri-state: true, false, or null to unset.
		var body struct {
			Answer assessment.Answer `json:"answer"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		s.service.SetProgrammaticAnswer(id, body.Answer)
	case "comments":
		var body struct {
			Comments string `json:"comments"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		s.service.SetProgrammaticComments(id, body.Comments)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

var planningFields = map[string]struct{}{
	assessment.NoteStrengths:    {},
	assessment.NoteImprovements: {},
	assessment.NoteChampions:    {},
	assessment.NoteResources:    {},
}

func (s *HTTPServer) handlePlanningField(w http.ResponseWriter, r *http.Request, field string) {
	if _, ok := planningFields[field]; !ok {
		writeError(w, http.StatusBadRequest, "UNKNOWN_FIELD", fmt.Sprintf("Unknown planning field %q", field), nil)
		return
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	s.service.SetPlanningNotes(field, body.Value)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Save(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "SAVE_FAILED", "Save failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleLoad(w http.ResponseWriter, r *http.Request) {
	err := s.service.Load(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.service.Document())
	case errors.Is(err, snapshot.ErrNoSnapshot):
		writeError(w, http.StatusNotFound, "NO_SAVED_DATA", "There is no saved assessment data to load", nil)
	case errors.Is(err, assessment.ErrParse):
		writeError(w, http.StatusConflict, "PARSE_ERROR", "Saved assessment data is corrupted", nil)
	case errors.Is(err, assessment.ErrStructure):
		writeError(w, http.StatusConflict, "INVALID_STRUCTURE", "Saved data is not an assessment document", nil)
	default:
		writeError(w, http.StatusInternalServerError, "LOAD_FAILED", "Load failed", nil)
	}
}

func (s *HTTPServer) handleReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	applied := s.service.Reset(r.Context(), body.Confirm)
	writeJSON(w, http.StatusOK, map[string]any{"reset": applied})
}

func (s *HTTPServer) handleExportFile(w http.ResponseWriter, r *http.Request) {
	download, err := s.service.ExportFile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EXPORT_FAILED", "Export failed", nil)
		return
	}
	serveDownload(w, download.Filename, download.MimeType, download.Data)
}

func (s *HTTPServer) handleImportFile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Could not read uploaded file", nil)
		return
	}
	err = s.service.ImportFile(data)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.service.Document())
	case errors.Is(err, assessment.ErrStructure):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_STRUCTURE", "That file is not an assessment data file", nil)
	case errors.Is(err, assessment.ErrParse):
		writeError(w, http.StatusBadRequest, "PARSE_ERROR", "The selected file is not valid JSON", nil)
	default:
		writeError(w, http.StatusInternalServerError, "IMPORT_FAILED", "Import failed", nil)
	}
}

func (s *HTTPServer) handleSetSection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Section string `json:"section"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	if err := s.service.SetActiveSection(body.Section); err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "section": body.Section})
}

func (s *HTTPServer) handleExportReport(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.ExportReport(r.Context())
	if result != nil {
		// Degraded exports still ship the partial file; the inline
		// annotation explains what went wrong.
		serveDownload(w, result.Filename, result.MimeType, result.Data)
		return
	}
	switch {
	case errors.Is(err, report.ErrSectionNotFound):
		writeError(w, http.StatusNotFound, "NO_VISIBLE_SECTION", "No visible section to export", nil)
	default:
		writeError(w, http.StatusInternalServerError, "EXPORT_FAILED", "Report export failed", nil)
	}
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := search.Query{Text: r.URL.Query().Get("q")}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		fmt.Sscanf(limit, "%d", &q.Limit)
	}
	writeJSON(w, http.StatusOK, s.service.Search(q))
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func serveDownload(w http.ResponseWriter, filename, mimeType string, data []byte) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
