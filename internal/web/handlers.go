package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/member"
	"github.com/go-chi/chi/v5"
)

// memberResponse is the JSON form of a stored member.
type memberResponse struct {
	Name                string   `json:"name"`
	Year                string   `json:"year"`
	StudentNumber       string   `json:"studentNumber"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	DietaryRequirements string   `json:"dietaryRequirements"`
	Role                string   `json:"role"`
	Tags                []string `json:"tags"`
}

func toMemberResponse(r member.Record) memberResponse {
	f := r.Fields()
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return memberResponse{
		Name:                f.Name,
		Year:                f.Year,
		StudentNumber:       f.StudentNumber,
		Email:               f.Email,
		Phone:               f.Phone,
		DietaryRequirements: f.DietaryRequirements,
		Role:                f.Role,
		Tags:                tags,
	}
}

// importResponse adds the composed message to an import summary.
type importResponse struct {
	core.ImportSummary
	Message string `json:"message"`
}

// exportResponse adds the composed message to an export summary.
type exportResponse struct {
	core.ExportSummary
	Message string `json:"message"`
}

// handleListMembers returns every stored member.
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Members(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]memberResponse, len(records))
	for i, rec := range records {
		out[i] = toMemberResponse(rec)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"members": out,
		"count":   len(out),
	})
}

// handleImport imports an uploaded roster (multipart field "file") or, without
// an upload, the configured default roster. Clients cannot name server-side
// paths.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		summary core.ImportSummary
		err     error
	)

	if isMultipart(r) {
		summary, err = s.importUpload(w, r)
	} else {
		logging.FromContext(ctx).Info("import requested", "path", s.service.DefaultImportPath())
		summary, err = s.service.ImportMembers(ctx, "")
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/?run="+url.QueryEscape(summary.RunID), http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{ImportSummary: summary, Message: summary.Message()})
}

// importUpload reads the multipart roster into memory and imports it.
func (s *Server) importUpload(w http.ResponseWriter, r *http.Request) (core.ImportSummary, error) {
	maxSize := s.cfg.Roster.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+uploadOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return core.ImportSummary{}, fmt.Errorf("%w: upload exceeds %d bytes", core.ErrFileTooLarge, maxSize)
		}
		return core.ImportSummary{}, fmt.Errorf("%w: invalid upload form: %v", core.ErrEmptyInput, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return core.ImportSummary{}, fmt.Errorf("%w: no file provided", core.ErrEmptyInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return core.ImportSummary{}, fmt.Errorf("reading upload: %w", err)
	}

	name := filepath.Base(header.Filename)
	logging.FromContext(r.Context()).Info("upload received", "file", name, "bytes", len(data))
	return s.service.ImportData(r.Context(), name, data)
}

// handleExport writes the roster to the configured export file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.ExportMembers(r.Context(), "")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/?exported="+url.QueryEscape(summary.Path), http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{ExportSummary: summary, Message: summary.Message()})
}

// handleDownload streams the roster as a CSV attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("members_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	n, err := s.service.WriteMembers(r.Context(), w)
	if err == nil {
		logging.FromContext(r.Context()).Info("roster downloaded", "records", n)
		return
	}

	// A write error means the body is already partly sent.
	if errors.Is(err, core.ErrIOFailure) {
		logging.FromContext(r.Context()).Error("download failed", "error", err)
		return
	}
	w.Header().Del("Content-Disposition")
	s.respondError(w, r, err)
}

// handleHistory returns recent import runs, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": s.service.History()})
}

// handleRun returns one import run with its composed message.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	summary, ok := s.service.Run(runID)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: %s", core.ErrRunNotFound, runID))
		return
	}

	writeJSON(w, http.StatusOK, importResponse{ImportSummary: summary, Message: summary.Message()})
}

// handleStatus reports import slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LimiterStatus())
}

// handleHealth reports whether the member store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.MemberCount(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "members": n})
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
