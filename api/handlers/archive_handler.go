package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	archiveservice "github.com/ttv-club/matchday/app/modules/archive/application"
)

// ArchiveHandler exposes the archive and season standings over HTTP.
type ArchiveHandler struct {
	service *archiveservice.ArchiveService
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(service *archiveservice.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

// Routes sets up the archive routes.
func (h *ArchiveHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListSnapshots)
	r.Delete("/", h.ClearArchive)
	r.Get("/season", h.SeasonStandings)
	r.Get("/season/export", h.ExportSeason)
	return r
}

// ListSnapshots returns the archived days, newest first.
func (h *ArchiveHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.service.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

type clearArchiveDto struct {
	Cleared int `json:"cleared"`
}

// ClearArchive wipes the archive wholesale.
func (h *ArchiveHandler) ClearArchive(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.service.ClearArchive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearArchiveDto{Cleared: cleared})
}

// SeasonStandings returns the cumulative season table.
func (h *ArchiveHandler) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.SeasonStandings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// ExportSeason streams the season table as an XLSX workbook.
func (h *ArchiveHandler) ExportSeason(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportSeasonXLSX(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("season-standings-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
