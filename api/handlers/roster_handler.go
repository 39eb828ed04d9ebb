package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	rosterservice "github.com/ttv-club/matchday/app/modules/roster/application"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// RosterHandler exposes roster operations over HTTP.
type RosterHandler struct {
	service *rosterservice.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(service *rosterservice.RosterService) *RosterHandler {
	return &RosterHandler{service: service}
}

// Routes sets up the roster routes.
func (h *RosterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPlayers)
	r.Post("/", h.AddPlayer)
	r.Get("/search", h.SearchPlayers)
	r.Post("/active", h.SetAllActive)
	r.Put("/{playerID}/name", h.RenamePlayer)
	r.Post("/{playerID}/toggle", h.ToggleActive)
	r.Delete("/{playerID}", h.RemovePlayer)
	return r
}

// ListPlayers returns the roster ordered by name.
func (h *RosterHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

type addPlayerDto struct {
	Name string `json:"name"`
}

// AddPlayer creates a roster entry.
func (h *RosterHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var input addPlayerDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.service.AddPlayer(r.Context(), input.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.IsFailure() {
		writeRejection(w, result.Failure.Reason)
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

// SearchPlayers fuzzy-matches roster names.
func (h *RosterHandler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.SearchPlayers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

type setAllActiveDto struct {
	Active bool `json:"active"`
}

// SetAllActive marks the whole roster present or absent.
func (h *RosterHandler) SetAllActive(w http.ResponseWriter, r *http.Request) {
	var input setAllActiveDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.service.SetAllActive(r.Context(), input.Active); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type renamePlayerDto struct {
	Name string `json:"name"`
}

// RenamePlayer changes a player's name.
func (h *RosterHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	var input renamePlayerDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	id := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))
	result, err := h.service.RenamePlayer(r.Context(), id, input.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.IsFailure() {
		writeRejection(w, result.Failure.Reason)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

// ToggleActive flips the present-today flag.
func (h *RosterHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))
	result, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.IsFailure() {
		writeRejection(w, result.Failure.Reason)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

// RemovePlayer deletes a roster entry.
func (h *RosterHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	id := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))
	result, err := h.service.RemovePlayer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.IsFailure() {
		writeNotFound(w, result.Failure.Reason)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
