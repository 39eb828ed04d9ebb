package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionservice "github.com/ttv-club/matchday/app/modules/session/application"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// SessionHandler exposes the session lifecycle over HTTP.
type SessionHandler struct {
	service *sessionservice.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *sessionservice.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Routes sets up the session routes.
func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.CurrentSession)
	r.Post("/", h.StartSession)
	r.Delete("/", h.EndSession)
	r.Post("/rounds", h.DrawNextRound)
	r.Put("/matches/{matchID}/result", h.RecordResult)
	r.Get("/standings", h.Standings)
	r.Get("/finishable", h.IsFinishable)
	r.Post("/finish", h.FinishSession)
	r.Post("/reset", h.ResetToday)
	return r
}

// CurrentSession returns the active session.
func (h *SessionHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CurrentSession(r.Context())
	if err != nil {
		if err == sessiondb.ErrNoActiveSession {
			writeNotFound(w, "no session is running")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// StartSession starts a competition day from the active roster.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.StartSession(r.Context())
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

// EndSession discards the session, finished or not.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.EndSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if result.IsFailure() {
		writeRejection(w, result.Failure.Reason)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DrawNextRound draws the next round's pairings.
func (h *SessionHandler) DrawNextRound(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DrawNextRound(r.Context())
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

type recordResultDto struct {
	Result string `json:"result"`
}

// RecordResult records (or clears) a match result.
func (h *SessionHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input recordResultDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	matchID := sharedtypes.MatchID(chi.URLParam(r, "matchID"))
	result, err := h.service.RecordResult(r.Context(), matchID, input.Result)
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

// Standings returns the live table.
func (h *SessionHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		if err == sessiondb.ErrNoActiveSession {
			writeNotFound(w, "no session is running")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

type finishableDto struct {
	Finishable bool `json:"finishable"`
}

// IsFinishable reports whether the day can be closed out.
func (h *SessionHandler) IsFinishable(w http.ResponseWriter, r *http.Request) {
	finishable, err := h.service.IsFinishable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, finishableDto{Finishable: finishable})
}

// FinishSession closes the day and applies the rating batch.
func (h *SessionHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FinishSession(r.Context())
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

// ResetToday restarts the draw with the same participants.
func (h *SessionHandler) ResetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ResetToday(r.Context())
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
