package handlers

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeRejection reports a validation failure: the request was understood but
// the current state forbids it.
func writeRejection(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusConflict, errorResponse{Error: reason})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeNotFound(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: reason})
}
