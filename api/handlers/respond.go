package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-portal/core/store"
	"hospital-portal/core/utils"
	"hospital-portal/core/validation"
)

const (
	msgDatabaseError  = "database error"
	msgMalformedBody  = "malformed request body"
	msgBodyTooLarge   = "request body too large"
	msgFAQNotFound    = "faq not found"
	msgReportNotFound = "incident report not found"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

type deletedBody struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a single JSON object from the body. It writes the 400
// itself and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return false
	}
	writeError(w, http.StatusBadRequest, msgMalformedBody)
	return false
}

// writeServiceError maps a service error onto the response: validation
// failures are 400, a missing record is 404 with notFoundMsg, anything else
// is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *utils.Logger, err error, notFoundMsg string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error(), Field: verr.Field, Rule: verr.Rule})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		logger.With("request_id", RequestIDFrom(r.Context())).Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, msgDatabaseError)
	}
}
