package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiz-admin-service/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// clientMessages are the response texts of errors caused by the request itself.
var clientMessages = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrRegNumberRequired, http.StatusBadRequest, "Registration number is required"},
	{domain.ErrInvalidRegNumber, http.StatusUnauthorized, "Invalid registration number"},
	{domain.ErrIncompleteResult, http.StatusBadRequest, "Incomplete result data"},
	{domain.ErrInvalidRegNumberFormat, http.StatusBadRequest, "Invalid registration number format"},
	{domain.ErrMissingQuestionFields, http.StatusBadRequest, "Missing fields"},
	{domain.ErrQuestionNotFound, http.StatusNotFound, "Question not found"},
	{domain.ErrNothingToExport, http.StatusBadRequest, "No results to export."},
	{domain.ErrMissingSettings, http.StatusBadRequest, "Missing settings fields"},
	{domain.ErrUnsupportedFormat, http.StatusBadRequest, "Unsupported export format"},
}

// classify maps err to a status code and client message. Unknown errors are
// internal and get the fallback message.
func classify(err error, fallback string) (int, string) {
	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError logs err once and writes the error body. Details of internal
// failures are only included when the handler is configured to expose them.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, message := classify(err, fallback)
	body := errorResponse{Error: message}
	if status == http.StatusInternalServerError {
		h.logger.Error(fallback, "method", r.Method, "path", r.URL.Path, "error", err)
		if h.exposeErrorDetails {
			body.Details = err.Error()
		}
	} else {
		h.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}
