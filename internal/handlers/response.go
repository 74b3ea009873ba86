package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ProblemDetails is an RFC 7807 problem document
type ProblemDetails struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

const (
	validationProblemType = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	serverErrorType       = "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// WriteProblem writes an application/problem+json response
func WriteProblem(w http.ResponseWriter, problem ProblemDetails, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		logger.Error("failed to encode problem response", "error", err)
	}
}

// WriteValidationProblem writes a 400 with the field-level error report
func WriteValidationProblem(w http.ResponseWriter, errs map[string][]string, logger *slog.Logger) {
	WriteProblem(w, ProblemDetails{
		Type:   validationProblemType,
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: errs,
	}, logger)
}

// WriteServerError writes the fixed 500 problem. Internal details are never included.
func WriteServerError(w http.ResponseWriter, logger *slog.Logger) {
	WriteProblem(w, ProblemDetails{
		Type:   serverErrorType,
		Title:  "Server Error",
		Status: http.StatusInternalServerError,
		Detail: "An unexpected error occurred. Please try again later.",
	}, logger)
}

// WriteNotFound writes an empty-bodied 404
func WriteNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}
