// Package shared holds the HTTP plumbing used by every handler: the JSON
// response envelopes, request decoding and validation helpers, and
// request-scoped context values.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DataResponse is the success envelope: {"data": ...}.
type DataResponse struct {
	Data any `json:"data"`
}

// PagedResponse is the success envelope for paginated results:
// {"data": [...], "paging": {...}}.
type PagedResponse struct {
	Data   any        `json:"data"`
	Paging PagingMeta `json:"paging"`
}

// PagingMeta describes the position of a page within the full result set.
type PagingMeta struct {
	Page      int   `json:"page"`
	TotalPage int64 `json:"total_page"`
	TotalItem int64 `json:"total_item"`
}

// ErrorResponse is the failure envelope: {"errors": "<message>"}.
type ErrorResponse struct {
	Errors string `json:"errors"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes the success envelope around data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, DataResponse{Data: data})
}

// RespondWithPage writes the success envelope for a paginated result.
func RespondWithPage(w http.ResponseWriter, r *http.Request, status int, data any, paging PagingMeta) {
	RespondWithJSON(w, r, status, PagedResponse{Data: data, Paging: paging})
}

// RespondWithError writes the error envelope with the given status and
// message, logging the response with the request trace ID for correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, ErrorResponse{Errors: message})
}
