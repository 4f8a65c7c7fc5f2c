// Package respond writes JSON bodies and the API's error envelope. Messages of
// 5xx responses are replaced before they reach the client.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// internalMessage replaces the message of every 5xx response.
const internalMessage = "Internal server error"

// JSON writes v with status code. A nil v sends headers only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	// The status line is gone by now; an encoding failure can only be logged.
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.Int("status", code), slog.Any("error", err))
	}
}

// Error writes err's message as an error response with the given status code.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{
		StatusCode: code,
		Message:    err.Error(),
		Error:      http.StatusText(code),
	})
}

// SafeError writes an error response without leaking internals. Client errors
// (4xx) carry err's message; server errors are logged with secrets masked and
// answered with a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if code < http.StatusInternalServerError {
		Error(w, code, err)
		return
	}

	slog.Error("request failed",
		slog.Int("status", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{
		StatusCode: code,
		Message:    internalMessage,
		Error:      http.StatusText(code),
	})
}
