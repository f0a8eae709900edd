// internal/httpx/httpx.go
// Package httpx holds the JSON request and response helpers shared by the
// domain handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bookstore/internal/apperror"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Message is the body returned for plain acknowledgements and errors.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its status and writes {"message": ...}. Internal
// failures are logged with their cause; the client only sees the message.
func WriteError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	WriteJSON(w, status, Message{Message: apperror.MessageOf(err)})
}

// DecodeJSON reads a single JSON document from the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.InvalidInput("request body is empty")
		}
		return apperror.InvalidInput("invalid JSON body")
	}
	return nil
}
