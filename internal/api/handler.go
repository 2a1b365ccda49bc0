// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prepify/backend/internal/completion"
	"github.com/prepify/backend/internal/domain/interview"
	"github.com/prepify/backend/internal/extract"
	"github.com/prepify/backend/internal/service"
	"github.com/prepify/backend/internal/session"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of relying
// on package-level globals, every handler method receives its dependencies
// through this struct.
type Handler struct {
	relay    *service.InterviewService
	sessions *session.Store
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(relay *service.InterviewService, sessions *session.Store, logger *slog.Logger) *Handler {
	return &Handler{
		relay:    relay,
		sessions: sessions,
		logger:   logger,
	}
}

// ErrorResponse is the failure body for every endpoint. RawContent carries
// the model's unparseable reply when extraction failed, for debugging.
type ErrorResponse struct {
	Error      string `json:"error"`
	RawContent string `json:"rawContent,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// response and returns false; the caller should return immediately.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return false
	}
	return true
}

// respondError maps domain and transport errors to HTTP statuses:
// bad input → 400, unknown session → 404, wrong state or busy → 409,
// upstream or extraction failure → 502, anything else → 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var validationErr *interview.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()})
		return
	}

	if errors.Is(err, session.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	if errors.Is(err, interview.ErrBusy) {
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	var transitionErr *interview.TransitionError
	if errors.As(err, &transitionErr) {
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: transitionErr.Error()})
		return
	}

	var formatErr *extract.FormatError
	if errors.As(err, &formatErr) {
		h.logger.Error("failed to parse model response", "error", err)
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:      "failed to parse AI response",
			RawContent: formatErr.Raw,
		})
		return
	}

	var transportErr *completion.TransportError
	var upstreamErr *completion.UpstreamFormatError
	if errors.As(err, &transportErr) || errors.As(err, &upstreamErr) {
		h.logger.Error("completion endpoint failure", "error", err)
		respondJSON(w, http.StatusBadGateway, ErrorResponse{Error: "completion endpoint failed"})
		return
	}

	h.logger.Error("unexpected error", "error", err)
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
