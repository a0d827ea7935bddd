package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/accountd/accountd/internal/controller"
)

// SignupHandler adapts a controller to net/http.
type SignupHandler struct {
	controller controller.Controller
	logger     *slog.Logger
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(c controller.Controller, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{
		controller: c,
		logger:     logger,
	}
}

// Signup handles POST /signup.
// The envelope's status code and body are written as is.
func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body controller.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeStatus(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		// Unreadable bodies are validated as empty ones.
		h.logger.Debug("signup_body_unreadable", slog.String("error", err.Error()))
		body = controller.SignupRequest{}
	}

	resp := h.controller.Handle(r.Context(), controller.Request{Body: body})
	writeJSON(w, resp.StatusCode, resp.Body)
}
