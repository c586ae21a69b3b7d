package handler

import (
	"net/http"

	"github.com/avicennajr/gofdisms/internal/response"
	"github.com/avicennajr/gofdisms/internal/sms"
)

// HomeHandler serves the root and health endpoints.
type HomeHandler struct {
	gateway sms.Gateway
}

// NewHomeHandler returns a HomeHandler that checks the given gateway's
// health alongside the API's own.
func NewHomeHandler(gateway sms.Gateway) *HomeHandler {
	return &HomeHandler{gateway: gateway}
}

// Index godoc
// @Summary     Welcome endpoint
// @Description Simple root endpoint that returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	payload := response.WelcomePayload{
		Message: "Welcome to the FDI SMS outbox API",
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Health godoc
// @Summary     Health check
// @Description Reports API liveness and FDI provider reachability.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	payload := response.HealthPayload{
		Status:   "ok",
		Provider: "up",
	}

	if h.gateway != nil {
		if err := h.gateway.Health(r.Context()); err != nil {
			payload.Provider = "down"
		}
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
