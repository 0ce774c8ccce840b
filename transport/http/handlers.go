package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dictgate/dictgate/service"
)

// Answer bodies above this size cannot be a boolean; reading further
// only lets a client waste server memory.
const maxAnswerBody = 1 << 10

// GateHandlers contains the HTTP handlers for the challenge gate.
type GateHandlers struct {
	gate *service.GateService
}

// NewGateHandlers creates handlers around the verification engine.
func NewGateHandlers(gate *service.GateService) *GateHandlers {
	return &GateHandlers{gate: gate}
}

// Issue handles GET /: a new-session request.
func (h *GateHandlers) Issue(c *gin.Context) {
	body, err := h.gate.Issue(c.Request.Context(), c.ClientIP())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	respond(c, body)
}

// Answer handles POST /: a solution submission. The body is the raw
// answer text.
func (h *GateHandlers) Answer(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAnswerBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	body, err := h.gate.Answer(c.Request.Context(), c.ClientIP(), payload)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	respond(c, body)
}

// respond writes the gate's body, or 204 for ignored requests.
func respond(c *gin.Context, body string) {
	if body == "" {
		c.Status(http.StatusNoContent)
		return
	}
	c.String(http.StatusOK, "%s", body)
}
