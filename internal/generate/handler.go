package generate

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/shared/server/middleware"
	"hiremind-backend/internal/shared/server/respond"
	"hiremind-backend/internal/shared/telemetry"
)

// Generator is the behaviour the handler needs from Service.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// Handler serves POST /api/generate.
type Handler struct {
	Svc Generator
	// ExposeErrors puts unexpected error text into the response message.
	ExposeErrors bool
}

// NewHandler constructs a Handler.
func NewHandler(svc Generator, exposeErrors bool) *Handler {
	return &Handler{Svc: svc, ExposeErrors: exposeErrors}
}

// RegisterRoutes attaches the generation route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, MsgTooLarge, "")
			return
		}
		respond.Error(c, http.StatusBadRequest, MsgInvalidJSON, "")
		return
	}
	if req.Type != "" {
		c.Set(middleware.GenerationTypeKey, string(req.Type))
	}

	result, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var upstreamErr *UpstreamError
	switch {
	case errors.As(err, &validationErr):
		respond.Error(c, http.StatusBadRequest, validationErr.Message, "")
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, MsgNotConfigured, "")
	case errors.As(err, &upstreamErr):
		respond.Error(c, upstreamErr.Status, upstreamErr.Message, "")
	case errors.Is(err, ErrMalformedResponse):
		respond.Error(c, http.StatusInternalServerError, MsgMalformed, "")
	default:
		telemetry.Error("generate.unhandled", map[string]any{
			"error":      err,
			"request_id": middleware.RequestIDFromContext(c),
		})
		msg := MsgInternalHidden
		if h.ExposeErrors {
			msg = err.Error()
		}
		respond.Error(c, http.StatusInternalServerError, MsgInternal, msg)
	}
}
