package repair

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"turbine-repair/internal/shared/metrics"
	"turbine-repair/internal/shared/server/middleware"
	"turbine-repair/internal/shared/server/respond"
	"turbine-repair/internal/shared/telemetry"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Response is the public decision payload.
type Response struct {
	Message            string `json:"message"`
	RevenueOpportunity string `json:"revenueOpportunity"`
	CostToFix          string `json:"costToFix"`
}

// NewResponse renders a decision for the wire.
func NewResponse(d Decision) Response {
	return Response{
		Message:            d.Message(),
		RevenueOpportunity: FormatUSD(d.RevenueOpportunity),
		CostToFix:          FormatUSD(d.CostToFix),
	}
}

type Handler struct {
	Svc          *Service
	Input        InputOptions
	MaxBodyBytes int64
}

func NewHandler(svc *Service, input InputOptions, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{Svc: svc, Input: input, MaxBodyBytes: maxBodyBytes}
}

// RegisterRoutes mounts the legacy function route on root and the versioned
// route on api.
func (h *Handler) RegisterRoutes(root gin.IRoutes, api *gin.RouterGroup) {
	root.POST("/api/TurbineRepair", h.decide)
	api.POST("/turbines/repair-decision", h.decide)
}

func (h *Handler) decide(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	// Oversized or unreadable bodies count as absent input.
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes))
	if err != nil {
		telemetry.Info("repair.body_discarded", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err.Error(),
		})
		body = nil
	}

	req, err := ParseInput(c.Request.URL.Query(), body, h.Input)
	if err != nil {
		metrics.IncRejected()
		respond.Text(c, http.StatusBadRequest, h.Input.MissingMessage())
		return
	}

	decision, err := h.Svc.Decide(c.Request.Context(), req, middleware.RequestIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNegativeInput) {
			respond.Text(c, http.StatusBadRequest, NegativeInputMessage)
			return
		}
		respond.Text(c, http.StatusBadRequest, h.Input.MissingMessage())
		return
	}

	c.Set("decision", decision.Message())
	respond.OK(c, NewResponse(decision))
}
