package evaluations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"turbine-repair/internal/shared/server/respond"
)

type Handler struct {
	Repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/evaluations", h.list)
	rg.GET("/evaluations/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	if h.Repo == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "history unavailable", nil)
		return
	}
	limit := DefaultListLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", []map[string]string{
				{"field": "limit", "issue": "invalid"},
			})
			return
		}
		limit = parsed
	}

	items, err := h.Repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list evaluations", nil)
		return
	}
	out := listResponse{Evaluations: make([]evaluationResponse, 0, len(items))}
	for _, item := range items {
		out.Evaluations = append(out.Evaluations, toResponse(item))
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	if h.Repo == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "history unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if _, err := uuid.Parse(id); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid evaluation id", []map[string]string{
			{"field": "id", "issue": "invalid"},
		})
		return
	}

	evaluation, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load evaluation", nil)
		return
	}
	respond.OK(c, toResponse(evaluation))
}
