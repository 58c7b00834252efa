package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"turbine-repair/internal/evaluations"
	"turbine-repair/internal/health"
	"turbine-repair/internal/repair"
	"turbine-repair/internal/shared/config"
	"turbine-repair/internal/shared/metrics"
	"turbine-repair/internal/shared/server/middleware"
	"turbine-repair/internal/shared/server/respond"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"
)

// RouterDeps carries the handlers mounted by NewRouter. HistoryHandler is
// nil when evaluation history is disabled.
type RouterDeps struct {
	Config         config.Config
	RepairHandler  *repair.Handler
	HistoryHandler *evaluations.Handler
	HealthHandler  *health.Handler
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.APIKey(middleware.APIKeyConfig{
			Keys:           deps.Config.FunctionKeys,
			AllowAnonymous: deps.Config.IsDevLike(),
			PublicPaths:    []string{healthPath, metricsPath},
		}),
	)
	if deps.Config.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.RateLimiter,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			},
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	r.GET(metricsPath, metrics.Handler())

	api := r.Group("/api/v1")
	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.RepairHandler != nil {
		deps.RepairHandler.RegisterRoutes(r, api)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
