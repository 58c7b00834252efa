package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"turbine-repair/internal/shared/server/middleware"
	"turbine-repair/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

// meHandler reports which function key authenticated the caller.
func meHandler(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	if principal == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "function key required", nil)
		return
	}
	respond.OK(c, gin.H{"principal": principal})
}
