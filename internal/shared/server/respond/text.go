package respond

import (
	"github.com/gin-gonic/gin"

	"turbine-repair/internal/shared/telemetry"
)

// Text aborts with a plain-text body. It is meant for client usage errors,
// so it logs at info level only.
func Text(c *gin.Context, status int, message string) {
	fields := requestFields(c)
	fields["status"] = status
	fields["message"] = message
	telemetry.Info("http.client_error", fields)

	c.Abort()
	c.String(status, message)
}
