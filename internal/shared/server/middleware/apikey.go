package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"turbine-repair/internal/shared/server/respond"
)

const (
	principalKey = "principal"

	// APIKeyQueryParam and APIKeyHeader carry function keys the same way the
	// serverless function host accepts them.
	APIKeyQueryParam = "code"
	APIKeyHeader     = "X-Functions-Key"
)

// APIKeyConfig configures APIKey.
type APIKeyConfig struct {
	Keys []string
	// AllowAnonymous lets requests through when no keys are configured.
	AllowAnonymous bool
	// PublicPaths skip the key check entirely.
	PublicPaths []string
}

// APIKey rejects requests that do not present one of the configured keys.
// The matching key is recorded as an opaque principal, never the key itself.
func APIKey(cfg APIKeyConfig) gin.HandlerFunc {
	public := make(map[string]struct{}, len(cfg.PublicPaths))
	for _, p := range cfg.PublicPaths {
		public[p] = struct{}{}
	}
	keys := make([][]byte, 0, len(cfg.Keys))
	for _, k := range cfg.Keys {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keys = append(keys, []byte(trimmed))
		}
	}

	return func(c *gin.Context) {
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		if len(keys) == 0 {
			if cfg.AllowAnonymous {
				c.Set(principalKey, "anonymous")
				c.Next()
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "function key required", nil)
			return
		}

		presented := strings.TrimSpace(c.Query(APIKeyQueryParam))
		if presented == "" {
			presented = strings.TrimSpace(c.GetHeader(APIKeyHeader))
		}
		if presented == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "function key required", nil)
			return
		}

		idx := matchKey(keys, []byte(presented))
		if idx < 0 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid function key", nil)
			return
		}
		c.Set(principalKey, "key:"+strconv.Itoa(idx))
		c.Next()
	}
}

// matchKey compares against every key so timing does not reveal which one matched.
func matchKey(keys [][]byte, presented []byte) int {
	found := -1
	for i, k := range keys {
		if subtle.ConstantTimeCompare(k, presented) == 1 && found < 0 {
			found = i
		}
	}
	return found
}

// PrincipalFromContext fetches the principal set by the APIKey middleware.
func PrincipalFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(principalKey)
	if p, ok := val.(string); ok {
		return p
	}
	return ""
}
