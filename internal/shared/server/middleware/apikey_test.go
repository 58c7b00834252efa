package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAPIKeyRouter(cfg APIKeyConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKey(cfg))
	router.POST("/api/TurbineRepair", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"principal": PrincipalFromContext(c)})
	})
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAPIKeyAcceptsQueryAndHeader(t *testing.T) {
	router := newAPIKeyRouter(APIKeyConfig{Keys: []string{"alpha", "beta"}})

	tests := []struct {
		name   string
		target string
		header string
		want   int
	}{
		{name: "query key", target: "/api/TurbineRepair?code=beta", want: http.StatusOK},
		{name: "header key", target: "/api/TurbineRepair", header: "alpha", want: http.StatusOK},
		{name: "missing key", target: "/api/TurbineRepair", want: http.StatusUnauthorized},
		{name: "wrong key", target: "/api/TurbineRepair?code=gamma", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.Code)
			}
		})
	}
}

func TestAPIKeySkipsPublicPaths(t *testing.T) {
	router := newAPIKeyRouter(APIKeyConfig{Keys: []string{"alpha"}, PublicPaths: []string{"/api/v1/health"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAPIKeyWithoutConfiguredKeys(t *testing.T) {
	open := newAPIKeyRouter(APIKeyConfig{AllowAnonymous: true})
	req := httptest.NewRequest(http.MethodPost, "/api/TurbineRepair", nil)
	resp := httptest.NewRecorder()
	open.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 in anonymous mode, got %d", resp.Code)
	}

	closed := newAPIKeyRouter(APIKeyConfig{})
	req = httptest.NewRequest(http.MethodPost, "/api/TurbineRepair", nil)
	resp = httptest.NewRecorder()
	closed.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without keys, got %d", resp.Code)
	}
}
