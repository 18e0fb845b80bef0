package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID when missing", func(t *testing.T) {
		engine := newEngine(RequestID())

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("preserves a client-supplied ID", func(t *testing.T) {
		engine := newEngine(RequestID())

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "client-id-42")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "client-id-42", rec.Header().Get("X-Request-ID"))
	})

	t.Run("stores the ID in the gin context", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.Use(RequestID())

		var seen string
		engine.GET("/ping", func(c *gin.Context) {
			seen = c.GetString("request_id")
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "ctx-id")
		engine.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "ctx-id", seen)
	})
}

func TestCORSWithConfig(t *testing.T) {
	cfg := CORSConfig{
		AllowOrigins: []string{"https://erp.example.com"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type"},
	}

	t.Run("allows a configured origin", func(t *testing.T) {
		engine := newEngine(CORSWithConfig(cfg))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://erp.example.com")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "https://erp.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ignores an unknown origin", func(t *testing.T) {
		engine := newEngine(CORSWithConfig(cfg))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		engine := newEngine(CORSWithConfig(cfg))

		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://erp.example.com")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}
