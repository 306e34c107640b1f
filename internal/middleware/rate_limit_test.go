package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koolkhan8586/hr-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x",
		func(c *gin.Context) { c.Set("user_id", c.GetHeader("X-User")); c.Next() },
		middleware.RateLimitByUser(0.001, 2),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("U1"))
	assert.Equal(t, http.StatusOK, send("U1"))
	assert.Equal(t, http.StatusTooManyRequests, send("U1"))
	// limiter per user
	assert.Equal(t, http.StatusOK, send("U2"))
	// anonim dilewatkan
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send(""))
}

func TestContextLogger_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(nil))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "rid-1", w.Body.String())
}
