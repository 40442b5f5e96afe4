package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/interfaces/http/middleware"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/testutil"
)

func newRouter(log middleware.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestLogging(log))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return router
}

func TestRequestLogging_LogsSuccessAtInfo(t *testing.T) {
	log := testutil.NewMockLogger()
	router := newRouter(log)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.True(t, log.HasMessage("info", "request"))
	assert.False(t, log.HasMessage("warn", "request failed"))
}

func TestRequestLogging_LogsServerErrorAtWarn(t *testing.T) {
	log := testutil.NewMockLogger()
	router := newRouter(log)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.True(t, log.HasMessage("warn", "request failed"))
}
