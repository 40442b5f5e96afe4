package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/config"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/interfaces/http/handlers"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the route handlers need.
type RouterDeps struct {
	Scheduling *handlers.SchedulingHandler
	Health     *handlers.HealthHandler
	Logger     logging.Logger
	Metrics    http.Handler
}

// NewRouter assembles the gin engine with the API routes.
func NewRouter(cfg config.ServerConfig, deps RouterDeps) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Logger != nil {
		router.Use(middleware.RequestLogging(deps.Logger))
	}

	if deps.Health != nil {
		router.GET("/healthz", deps.Health.Liveness)
		router.GET("/readyz", deps.Health.Readiness)
	}
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	v1 := router.Group("/api/v1")
	if deps.Scheduling != nil {
		v1.POST("/scopes/:scope_id/schedule/generate", deps.Scheduling.Generate)
		v1.POST("/scopes/:scope_id/schedule/escalate", deps.Scheduling.Escalate)
		v1.GET("/equipment/:equipment_id/compliance", deps.Scheduling.Compliance)
	}
	return router
}
