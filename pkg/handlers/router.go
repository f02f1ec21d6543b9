package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the service banner
const Version = "1.0.0"

// NewRouter wires every route onto a fresh gin engine. metrics is served at
// /metrics; pass nil to leave the endpoint out.
func NewRouter(h *Handler, metrics prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Duty Roster API",
			"version": Version,
		})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))
	}

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Roster Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/roster", h.GenerateRoster)
		api.POST("/roster/csv", h.GenerateRosterCSV)
		api.POST("/validate", h.ValidateConfig)

		api.POST("/configs", h.CreateConfig)
		api.POST("/configs/csv", h.ImportConfigCSV)
		api.GET("/configs", h.ListConfigs)
		api.GET("/configs/:id", h.GetConfig)
		api.PUT("/configs/:id", h.UpdateConfig)
		api.DELETE("/configs/:id", h.DeleteConfig)
		api.POST("/configs/:id/roster", h.GenerateFromConfig)

		api.GET("/runs", h.ListRuns)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
