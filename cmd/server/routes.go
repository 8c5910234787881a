package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"network-registry.backend/internal/interfaces/http/handlers"
	"network-registry.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	networkHandler *handlers.NetworkHandler
	authMiddleware gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		networks := v1.Group("/networks")
		networks.Use(d.authMiddleware)
		{
			networks.GET("", d.networkHandler.ListNetworks)
			networks.GET("/:id", d.networkHandler.GetNetwork)

			admin := networks.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", middleware.IdempotencyMiddleware(), d.networkHandler.CreateNetwork)
				admin.PUT("/:id", d.networkHandler.UpdateNetwork)
				admin.PATCH("/:id", d.networkHandler.PatchNetwork)
				admin.DELETE("/:id", d.networkHandler.DeleteNetwork)
			}
		}
	}
}
