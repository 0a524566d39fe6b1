package v1

import (
	"github.com/gin-gonic/gin"

	"promptory-server/internal/interfaces/httpserver/handlers/statshandler"
)

func registerStatsRoutes(router gin.IRoutes, handler *statshandler.StatsHandler) {
	router.GET("/statistics/summary", handler.Summary)
	router.GET("/statistics/tags", handler.Tags)
}
