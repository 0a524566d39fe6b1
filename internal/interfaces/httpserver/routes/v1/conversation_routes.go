package v1

import (
	"github.com/gin-gonic/gin"

	"promptory-server/internal/interfaces/httpserver/handlers/conversationhandler"
)

func registerConversationRoutes(router gin.IRoutes, handler *conversationhandler.ConversationHandler) {
	router.POST("/conversations", handler.Create)
	router.GET("/conversations", handler.List)
	router.GET("/conversations/:id", handler.Get)
	router.DELETE("/conversations/:id", handler.Delete)
}
