package v1

import (
	"github.com/gin-gonic/gin"

	"promptory-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	authn    gin.HandlerFunc
}

// NewRoutes builds the v1 route registrar. The authn middleware guards every
// route in the group.
func NewRoutes(handlerProvider *handlers.Provider, authn gin.HandlerFunc) *Routes {
	return &Routes{
		handlers: handlerProvider,
		authn:    authn,
	}
}

// Register attaches all v1 routes under the /api/v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/api/v1")
	group.Use(r.authn)

	registerConversationRoutes(group, r.handlers.Conversation)
	registerStatsRoutes(group, r.handlers.Stats)

	group.GET("/me", r.handlers.Auth.Me)
}
