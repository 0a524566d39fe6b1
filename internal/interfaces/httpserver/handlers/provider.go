package handlers

import (
	"github.com/rs/zerolog"

	"promptory-server/internal/config"
	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/domain/stats"
	"promptory-server/internal/domain/user"
	"promptory-server/internal/infrastructure/auth"
	"promptory-server/internal/interfaces/httpserver/handlers/authhandler"
	"promptory-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"promptory-server/internal/interfaces/httpserver/handlers/statshandler"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth         *authhandler.AuthHandler
	Conversation *conversationhandler.ConversationHandler
	Stats        *statshandler.StatsHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	cfg *config.Config,
	logger zerolog.Logger,
	google *auth.GoogleClient,
	tokens *auth.TokenService,
	users *user.Service,
	conversations *conversation.Service,
	statistics *stats.Service,
) *Provider {
	return &Provider{
		Auth:         authhandler.NewAuthHandler(google, tokens, users, cfg, logger),
		Conversation: conversationhandler.NewConversationHandler(conversations, logger),
		Stats:        statshandler.NewStatsHandler(statistics),
	}
}
