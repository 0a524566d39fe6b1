//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"promptory-server/internal/config"
	"promptory-server/internal/domain"
	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/domain/extract"
	"promptory-server/internal/domain/stats"
	"promptory-server/internal/domain/tag"
	"promptory-server/internal/domain/user"
	"promptory-server/internal/infrastructure/auth"
	"promptory-server/internal/infrastructure/database"
	"promptory-server/internal/infrastructure/database/repository/conversationrepo"
	"promptory-server/internal/infrastructure/database/repository/statsrepo"
	"promptory-server/internal/infrastructure/database/repository/tagrepo"
	"promptory-server/internal/infrastructure/database/repository/userrepo"
	"promptory-server/internal/infrastructure/database/transaction"
	"promptory-server/internal/infrastructure/logger"
	"promptory-server/internal/interfaces/httpserver"
	"promptory-server/internal/interfaces/httpserver/handlers"
)

var domainSet = wire.NewSet(
	userrepo.NewUserGormRepository,
	tagrepo.NewTagGormRepository,
	conversationrepo.NewConversationGormRepository,
	statsrepo.NewStatsGormRepository,
	user.NewService,
	tag.NewService,
	conversation.NewService,
	stats.NewService,
	newExtractor,
)

// BuildApplication assembles the service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		newLogger,
		newGormDB,
		transaction.NewDatabase,
		wire.Bind(new(domain.Transactor), new(*transaction.Database)),
		newGoogleClient,
		newTokenService,
		domainSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func newExtractor() *extract.Extractor {
	return extract.NewExtractor(extract.DefaultConfig())
}

func newGormDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		if cfg.Environment == "development" {
			if err := database.Migration(db); err != nil {
				return nil, err
			}
		}
	}
	return db, nil
}

func newGoogleClient(ctx context.Context, cfg *config.Config) (*auth.GoogleClient, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return auth.NewGoogleClient(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, log)
}

func newTokenService(cfg *config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService(cfg.JWTSecretKey, cfg.TokenIssuer, cfg.AccessTokenTTL)
}
