package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"promptory-server/internal/config"
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
	"promptory-server/internal/infrastructure/observability"
	"promptory-server/internal/interfaces/httpserver"
	"promptory-server/internal/interfaces/httpserver/handlers"
)

// @title Promptory API
// @version 1.0
// @description Prompt archive with automatic tag extraction
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := a.httpServer.Run(runCtx)
		cancel()
		return err
	})
	eg.Go(func() error {
		err := a.httpServer.RunMetrics(runCtx)
		cancel()
		return err
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
		if cfg.Environment == "development" {
			// pick up schema changes not yet captured in SQL migrations
			if err := database.Migration(db); err != nil {
				log.Fatal().Err(err).Msg("automigrate schemas")
			}
		}
	}

	google, err := auth.NewGoogleClient(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize google client")
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecretKey, cfg.TokenIssuer, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize token service")
	}

	txDB := transaction.NewDatabase(db)

	users := user.NewService(userrepo.NewUserGormRepository(txDB))
	tags := tag.NewService(tagrepo.NewTagGormRepository(txDB))
	extractor := extract.NewExtractor(extract.DefaultConfig())
	conversations := conversation.NewService(
		conversationrepo.NewConversationGormRepository(txDB),
		tags,
		extractor,
		txDB,
		log,
	)
	statistics := stats.NewService(statsrepo.NewStatsGormRepository(txDB))

	handlerProvider := handlers.NewProvider(cfg, log, google, tokens, users, conversations, statistics)
	httpServer := httpserver.New(cfg, log, handlerProvider, tokens)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
