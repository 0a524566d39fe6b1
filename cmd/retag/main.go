// Command retag clears and recomputes the tag assignments of every stored
// conversation. Run it after changing the extraction configuration so old
// records reflect the current pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"

	"promptory-server/internal/config"
	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/domain/extract"
	"promptory-server/internal/domain/tag"
	"promptory-server/internal/infrastructure/database"
	"promptory-server/internal/infrastructure/database/repository/conversationrepo"
	"promptory-server/internal/infrastructure/database/repository/tagrepo"
	"promptory-server/internal/infrastructure/database/transaction"
	"promptory-server/internal/infrastructure/logger"
)

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

	txDB := transaction.NewDatabase(db)
	tags := tag.NewService(tagrepo.NewTagGormRepository(txDB))
	extractor := extract.NewExtractor(extract.DefaultConfig())
	conversations := conversation.NewService(
		conversationrepo.NewConversationGormRepository(txDB),
		tags,
		extractor,
		txDB,
		log,
	)

	report, err := conversations.RetagAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("retag sweep failed")
	}

	log.Info().
		Int("processed", report.Processed).
		Int("succeeded", report.Succeeded).
		Int("skipped", report.Skipped).
		Msg("retag sweep finished")
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
