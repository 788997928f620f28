package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobtagger/common/database"
	"jobtagger/common/database/schema"
	"jobtagger/common/database/schema/migrations"
	"jobtagger/common/logging"
)

func main() {
	rollback := flag.Int("rollback", 0, "roll back the migration with this version instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := logging.New(getEnv("LOG_FORMAT", "console"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.Options{
		DSN:             getEnv("CLICKHOUSE_DSN", "127.0.0.1:9000"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		Username:        getEnv("CLICKHOUSE_USERNAME", "default"),
		Password:        getEnv("CLICKHOUSE_PASSWORD", ""),
		Database:        getEnv("CLICKHOUSE_DATABASE", "jobtagger"),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)

	if *rollback > 0 {
		if err := migrator.Rollback(ctx, migrations.All, *rollback); err != nil {
			logger.Fatal("Failed to roll back migration", zap.Int("version", *rollback), zap.Error(err))
		}
		return
	}

	if _, err := migrator.Migrate(ctx, migrations.All); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
