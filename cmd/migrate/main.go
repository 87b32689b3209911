package main

import (
	"context"
	"time"

	mongoMigration "shiftboard/internal/migrations/mongo"
	"shiftboard/pkg/config"
)

const (
	JobName = "shiftboard-migration"
	timeout = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := config.LoadJob(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
