package main

import (
	"context"
	migrations "reservo/internal/migrations/mongo"
	"reservo/pkg/config"
	"time"
)

const migrationTimeout = 2 * time.Minute

func main() {
	cfg := config.Load("reservo-migrate")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	if err := migrations.Run(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}
