package main

import (
	"context"
	"log"
	"time"

	"github.com/inmoview/explorer-backend/config"
	"github.com/inmoview/explorer-backend/internal/auth"
	"github.com/inmoview/explorer-backend/internal/bootstrap"
	"github.com/inmoview/explorer-backend/internal/explorer/repository"
	"github.com/inmoview/explorer-backend/internal/storage/postgres"
	storage "github.com/inmoview/explorer-backend/internal/storage/s3"
	"github.com/inmoview/explorer-backend/internal/warmup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("postgres (database/sql): %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		// The explorer works without the cache, just slower.
		log.Printf("[warn] redis unavailable, serving uncached: %v", err)
		redisClient = nil
	}

	var store *storage.Client
	if cfg.Storage.Bucket != "" {
		store, err = storage.NewClient(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("object storage: %v", err)
		}
	}

	deps := bootstrap.RouterDeps{
		ServiceName: "explorer-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       redisClient,
		Store:       store,
		SnapshotTTL: time.Duration(cfg.Redis.SnapshotTTLSeconds) * time.Second,
	}

	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		deps.Auth = client
	}

	r, cache := bootstrap.BuildRouter(deps)

	if cache != nil && cfg.App.WarmupSpec != "" {
		scheduler := warmup.NewScheduler(repository.NewRepo(pool), cache)
		scheduler.Start(cfg.App.WarmupSpec)
		defer scheduler.Stop()
	}

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
