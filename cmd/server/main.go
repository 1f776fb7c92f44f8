package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/config"
	"github.com/hydrate-app/hydrate/internal/export"
	"github.com/hydrate-app/hydrate/internal/server"
	"github.com/hydrate-app/hydrate/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── Relational store ─────────────────────────────────────
	var db server.Store
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Fatalf("postgres migrate: %v", err)
		}
		db = pgStore
	case config.DriverMemory:
		log.Println("POSTGRES_DSN not set, using in-memory storage")
		db = store.NewMemoryStore()
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb, cfg.CookieSecure)

	// ── MongoDB (activity log) ───────────────────────────────
	var events activity.Store = activity.Nop{}
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		defer mongoClient.Disconnect(ctx)
		mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.Printf("mongo index error (non-fatal): %v", err)
		}
		events = mongoStore
	} else {
		log.Println("MONGO_URI not set, activity log disabled")
	}

	// ── MinIO (exports) ──────────────────────────────────────
	var files export.FileStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := store.NewMinioStore(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("minio connect: %v", err)
		}
		files = minioStore
	} else {
		log.Println("MINIO_ENDPOINT not set, exports disabled")
	}

	// ── Router ───────────────────────────────────────────────
	r := server.NewRouter(server.Deps{
		Store:          db,
		Sessions:       sessions,
		Activity:       events,
		Files:          files,
		DailyGoal:      cfg.DefaultDailyGoal,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
