package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/artfusion/gallery-api/internal/blob"
	"github.com/artfusion/gallery-api/internal/catalog"
	"github.com/artfusion/gallery-api/internal/config"
	"github.com/artfusion/gallery-api/internal/database"
	"github.com/artfusion/gallery-api/internal/handler"
	"github.com/artfusion/gallery-api/internal/queue"
	"github.com/artfusion/gallery-api/internal/rating"
	"github.com/artfusion/gallery-api/internal/repository"
	"github.com/artfusion/gallery-api/internal/router"
	queue_publisher "github.com/artfusion/gallery-api/internal/service"
)

func main() {
	// Load .env from the working directory and the repo root, for running
	// out of cmd/server during development.
	_ = godotenv.Load(".env", "../.env", "../../.env")

	cfg := config.Load()

	// Catalog + rating store, selected by driver. Both sides of the
	// RatingStore interface come from the same store instance.
	var paintings repository.PaintingStore
	var ratings repository.RatingStore
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("ensure schema: %v", err)
		}
		cancel()
		store := repository.NewSQLStore(db)
		paintings, ratings = store, store
	case "file":
		store := repository.NewFileStore(cfg.DataPath, cfg.RatingsPath)
		paintings, ratings = store, store
	default:
		log.Fatalf("unknown STORE_DRIVER: %q", cfg.StoreDriver)
	}

	// Blob store for uploaded images.
	var blobs blob.Store
	var local *blob.LocalStore
	switch cfg.BlobDriver {
	case "s3":
		s3, err := blob.NewS3Store(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatalf("init s3 store: %v", err)
		}
		blobs = s3
	case "local":
		var err error
		local, err = blob.NewLocalStore(cfg.ImageDir)
		if err != nil {
			log.Fatalf("init image dir: %v", err)
		}
		blobs = local
	default:
		log.Fatalf("unknown BLOB_DRIVER: %q", cfg.BlobDriver)
	}

	svc := catalog.NewService(paintings, rating.NewAggregator(ratings), blobs, cfg.MaxUploadBytes)

	var events handler.RatingPublisher
	if cfg.EventsEnabled {
		events = queue_publisher.PublishRatingSubmitted
		go queue.StartRatingConsumer()
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e, cfg,
		handler.NewPublicHandler(svc, events),
		handler.NewAuthHandler(cfg),
		handler.NewAdminHandler(svc),
		rdb,
	)
	if local != nil {
		// Uploaded images are served straight from the image directory.
		e.Static("/paintings", local.Dir())
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s, blob=%s)", addr, cfg.Env, cfg.StoreDriver, cfg.BlobDriver)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
