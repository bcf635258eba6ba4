// main seeds the database with the fixture lessons and contacts.
//
// The whole script is: load config → open storage → wipe → insert → exit.
// Re-running is safe; both collections are emptied first.
//
//	go run ./cmd/seed --config=config/local.yaml
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mongolearn/lessons-api/internal/config"
	"github.com/mongolearn/lessons-api/internal/seed"
	"github.com/mongolearn/lessons-api/internal/storage"

	// Blank imports register the storage drivers with storage.Open.
	_ "github.com/mongolearn/lessons-api/internal/storage/mongodb"
	_ "github.com/mongolearn/lessons-api/internal/storage/sqlite"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// One deadline for the whole run; seeding a handful of documents
	// should never take longer than this.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close(ctx)

	if err := seed.Run(ctx, store, log); err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
