// main is the entry point of the Lessons API server.
//
// STARTUP SEQUENCE:
//  1. Load .env (if present) and the YAML configuration
//  2. Initialise the logger
//  3. Open the configured storage backend (MongoDB or SQLite)
//  4. Register all HTTP routes and middleware
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/lessons-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/lessons-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mongolearn/lessons-api/internal/config"
	"github.com/mongolearn/lessons-api/internal/http/handlers/contact"
	"github.com/mongolearn/lessons-api/internal/http/handlers/lesson"
	"github.com/mongolearn/lessons-api/internal/http/middleware"
	"github.com/mongolearn/lessons-api/internal/storage"

	// Blank imports register the storage drivers with storage.Open.
	_ "github.com/mongolearn/lessons-api/internal/storage/mongodb"
	_ "github.com/mongolearn/lessons-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// .env is optional; it only feeds env-var overrides for local runs.
	_ = godotenv.Load()
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)

	log.Info("starting lessons-api",
		slog.String("env", cfg.Env),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	// ── 3. Open Storage ───────────────────────────────────────────────────
	// The rest of the program only sees the storage.Storage interface;
	// which backend answers is decided here, once.
	store, err := storage.Open(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to open storage",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   POST   /api/lessons        → create a lesson
	//   GET    /api/lessons        → list lessons (?keyword=, ?limit=, ?skip=)
	//   GET    /api/lessons/{id}   → get one lesson
	//   PUT    /api/lessons/{id}   → replace a lesson
	//   DELETE /api/lessons/{id}   → delete a lesson
	//   …and the same five for /api/contacts (?party=, ?min_age=)
	//   GET    /metrics            → Prometheus metrics
	router := http.NewServeMux()

	router.HandleFunc("POST /api/lessons", lesson.New(store))
	router.HandleFunc("GET /api/lessons", lesson.GetList(store))
	router.HandleFunc("GET /api/lessons/{id}", lesson.GetByID(store))
	router.HandleFunc("PUT /api/lessons/{id}", lesson.Update(store))
	router.HandleFunc("DELETE /api/lessons/{id}", lesson.Delete(store))

	router.HandleFunc("POST /api/contacts", contact.New(store))
	router.HandleFunc("GET /api/contacts", contact.GetList(store))
	router.HandleFunc("GET /api/contacts/{id}", contact.GetByID(store))
	router.HandleFunc("PUT /api/contacts/{id}", contact.Update(store))
	router.HandleFunc("DELETE /api/contacts/{id}", contact.Delete(store))

	router.Handle("GET /metrics", promhttp.Handler())

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: middleware.Instrument(log, router),

		// Timeouts guard against slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks; run it off the main goroutine so the
	// shutdown handling below gets a chance to run.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ErrServerClosed is the expected result of Shutdown().
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of one so the signal is never missed while main is
	// briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// In-flight requests get five seconds to finish, then the context
	// cancels and Shutdown returns an error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
	}

	if err := store.Close(ctx); err != nil {
		log.Error("failed to close storage",
			slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
