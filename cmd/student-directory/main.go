// main is the entry point of the student directory service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the storage backend and rehydrate the directory from it
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, close storage, exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-directory --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-directory
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-directory/internal/config"
	"github.com/aanand-mishra/student-directory/internal/dashboard"
	"github.com/aanand-mishra/student-directory/internal/directory"
	"github.com/aanand-mishra/student-directory/internal/http/handlers/listing"
	"github.com/aanand-mishra/student-directory/internal/http/handlers/student"
	"github.com/aanand-mishra/student-directory/internal/storage"
	"github.com/aanand-mishra/student-directory/internal/storage/bbolt"
	"github.com/aanand-mishra/student-directory/internal/storage/memory"
	"github.com/aanand-mishra/student-directory/internal/storage/sqlite"
	"github.com/aanand-mishra/student-directory/internal/view"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the package-level slog functions, so the
	// configured logger also becomes the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-directory",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Storage and directory ──────────────────────────────────────────
	// The store is the one owner of the collection. It is built here and
	// passed down; nothing reaches it through a global.
	backend, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backend.Close()

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path))

	store, err := directory.New(context.Background(), backend, directory.WithLogger(log))
	if err != nil {
		log.Error("failed to load directory", slog.String("error", err.Error()))
		backend.Close()
		os.Exit(1)
	}

	pageSize := view.ClampPageSize(cfg.View.PageSize, 5, cfg.View.MaxPageSize)
	dash := dashboard.New(store, pageSize)

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      newRouter(dash),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe returns http.ErrServerClosed when Shutdown() is
	// called. That's expected — we don't want to log it as an error.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			backend.Close()
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// newRouter maps every route to its handler.
//
// Route table:
//
//	POST   /api/students        → add a student
//	GET    /api/students        → current listing (filtered page)
//	DELETE /api/students        → delete every student
//	GET    /api/students/{id}   → get one student
//	PUT    /api/students/{id}   → replace a student
//	DELETE /api/students/{id}   → delete a student
//	GET    /api/view            → current listing
//	PUT    /api/view/search     → change the search term (back to page 1)
//	PUT    /api/view/page       → change the page
func newRouter(dash *dashboard.Dashboard) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(dash))
	router.HandleFunc("GET /api/students", student.GetList(dash))
	router.HandleFunc("DELETE /api/students", student.DeleteAll(dash))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(dash))
	router.HandleFunc("PUT /api/students/{id}", student.Update(dash))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(dash))

	router.HandleFunc("GET /api/view", listing.Get(dash))
	router.HandleFunc("PUT /api/view/search", listing.Search(dash))
	router.HandleFunc("PUT /api/view/page", listing.Page(dash))

	return router
}

// openStorage returns the backend named by cfg.Storage.Driver.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg)
	case config.DriverBolt:
		return bbolt.Open(cfg)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
