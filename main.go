package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer db.Close()

	// An unreachable store is not fatal: the loader serves fallback content.
	{
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.Ping(pingCtx); err != nil {
			log.Printf("Warning: content store unreachable at startup: %v", err)
		}
		cancel()
	}

	logger := log.Default()
	loader := content.NewLoader(db, logger)
	go loader.Load(ctx)

	var notifier content.Notifier
	if cfg.IsEmailConfigured() {
		notifier = newMailNotifier(cfg.Email)
	}
	submitter := content.NewSubmitter(db, logger, notifier)

	r := gin.Default()
	setupRoutes(r, loader, submitter, db)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on :%s (store: %s)", cfg.Server.Port, cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		log.Printf("ListenAndServe: %v", err)
		return
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	tables := store.Tables{
		Profile:     cfg.Store.ProfileTable,
		Skills:      cfg.Store.SkillsTable,
		Projects:    cfg.Store.ProjectsTable,
		Submissions: cfg.Store.SubmissionsTable,
	}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pg, err := store.OpenPostgres(ctx, cfg.DSN(), tables, store.PostgresOptions{
			MaxConns:         cfg.Store.MaxConns,
			StatementTimeout: cfg.Store.StatementTimeout,
		})
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.DriverSQLite:
		lite, err := store.OpenSQLite(cfg.Store.SQLitePath, tables)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
