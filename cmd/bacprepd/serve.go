package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	api "github.com/mind-engage/mindengage-bac/internal/api/http"
	"github.com/mind-engage/mindengage-bac/internal/config"
	"github.com/mind-engage/mindengage-bac/internal/db"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/session"
	"github.com/mind-engage/mindengage-bac/internal/storage"
	syncx "github.com/mind-engage/mindengage-bac/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.HTTPAddr = v
		}
		if v, _ := cmd.Flags().GetString("db-driver"); v != "" {
			cfg.DBDriver = v
		}
		if v, _ := cmd.Flags().GetString("db-dsn"); v != "" {
			cfg.DBDSN = v
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().String("db-driver", "", "sqlite|postgres (overrides DB_DRIVER)")
	serveCmd.Flags().String("db-dsn", "", "Database DSN (overrides DB_DSN)")
}

func serve(ctx context.Context, cfg config.Config) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	if errs := cat.Validate(cfg.GradeProfile); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("catalog: %v", e)
		}
		if cfg.StrictCatalog {
			return fmt.Errorf("catalog has %d invalid presets", len(errs))
		}
	}

	// --- DB ---
	octx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(octx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db open failed: %w", err)
	}
	defer dbh.Close()
	results := exam.NewSQLStore(dbh, cfg.DBDriver)

	content, err := storage.NewFSStore(cfg.ContentBasePath)
	if err != nil {
		return fmt.Errorf("content store: %w", err)
	}

	events := syncx.NewEventRepo(dbh)
	mgr := session.NewManager(cat, results, session.WithEvents(events, cfg.SiteID))

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", api.LearnerHeader},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: cfg.Mode == config.ModeOnline,
		MaxAge:           300,
	}))
	api.Mount(r, api.Deps{
		Catalog:      cat,
		Results:      results,
		Sessions:     mgr,
		Content:      content,
		Events:       events,
		GradeProfile: cfg.GradeProfile,
		Ready:        dbh.PingContext,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (mode=%s, db=%s, origins=%s)",
			cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, strings.Join(cfg.CORSOrigins(), ","))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Printf("shutting down")
	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	return srv.Shutdown(sctx)
}
