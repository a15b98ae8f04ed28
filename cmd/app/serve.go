package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courseapi/internal/api/v1/router"
	"courseapi/internal/database"
	"courseapi/internal/migrations"
	"courseapi/internal/secret"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 1. Open the database
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.AutoMigrate {
			group, err := migrations.Up(ctx, db)
			if err != nil {
				return err
			}
			if group.ID != 0 {
				log.Info().Int64("group", group.ID).Msg("Applied migrations")
			}
		}

		// 2. Course event publisher, optional
		publisher, closePublisher, err := newPublisher(ctx, db)
		if err != nil {
			return err
		}
		defer closePublisher()

		// 3. Build router
		r, err := router.New(cfg, db, publisher, log)
		if err != nil {
			return fmt.Errorf("failed to build router: %w", err)
		}

		// 4. Create HTTP server
		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// 5. Start server in a goroutine
		errCh := make(chan error, 1)
		go func() {
			log.Info().Msgf("Server starting on port %s", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		// 6. Graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("listen: %w", err)
		case <-quit:
		}
		log.Info().Msg("Shutdown signal received, exiting...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info().Msg("Server shut down gracefully")
		return nil
	},
}

// openDB resolves the DSN, from Secret Manager when configured, and connects.
func openDB(ctx context.Context) (*bun.DB, error) {
	dsn, err := secret.DatabaseURL(ctx, cfg.DatabaseURLSecret, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database URL: %w", err)
	}
	db, err := database.Open(ctx, dsn, cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Str("type", string(database.DetectType(dsn))).Msg("Database connection successful")
	return db, nil
}
