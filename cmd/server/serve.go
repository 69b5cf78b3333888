package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/regexplorer/internal/api"
	"github.com/vytor/regexplorer/internal/catalog"
	"github.com/vytor/regexplorer/internal/config"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/metrics"
	"github.com/vytor/regexplorer/internal/services"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.Store, "store", cfg.Store, "record store (memory, sqlite)")
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path when --store=sqlite")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "per-request timeout for /api routes")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.Default()

	log.Info("===========================================")
	log.Info("Regex Explorer Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store=%s", cfg.Store)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("regex_engine=%s", cfg.RegexEngine)
	log.Debug("match_timeout=%s", cfg.MatchTimeout)
	log.Debug("request_timeout=%s", cfg.RequestTimeout)

	evaluator, err := newEvaluator(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Error("failed to open store: %v", err)
		return err
	}
	defer func() {
		log.Debug("closing store")
		store.Close()
	}()

	catalog.Seed(ctx, store.Puzzles(), cfg.CatalogPath)
	if n, err := store.Puzzles().Count(ctx); err == nil {
		metrics.CatalogPuzzles.Set(float64(n))
	}

	puzzleService := services.NewPuzzleService(store.Puzzles())
	progressService := services.NewProgressService(store.Progress())

	srv := &api.Server{
		PuzzleService:     puzzleService,
		ProgressService:   progressService,
		EvaluationService: services.NewEvaluationService(puzzleService, progressService, evaluator),
		Store:             store,
		RequestTimeout:    cfg.RequestTimeout,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("HTTP server error: %v", err)
			return err
		}
	case <-sigCtx.Done():
		log.Info("received shutdown signal, initiating graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Regex Explorer Server Stopped")
	log.Info("===========================================")
	return nil
}
