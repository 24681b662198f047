package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"leetcode_tracker/internal/api"
	"leetcode_tracker/internal/app/service"
	"leetcode_tracker/internal/common/security"
	"leetcode_tracker/internal/domain/repository"
	"leetcode_tracker/internal/platform/config"
	"leetcode_tracker/internal/platform/database"
	"leetcode_tracker/internal/platform/logging"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(); err != nil {
		logging.GetLogger("server").Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration and logging
	cfg := config.Load()
	logging.Configure(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger := logging.GetLogger("server")

	// 2. Storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	userRepo, problemRepo, db, err := openStorage(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	logger.Info("storage ready", "storage", cfg.Storage)

	// 3. Services
	issuer := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)
	authService := service.NewAuthService(userRepo, issuer, logging.GetLogger("auth"))
	problemService := service.NewProblemService(problemRepo, logging.GetLogger("problems"))

	// 4. Router and HTTP server
	router := api.NewRouter(issuer, authService, problemService, true)
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("could not listen on %s: %w", cfg.APIPort, err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (repository.UserRepository, repository.ProblemRepository, *sql.DB, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return repository.NewMemoryUserRepository(), repository.NewMemoryProblemRepository(), nil, nil
	case config.StoragePostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewPgUserRepository(db), repository.NewPgProblemRepository(db), db, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown STORAGE %q (want %s or %s)", cfg.Storage, config.StorageMemory, config.StoragePostgres)
	}
}
