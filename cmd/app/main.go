package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"walletledger/internal/config"
	"walletledger/internal/db"
	"walletledger/internal/email"
	"walletledger/internal/ledger"
	"walletledger/internal/logger"
	"walletledger/internal/pending"
	"walletledger/internal/server"
)

// @title Wallet Ledger API
// @version 1.0
// @description Custodial wallet service: Paystack deposits, wallet-to-wallet transfers and an append-only ledger.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(false)
		logger.Fatal("failed to load config", "error", err)
	}

	logger.Init(cfg.IsDevelopment())
	defer logger.Sync()
	logger.Info("starting wallet ledger", "env", cfg.Env, "port", cfg.Port)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}
	logger.Info("migrations completed", "path", cfg.MigrationsPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emailService := email.New(cfg)
	defer emailService.Close()
	if err := emailService.Ping(ctx); err != nil {
		logger.Warn("email queue unreachable, receipts will fail until redis is up", "error", err)
	}
	go emailService.Start(ctx)

	monitor := pending.NewMonitor(ledger.NewRepository(database), cfg.PendingDepositTTL, cfg.PendingScanInterval)
	go monitor.Start(ctx)

	srv := server.New(database, cfg, emailService)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", ":"+cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received signal", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server stopped")
}
