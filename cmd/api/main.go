package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spend/internal/config"
	"github.com/MrJamesThe3rd/spend/internal/export"
	spendHttp "github.com/MrJamesThe3rd/spend/internal/http"
	expenseHandler "github.com/MrJamesThe3rd/spend/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/spend/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spend/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spend/internal/http/manifest"
	txHandler "github.com/MrJamesThe3rd/spend/internal/http/transaction"
	"github.com/MrJamesThe3rd/spend/internal/importer"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/ledger/store"
	"github.com/MrJamesThe3rd/spend/internal/logging"
	"github.com/MrJamesThe3rd/spend/internal/matching"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	backend, err := store.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledgerService := ledger.NewService(backend)
	if err := ledgerService.Load(ctx); err != nil {
		slog.Error("failed to load ledger", "error", err)
		os.Exit(1)
	}

	var (
		importService   = importer.NewService()
		matchingService = matching.NewService(ledgerService)
		exportService   = export.NewService(ledgerService)
	)

	var (
		expenseH     = expenseHandler.NewHandler(ledgerService)
		transactionH = txHandler.NewHandler(ledgerService)
		importH      = importHandler.NewHandler(importService, ledgerService, matchingService)
		exportH      = exportHandler.NewHandler(exportService)
		manifestH    = manifest.NewHandler(cfg.App.Name)
	)

	router := spendHttp.New(cfg.CORS.AllowedOrigins, expenseH, transactionH, importH, exportH, manifestH)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "storage", cfg.Storage.Backend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
