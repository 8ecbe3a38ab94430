package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/config"
	"github.com/petr-panteleyev/money-manager-sub002/internal/database"
	moneyHttp "github.com/petr-panteleyev/money-manager-sub002/internal/http"
	accountHandler "github.com/petr-panteleyev/money-manager-sub002/internal/http/account"
	reconcileHandler "github.com/petr-panteleyev/money-manager-sub002/internal/http/reconcile"
	recordsHandler "github.com/petr-panteleyev/money-manager-sub002/internal/http/records"
	txHandler "github.com/petr-panteleyev/money-manager-sub002/internal/http/transaction"
	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/reconcile"
	"github.com/petr-panteleyev/money-manager-sub002/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		records       = cache.New()
		repo          = store.New(db)
		ledgerService = ledger.NewService(repo, records)
		importService = importer.NewService(repo, records)
		reconcileSvc  = reconcile.NewService(records)
	)

	if err := importService.Preload(context.Background()); err != nil {
		slog.Error("failed to preload records", "error", err)
		os.Exit(1)
	}

	var (
		transactionH = txHandler.NewHandler(ledgerService, records)
		accountH     = accountHandler.NewHandler(ledgerService, records)
		reconcileH   = reconcileHandler.NewHandler(reconcileSvc, ledgerService, records)
		recordsH     = recordsHandler.NewHandler(importService)
	)

	router := moneyHttp.New(transactionH, accountH, reconcileH, recordsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
