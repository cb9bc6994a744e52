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

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/config"
	"github.com/mamadbah2/feedbook/internal/repository/mongodb"
	"github.com/mamadbah2/feedbook/internal/repository/records"
	"github.com/mamadbah2/feedbook/internal/repository/sheets"
	"github.com/mamadbah2/feedbook/internal/repository/sqlite"
	"github.com/mamadbah2/feedbook/internal/repository/store"
	"github.com/mamadbah2/feedbook/internal/scheduler"
	"github.com/mamadbah2/feedbook/internal/server/handlers"
	"github.com/mamadbah2/feedbook/internal/server/router"
	billingsvc "github.com/mamadbah2/feedbook/internal/service/billing"
	bookkeepingsvc "github.com/mamadbah2/feedbook/internal/service/bookkeeping"
	commandsvc "github.com/mamadbah2/feedbook/internal/service/commands"
	reportingsvc "github.com/mamadbah2/feedbook/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/feedbook/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/feedbook/pkg/clients/whatsapp"
	"github.com/mamadbah2/feedbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	recordStore, err := openStore(context.Background(), cfg.Store)
	if err != nil {
		baseLogger.Fatal("failed to open record store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		if err := recordStore.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close record store", zap.Error(err))
		}
	}()
	baseLogger.Info("record store ready", zap.String("driver", cfg.Store.Driver))

	repo := records.NewRepository(recordStore, baseLogger.Named("repo.records"))
	billingSvc := billingsvc.NewService(repo, baseLogger.Named("svc.billing"))
	bookkeepingSvc := bookkeepingsvc.NewService(repo, baseLogger.Named("svc.bookkeeping"))
	reportingSvc := reportingsvc.NewService(repo, cfg.Reporting.FeedTypes, baseLogger.Named("svc.reporting"))

	routes := router.Handlers{
		Ledger:  handlers.NewLedgerHandler(billingSvc, bookkeepingSvc, reportingSvc, baseLogger.Named("handlers.ledger")),
		Parties: handlers.NewPartyHandler(bookkeepingSvc, reportingSvc, baseLogger.Named("handlers.parties")),
	}

	schedOpts := scheduler.Options{
		Schedule:   cfg.Reporting.CronSchedule,
		OperatorID: cfg.WhatsApp.OperatorID,
	}
	if loc, err := time.LoadLocation(cfg.Reporting.Timezone); err != nil {
		baseLogger.Warn("unknown timezone, using local time", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	} else {
		schedOpts.Location = loc
	}

	if cfg.WhatsApp.Enabled() {
		commandDispatcher := commandsvc.NewService(reportingSvc, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
		schedOpts.Messaging = messagingSvc
	} else {
		baseLogger.Warn("whatsapp token missing, chat commands and digest messages disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		schedOpts.Exporter = sheetsRepo
	}

	engine := router.New(routes, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(reportingSvc, schedOpts, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath, cfg.SQLiteLogMode)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.StoreMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}
