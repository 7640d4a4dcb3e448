package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"pidreg/internal/platform/audit"
	"pidreg/internal/platform/config"
	"pidreg/internal/platform/httpserver"
	"pidreg/internal/platform/logger"
	platformmetrics "pidreg/internal/platform/metrics"
	"pidreg/internal/platform/postgres"
	"pidreg/internal/registry"
	registrymetrics "pidreg/internal/registry/metrics"
	"pidreg/internal/registry/service"
	"pidreg/internal/registry/store"
	assetstore "pidreg/internal/registry/store/asset"
	assettypestore "pidreg/internal/registry/store/assettype"
	userstore "pidreg/internal/registry/store/user"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the registry service.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		users      service.UserStore
		assetTypes service.AssetTypeStore
		assets     service.AssetStore
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := store.EnsureSchema(ctx, db); err != nil {
			log.Error("failed to apply schema", "error", err.Error())
			os.Exit(1)
		}
		users = userstore.NewPostgres(db)
		assetTypes = assettypestore.NewPostgres(db)
		assets = assetstore.NewPostgres(db)
		log.Info("using postgres store")
	} else {
		memTypes := assettypestore.NewInMemory()
		store.SeedDefaultAssetTypes(memTypes)
		users = userstore.NewInMemory()
		assetTypes = memTypes
		assets = assetstore.NewInMemory()
		log.Info("using in-memory store", "seeded_asset_types", true)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(registrymetrics.New()),
	}
	if len(cfg.AuditBrokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(cfg.AuditBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("failed to connect audit publisher", "error", err.Error())
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, service.WithAuditPublisher(publisher))
		log.Info("audit publisher enabled", "topic", cfg.AuditTopic)
	}

	svc := registry.NewService(users, assetTypes, assets, opts...)
	h := registry.NewHandler(svc, log, platformmetrics.New())

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())
	h.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting pid registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
