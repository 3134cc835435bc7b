package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking-graphql/internal/db"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/handlers"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/objectstore"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/routes"
	ucBarber "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/barber"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------------------------
	// Storage
	// ------------------------------
	mongoHandle := dbpkg.NewHandle(cfg, logger)
	health := map[string]handlers.Pinger{"mongo": mongoHandle}

	var repo booking.Repository = repository.NewMongoRepository(mongoHandle)
	if cfg.CacheEnabled() {
		cache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		defer cache.Close()

		repo = repository.NewCachedRepository(repo, cache, cfg.CacheTTL, logger)
		health["redis"] = cache
	}

	// ------------------------------
	// Audit
	// ------------------------------
	var sink audit.Sink = audit.LogSink{Logger: logger}
	if cfg.AuditEnabled() {
		auditDB, err := dbpkg.NewAuditDB(cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to open audit database")
		}
		sink = audit.New(auditDB)
	}
	dispatcher := audit.NewDispatcher(sink, logger)

	// ------------------------------
	// Identity + object store
	// ------------------------------
	management := identity.NewManagementClient(
		cfg.AuthDomain,
		identity.ClientCredentialsHTTPClient(cfg.AuthDomain, cfg.AuthClientID, cfg.AuthClientSecret),
	)
	callers := identity.NewContextBuilder(
		identity.NewOIDCVerifier(cfg.AuthDomain, cfg.AuthAudience),
		management,
		cfg.AuthDomain,
		logger,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ------------------------------
	// HTTP
	// ------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	err := routes.RegisterRoutes(r, routes.Dependencies{
		Repo:    repo,
		Audit:   dispatcher,
		Users:   management,
		Callers: callers,
		Signer:  objectstore.NewS3Presigner(cfg),
		Identity: ucBarber.IdentitySettings{
			Connection:   cfg.AuthConnection,
			BarberRoleID: cfg.AuthBarberRoleID,
		},
		Registry: registry,
		Health:   health,
		Logger:   logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to build graphql schema")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
	dispatcher.Close()
	if err := mongoHandle.Close(shutdownCtx); err != nil {
		logger.WithError(err).Error("mongo disconnect failed")
	}
}
