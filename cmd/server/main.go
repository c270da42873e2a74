// Command server runs the disbursement tracking API.
//
// @title                      Disbursement Tracking API
// @version                    1.0
// @description                Role-based fund disbursement tracking service.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/govtrack/disbursement-system/docs"
	"github.com/govtrack/disbursement-system/internal/api"
	"github.com/govtrack/disbursement-system/internal/api/metrics"
	"github.com/govtrack/disbursement-system/internal/core/session"
	"github.com/govtrack/disbursement-system/internal/infrastructure/config"
	mongorepo "github.com/govtrack/disbursement-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/govtrack/disbursement-system/internal/infrastructure/db/redis"
	"github.com/govtrack/disbursement-system/internal/infrastructure/queue"
	"github.com/govtrack/disbursement-system/pkg/logger"
)

const depthPollInterval = 5 * time.Second

func main() {
	// Variables may come from a .env file in development or from the
	// process environment in containers; a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	if err := mongorepo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index setup failed")
	}
	if err := mongorepo.NewDisbursementRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("disbursement index setup failed")
	}

	// --- Session registry ---
	registry := session.New()
	registry.Subscribe(func(e session.Event) {
		switch e.Kind {
		case session.SignedIn:
			metrics.ActiveSessions.Inc()
		case session.SignedOut:
			metrics.ActiveSessions.Dec()
		}
	})

	// --- Audit dispatcher ---
	auditRepo := mongorepo.NewAuditRepository(db)
	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)
	go pollQueueDepths(ctx, dispatcher)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		Registry:  registry,
		Audit:     dispatcher,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced server shutdown")
	}

	log.Info().Msg("server stopped")
}

// pollQueueDepths mirrors the audit dispatcher's channel depths into
// the per-worker gauge until ctx is cancelled.
func pollQueueDepths(ctx context.Context, d *queue.AuditDispatcher) {
	ticker := time.NewTicker(depthPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for i, depth := range d.Depths() {
				metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(depth))
			}
		}
	}
}
