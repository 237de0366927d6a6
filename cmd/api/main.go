// Command api runs the parcel-shipping backend: the HTTP API plus the
// background shipment watcher.
//
// @title        Parcelhub Shipping API
// @version      1.0
// @description  Parcel quoting, shipment tracking and state-change notifications.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parcelhub/shipping-api/internal/api"
	"github.com/parcelhub/shipping-api/internal/core/service"
	"github.com/parcelhub/shipping-api/internal/infrastructure/config"
	mongodb "github.com/parcelhub/shipping-api/internal/infrastructure/db/mongo"
	redisdb "github.com/parcelhub/shipping-api/internal/infrastructure/db/redis"
	"github.com/parcelhub/shipping-api/internal/infrastructure/watcher"
	"github.com/parcelhub/shipping-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Outbound adapters ---
	shipmentRepo := mongodb.NewShipmentRepository(db)
	cityRepo := mongodb.NewCityRepository(db)
	fareRepo := mongodb.NewFareRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	cache := redisdb.NewCache(rdb)
	notifier := redisdb.NewNotifier(rdb, log)

	if err := shipmentRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure shipment indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}

	// --- Use cases ---
	fareService := service.NewFareService(fareRepo)
	parcelService := service.NewParcelService(cityRepo, fareService, log)
	shipmentService := service.NewShipmentService(shipmentRepo, notifier, log)
	cityService := service.NewCityService(cityRepo, cache, cfg.Cache.CityTTL, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	// --- Background watcher ---
	w := watcher.New(shipmentRepo, shipmentService, cfg.Watcher.PollInterval, log)
	go w.Start(ctx)

	// --- HTTP transport ---
	e := api.NewRouter(db, rdb, api.Services{
		Auth:       authService,
		Cities:     cityService,
		Pricing:    parcelService,
		Shipments:  shipmentService,
		Subscriber: notifier,
	}, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
