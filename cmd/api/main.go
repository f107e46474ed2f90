// The api binary serves the dispatch API: accounts, sessions, orders, and
// tow-truck assignment, backed by MongoDB with a Redis session cache.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/roadrescue/dispatch-system/internal/api"
	"github.com/roadrescue/dispatch-system/internal/api/handler"
	"github.com/roadrescue/dispatch-system/internal/core/service"
	"github.com/roadrescue/dispatch-system/internal/infrastructure/config"
	"github.com/roadrescue/dispatch-system/internal/infrastructure/db/mongo"
	"github.com/roadrescue/dispatch-system/internal/infrastructure/db/redis"
	"github.com/roadrescue/dispatch-system/pkg/logger"
)

const sessionTTL = time.Hour

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	authRepo := mongo.NewAuthRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	truckRepo := mongo.NewTowTruckRepository(db)

	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("auth index creation failed")
	}
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("order index creation failed")
	}

	sessionCache := redis.NewSessionCache(redisClient)

	authService := service.NewAuthService(authRepo, sessionCache, cfg.API.JWTSecret, sessionTTL, log)
	orderService := service.NewOrderService(orderRepo, truckRepo, authRepo, log)
	truckService := service.NewTowTruckService(truckRepo, orderRepo)

	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		OrderService:    orderService,
		TowTruckService: truckService,
		HealthDeps: map[string]handler.Pinger{
			"mongo": mongoPinger{client: mongoClient},
			"redis": redisPinger{client: redisClient},
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.API.Port).Msg("dispatch api listening")
		if err := e.Start(":" + cfg.API.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

type mongoPinger struct {
	client *gomongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
