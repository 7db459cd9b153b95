package main

// @title Together As One API
// @version 1.0.0
// @description Finds boreholes and water tanks shared by neighbours during municipal water outages.
// @description
// @description Основные возможности:
// @description - Поиск точек по району, дням, времени суток и тексту
// @description - Сортировка по расстоянию от найденной или выбранной на карте точки
// @description - Сессии поиска с отложенным применением фильтров
// @description - Регистрация новых скважин и подписка на новости

// @contact.name Together As One

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/together-as-one/docs"
	"github.com/together-as-one/internal/config"
	httpDelivery "github.com/together-as-one/internal/delivery/http"
	"github.com/together-as-one/internal/delivery/http/handler"
	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/finder"
	"github.com/together-as-one/internal/pkg/logger"
	"github.com/together-as-one/internal/pkg/metrics"
	"github.com/together-as-one/internal/repository/cache"
	"github.com/together-as-one/internal/repository/postgres"
	redisRepo "github.com/together-as-one/internal/repository/redis"
	"github.com/together-as-one/internal/repository/static"
	"github.com/together-as-one/internal/usecase"
	"github.com/together-as-one/internal/worker"
	"github.com/together-as-one/internal/worker/janitor"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Together As One API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("source", cfg.Finder.Source),
	)

	checks := make(map[string]httpDelivery.HealthChecker)

	// 3. Metrics
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
	}

	// 4. Water point source
	var (
		pointRepo repository.WaterPointRepository
		subRepo   repository.SubscriptionRepository
		db        *postgres.DB
	)
	switch cfg.Finder.Source {
	case config.SourcePostgres:
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		pointRepo = postgres.NewWaterPointRepository(db)
		subRepo = postgres.NewSubscriptionRepository(db)
		checks["postgres"] = db
		log.Info("PostgreSQL connected")
	default:
		pointRepo, err = static.NewWaterPointRepository(log)
		if err != nil {
			log.Fatal("Failed to load embedded water points", zap.Error(err))
		}
		log.Info("Using embedded water point dataset")
	}

	// 5. Redis is optional: without it the listing is not cached and
	// registrations are refused
	var (
		cacheRepo  repository.CacheRepository
		streamRepo repository.StreamRepository
	)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache and registrations", zap.Error(err))
	} else {
		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		checks["redis"] = redisClient
		log.Info("Redis connected")
	}

	// 6. Use cases
	var (
		sourceRecorder usecase.SourceRecorder
		regRecorder    usecase.RegistrationRecorder
		observer       finder.RunObserver
		gauge          usecase.SessionGauge
	)
	if collector != nil {
		sourceRecorder, regRecorder, observer, gauge = collector, collector, collector, collector
	}

	loader := usecase.NewSourceLoader(pointRepo, cacheRepo, cfg.Cache.SourceCacheTTL, sourceRecorder, log)
	waterPointUC := usecase.NewWaterPointUseCase(loader, pointRepo, cfg.Finder.Location(), log)
	sessionUC := usecase.NewSessionUseCase(loader, usecase.SessionOptions{
		InitialLoadDelay: cfg.Finder.InitialLoadDelay,
		ApplyDelay:       cfg.Finder.ApplyDelay,
		SearchDebounce:   cfg.Finder.SearchDebounce,
		TTL:              cfg.Finder.SessionTTL,
		TimeZone:         cfg.Finder.Location(),
		Observer:         observer,
		Gauge:            gauge,
	}, log)

	var registrationUC *usecase.RegistrationUseCase
	if streamRepo != nil {
		registrationUC = usecase.NewRegistrationUseCase(streamRepo, nil, nil, regRecorder, log)
	}
	var subscriptionUC *usecase.SubscriptionUseCase
	if subRepo != nil {
		subscriptionUC = usecase.NewSubscriptionUseCase(subRepo, log)
	}

	log.Info("Use cases initialized")

	// 7. HTTP
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		WaterPoint:   handler.NewWaterPointHandler(waterPointUC, log),
		Session:      handler.NewSessionHandler(sessionUC, log),
		Registration: handler.NewRegistrationHandler(registrationUC, subscriptionUC, log),
	}, collector, checks)

	// 8. Session janitor
	workerManager := worker.NewWorkerManager(log, 5*time.Second)
	workerManager.Register(janitor.NewSessionJanitor(sessionUC, cfg.Finder.JanitorInterval, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start session janitor", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping session janitor", zap.Error(err))
	}
	sessionUC.Shutdown()

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
