package main

// @title Emergency Response Microservice API
// @version 1.0.0
// @description Бэкенд экстренного реагирования. Принимает экстренный вызов с адресом,
// @description геокодирует его через Google Maps, находит ближайшую больницу,
// @description сохраняет найденные больницы без дубликатов и возвращает маршрут.
// @description Ответы провайдера кешируются (Redis или память процесса) на 10 минут.

// @contact.name API Support
// @contact.email support@emergency-microservice.com

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

	_ "github.com/emergency-microservice/docs"
	"github.com/emergency-microservice/internal/config"
	httpDelivery "github.com/emergency-microservice/internal/delivery/http"
	"github.com/emergency-microservice/internal/delivery/http/handler"
	"github.com/emergency-microservice/internal/domain/repository"
	"github.com/emergency-microservice/internal/infrastructure/googlemaps"
	"github.com/emergency-microservice/internal/pkg/logger"
	"github.com/emergency-microservice/internal/repository/cache"
	"github.com/emergency-microservice/internal/repository/postgres"
	"github.com/emergency-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Emergency Response Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Initialize lookup cache: Redis по умолчанию,
	// CACHE_DRIVER=memory для одиночного процесса без Redis
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis

	if cfg.Cache.Driver == "memory" {
		cacheRepo = cache.NewMemoryCacheRepository(log)
		log.Info("In-memory cache initialized")
	} else {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	hospitalRepo := postgres.NewHospitalRepository(db)
	userRepo := postgres.NewUserRepository(db)
	mapsRepo := googlemaps.NewGoogleMapsClient(&cfg.Google, cacheRepo, cfg.Cache.TTL, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	emergencyUC := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, log)
	authUC := usecase.NewAuthUseCase(userRepo, &cfg.Auth, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	emergencyHandler := handler.NewEmergencyHandler(emergencyUC, log)
	authHandler := handler.NewAuthHandler(authUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, emergencyHandler, authHandler)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
