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

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"catalogapi/catalog-service/internal/app/catalog/config"
	"catalogapi/catalog-service/internal/app/catalog/handler"
	"catalogapi/catalog-service/internal/app/catalog/processor"
	"catalogapi/catalog-service/internal/app/catalog/repository"
	"catalogapi/catalog-service/internal/app/catalog/service"
	"catalogapi/catalog-service/internal/app/catalog/util"
	"catalogapi/pkg/logger"
)

const serviceName = "catalog-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	// Кеш категорий опционален: без REDIS_HOST каждый запрос идёт в БД
	var categoryCache util.CategoryCache = util.NoopCache{}
	if cfg.Redis.Enabled() {
		redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		categoryCache = redisClient
		logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")
	}

	var publisher util.MessagePublisher = util.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().
			Str("topic", cfg.Kafka.Topic).
			Strs("brokers", cfg.Kafka.Brokers).
			Msg("Initialized Kafka producer")
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	catalogService := service.NewCatalogService(
		productRepo,
		categoryRepo,
		categoryCache,
		publisher,
		cfg.Catalog.QueryMode,
		cfg.Redis.TTL,
	)
	logger.Info().Str("query_mode", string(cfg.Catalog.QueryMode)).Msg("Initialized catalog service")

	statsCtx, stopStats := context.WithCancel(context.Background())
	defer stopStats()

	scheduler := processor.NewStatsScheduler(catalogService)
	if err := scheduler.Start(statsCtx, cfg.Catalog.StatsSchedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Catalog.StatsSchedule).Msg("Failed to start stats scheduler")
	}

	healthChecks := map[string]handler.Pinger{
		"database": repository.NewDatabasePinger(db),
	}
	if cfg.Redis.Enabled() {
		healthChecks["redis"] = categoryCache
	}

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	if !authMiddleware.Enabled() {
		logger.Warn().Msg("JWT_SECRET is empty, catalog mutations are not authenticated")
	}

	catalogHandler := handler.NewCatalogHandler(catalogService)
	router := handler.SetupRoutes(catalogHandler, authMiddleware, handler.NewHealthCheckHandler(healthChecks))

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	scheduler.Stop()
	stopStats()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
