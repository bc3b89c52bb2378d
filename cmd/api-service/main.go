package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/analytics"
	"github.com/cuongbtq/tunel-admin/internal/api/handler"
	"github.com/cuongbtq/tunel-admin/internal/api/router"
	"github.com/cuongbtq/tunel-admin/internal/api/storage"
	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/cuongbtq/tunel-admin/internal/auth"
	"github.com/cuongbtq/tunel-admin/internal/config"
	"github.com/cuongbtq/tunel-admin/internal/upload"
	"github.com/cuongbtq/tunel-admin/shared/logger"
	"github.com/cuongbtq/tunel-admin/shared/rabbitmq"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	// Optional Redis for the token denylist
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = initRedis(startCtx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		appLogger.Info("Redis connection established", slog.String("addr", cfg.Redis.Addr))
	}

	authService, err := initAuth(&cfg.Auth, &cfg.Redis, redisClient, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}

	uploader, staticDir, err := initUploader(startCtx, &cfg.Upload, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize uploads: %w", err)
	}

	// Optional RabbitMQ for audit events
	var rabbitClient *rabbitmq.Client
	var publisher audit.Publisher = audit.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err = initRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		publisher = audit.NewBusPublisher(rabbitClient)
		appLogger.Info("RabbitMQ connection established")
	}
	recorder := audit.NewRecorder(publisher, appLogger.Logger, cfg.Audit.BufferSize, cfg.Audit.PublishTimeout)

	jobs := storage.NewJobStore(storage.SeedJobs(), time.Now)
	companies := storage.NewCompanyStore(storage.SeedCompanies(), time.Now)

	provider, err := analytics.NewProvider(jobs, companies)
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	deps := &handler.Dependencies{
		Logger:    appLogger.Logger,
		Jobs:      jobs,
		Companies: companies,
		Content:   storage.NewContentStore(storage.SeedHomepage(), time.Now),
		Auth:      authService,
		Uploader:  uploader,
		Analytics: provider,
		Audit:     recorder,
		Version:   cfg.App.Version,
		StartedAt: time.Now(),
	}

	// Initialize router
	r := initRouter(cfg, deps, staticDir)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
		slog.String("upload_driver", cfg.Upload.Driver),
		slog.Bool("redis", cfg.Redis.Enabled),
		slog.Bool("rabbitmq", cfg.RabbitMQ.Enabled),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", slog.String("signal", sig.String()))
	case runErr = <-serverErr:
		appLogger.Error("Server failed", slog.Any("error", runErr))
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", slog.Any("error", err))
		runErr = errors.Join(runErr, err)
	}

	// Drain pending audit events before the bus goes away
	if err := recorder.Close(ctx); err != nil {
		appLogger.Warn("Audit recorder did not drain in time", slog.Any("error", err))
	}
	if rabbitClient != nil {
		rabbitClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	appLogger.Info("Server shutdown complete")
	return runErr
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
		NoColor:      cfg.NoColor,
	}

	return logger.New(loggerCfg)
}

// initRedis connects to Redis and checks the connection
func initRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// initAuth builds the admin credentials, token issuer and denylist
func initAuth(cfg *config.AuthConfig, redisCfg *config.RedisConfig, redisClient *redis.Client, logger *slog.Logger) (*auth.Service, error) {
	creds, err := auth.NewCredentials(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, err
	}

	var denylist auth.Denylist = auth.NewMemoryDenylist()
	if redisClient != nil {
		denylist = auth.NewRedisDenylist(redisClient, redisCfg.KeyPrefix+"revoked:")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	return auth.NewService(creds, tokens, denylist, logger), nil
}

// initUploader selects the upload backend. The returned directory is served
// at /uploads and is empty for remote backends.
func initUploader(ctx context.Context, cfg *config.UploadConfig, logger *slog.Logger) (*upload.Uploader, string, error) {
	switch cfg.Driver {
	case config.UploadDriverS3:
		store, err := upload.NewS3Storage(ctx, upload.S3Config{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, "", err
		}
		return upload.NewUploader(store, cfg.BaseURL, cfg.MaxFileSize), "", nil
	default:
		store, err := upload.NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, "", err
		}
		return upload.NewUploader(store, cfg.BaseURL, cfg.MaxFileSize), store.Dir(), nil
	}
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		QueueName:          cfg.Queue.Name,
		QueueDurable:       cfg.Queue.Durable,
		QueueAutoDelete:    cfg.Queue.AutoDelete,
		QueueExclusive:     cfg.Queue.Exclusive,
		RoutingKey:         cfg.RoutingKey,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}

	return rabbitmq.NewClient(rabbitConfig, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(cfg *config.Config, deps *handler.Dependencies, staticDir string) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	return router.SetupRouter(deps, router.Options{
		CORS:               cfg.CORS,
		StaticDir:          staticDir,
		MaxMultipartMemory: cfg.Upload.MaxFileSize,
	})
}
