package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"listings-service/internal/adapters/localcache"
	logger_adapter "listings-service/internal/adapters/logger"
	postgres_adapter "listings-service/internal/adapters/postgres"
	rabbitmq_adapter "listings-service/internal/adapters/rabbitmq"
	"listings-service/internal/adapters/rest"
	"listings-service/internal/adapters/seed"
	"listings-service/internal/configs"
	"listings-service/internal/constants"
	"listings-service/internal/core/port"
	"listings-service/internal/core/usecase"
	fluentlogger "listings-service/pkg/fluent_logger"
	"listings-service/pkg/postgres"
	"listings-service/pkg/rabbitmq/rabbitmq_common"
	"listings-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

// App wires the service together.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	connManager  *rabbitmq_common.ConnectionManager
	producer     *rabbitmq_producer.Publisher
	logger       port.LoggerPort
}

// NewApp is the composition root: every dependency is created and connected
// here. The remote store and the event broker are both optional; the service
// keeps working from the local cache and seed set without them.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- loggers ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- local cache ---
	var blobStore port.BlobStorePort
	if appConfig.Cache.Dir != "" {
		fileStore, err := localcache.NewFileBlobStore(appConfig.Cache.Dir)
		if err != nil {
			appLogger.Error("Failed to create file blob store", err, nil)
			return nil, fmt.Errorf("failed to create file blob store: %w", err)
		}
		blobStore = fileStore
	} else {
		appLogger.Warn("No cache directory configured, local cache is in-memory only", nil)
		blobStore = localcache.NewMemoryBlobStore()
	}

	cacheAdapter, err := localcache.NewCacheAdapter(blobStore)
	if err != nil {
		appLogger.Error("Failed to create cache adapter", err, nil)
		return nil, fmt.Errorf("failed to create cache adapter: %w", err)
	}
	appLogger.Info("Local cache initialized.", port.Fields{"dir": appConfig.Cache.Dir})

	// --- remote store (optional) ---
	var (
		dbPool      *pgxpool.Pool
		remoteStore port.RemoteStorePort
	)
	if appConfig.Database.URL != "" {
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}

		storeAdapter, err := postgres_adapter.NewListingStoreAdapter(dbPool)
		if err != nil {
			appLogger.Error("Failed to create listing store adapter", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create listing store adapter: %w", err)
		}
		remoteStore = storeAdapter
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)
	} else {
		appLogger.Warn("DATABASE_URL not set, running in local-only mode", nil)
	}

	// --- event publisher (optional) ---
	var (
		connManager   *rabbitmq_common.ConnectionManager
		eventProducer *rabbitmq_producer.Publisher
		listingEvents port.ListingEventsPort
	)
	if appConfig.RabbitMQ.URL != "" {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManager, err = rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			closePool(dbPool)
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		eventProducer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             constants.ListingsExchange,
			ExchangeType:             constants.ListingsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			connManager.Close()
			closePool(dbPool)
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}

		listingEvents, err = rabbitmq_adapter.NewListingEventsAdapter(eventProducer, constants.RoutingKeyListingChanged)
		if err != nil {
			appLogger.Error("Failed to create listing events adapter", err, nil)
			connManager.Close()
			closePool(dbPool)
			return nil, err
		}
		appLogger.Info("RabbitMQ event publishing initialized.", nil)
	} else {
		appLogger.Info("RABBITMQ_URL not set, listing change events disabled", nil)
	}

	seedGenerator := seed.NewGenerator()

	// --- use cases ---
	getPublishedUC := usecase.NewGetPublishedListingsUseCase(remoteStore, cacheAdapter, seedGenerator)
	getAllUC := usecase.NewGetAllListingsUseCase(remoteStore, cacheAdapter, seedGenerator)
	upsertUC := usecase.NewUpsertListingUseCase(remoteStore, cacheAdapter, listingEvents)
	deleteUC := usecase.NewDeleteListingUseCase(remoteStore, cacheAdapter, listingEvents)
	appLogger.Info("All use cases initialized.", nil)

	// --- REST server ---
	listingHandlers := rest.NewListingHandlers(getPublishedUC, getAllUC, upsertUC, deleteUC)
	apiServer := rest.NewServer(appConfig.Rest.PORT, listingHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:       appConfig,
		dbPool:       dbPool,
		apiServer:    apiServer,
		fluentClient: fluentClient,
		connManager:  connManager,
		producer:     eventProducer,
		logger:       appLogger,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a server
// error, then tears everything down in order.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if a.apiServer != nil {
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.producer != nil {
			if err := a.producer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// stdout directly, the fluent sink may already be gone
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	}

	return nil
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
