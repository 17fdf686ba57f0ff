package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-stock-service/config"
	"github.com/fekuna/omnipos-stock-service/internal/app"
	invListenerPkg "github.com/fekuna/omnipos-stock-service/internal/inventory/listener"
	"github.com/fekuna/omnipos-stock-service/internal/memstore"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/postgres"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/retry"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/search"
	"github.com/fekuna/omnipos-stock-service/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.NewTranslator(cfg.I18n.DefaultLanguage)
	if err != nil {
		appLogger.Fatal("Could not load translations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]server.Check{}

	// 4. Connect to the Entity Store
	var stores app.Stores
	switch cfg.Store.Driver {
	case "memory":
		stores = app.MemoryStores(memstore.New(cfg.Postgres.LockTimeout))
		appLogger.Warn("Using in-memory store, data is lost on restart")
	case "postgres":
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

		stores = app.PostgresStores(db, cfg.Postgres.LockTimeout)
		checks["postgres"] = db.PingContext
	default:
		appLogger.Fatal("Unknown store driver", zap.String("driver", cfg.Store.Driver))
	}

	opts := app.Options{
		Policy: retry.Policy{Attempts: cfg.Retry.Attempts, Backoff: cfg.Retry.Backoff},
	}

	// 5. Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, registrations rely on row locks", zap.Error(err))
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
			opts.Locker = redisClient
			checks["redis"] = redisClient.Ping
		}
	}

	// 6. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, serial search uses the database", zap.Error(err))
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		opts.Search = esClient
	}

	// 7. Initialize Kafka
	var kafkaConsumer *broker.KafkaConsumer
	if cfg.Kafka.ListenerEnable {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.SalesTopic,
		})
		defer producer.Close()
		opts.Publisher = producer

		kafkaConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.PurchaseTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Kafka configured",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("purchase_topic", cfg.Kafka.PurchaseTopic),
			zap.String("sales_topic", cfg.Kafka.SalesTopic),
		)
	}

	// 8. Initialize UseCases
	useCases := app.NewUseCases(stores, opts, appLogger)

	// 9. Start servers
	grpcServer, healthServer := server.NewGRPCServer(useCases, translator, appLogger)
	opsServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           server.NewOpsRouter(checks),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", normalizePort(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		appLogger.Info("Starting ops server", zap.String("addr", opsServer.Addr))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if kafkaConsumer != nil {
		invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, useCases.Ledger, opts.Policy, appLogger)
		g.Go(func() error {
			invListener.Start(gctx)
			return nil
		})
	}

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("ops server shutdown", zap.Error(err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("server exited", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
