package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/pkg/tracing"
)

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "fulfillment",
		Short: "Order status, printing and notifications for the flower shop",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadEnv(envFile)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var migrate bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the agent WebSocket and the scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, getConfigs(), migrate)
		},
	}
	serveCmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return serveCmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			configs := getConfigs()
			logger := newLogger(configs.LogLevel)

			db, err := openDB(configs)
			if err != nil {
				return err
			}
			if err := postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			logger.InfoContext(c.Context(), "Schema migrated", "database", configs.DBName)
			return nil
		},
	}
}

func serve(ctx context.Context, configs cmd.Config, migrate bool) error {
	logger := newLogger(configs.LogLevel)

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName:      "fulfillment",
		Environment:      configs.Environment,
		ExporterEndpoint: configs.OTLPEndpoint,
		SampleRate:       configs.TraceSampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := openDB(configs)
	if err != nil {
		return err
	}
	if migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: configs.RedisAddr, Password: configs.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	amqpConn, amqpCh, err := rabbitmq.Connect(ctx, configs.RabbitMQURL, configs.RabbitMQExchange, logger)
	if err != nil {
		return err
	}
	defer amqpConn.Close()
	defer amqpCh.Close()

	kafkaClient, err := kafka.NewClient(configs.KafkaBrokers, configs.KafkaClientID)
	if err != nil {
		return fmt.Errorf("create kafka client: %w", err)
	}
	defer kafkaClient.Close()

	app := cmd.NewCompositionRoot(configs, cmd.Infrastructure{
		DB:            db,
		Redis:         rdb,
		Notifications: amqpCh,
		Events:        kafkaClient,
	}, logger)

	if err := app.WarmUp(ctx); err != nil {
		logger.WarnContext(ctx, "Settings not loaded at startup", "error", err)
	}

	e, err := app.CreateRouter(ctx)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		Handler:           tracing.WrapHTTPHandler(e, "fulfillment"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return app.RunRelay(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()
	shutdown(logger, configs.ShutdownTimeout, func(ctx context.Context) error {
		jobManager.StopAll()
		return errors.Join(app.Close(ctx), shutdownTracing(ctx))
	})
	return runErr
}

func shutdown(logger *slog.Logger, timeout time.Duration, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		logger.ErrorContext(ctx, "Shutdown incomplete", "error", err)
		return
	}
	logger.InfoContext(ctx, "Shutdown complete")
}

func openDB(configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}
