package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/config"
	accounts "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	bookings "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/bookings/domain"
	categories "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/fixtures"
	foods "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/foods/domain"
	menus "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/menus/domain"
	pictures "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/handler"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/usecase"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/infrastructure"
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/broker"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/server"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/logging"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

// entities lists the names whose change events are streamed.
var entities = []string{
	restaurants.EntityName,
	foods.EntityName,
	categories.EntityName,
	menus.EntityName,
	bookings.EntityName,
	pictures.EntityName,
	accounts.EntityName,
}

var actions = []string{resource.ActionCreated, resource.ActionUpdated, resource.ActionDeleted}

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(databaseOptions(cfg, logger))
	if err != nil {
		return err
	}
	defer database.Close(db)
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, fixtures.Models()...); err != nil {
			return err
		}
	}

	hub := infrastructure.NewHub()
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	// Without brokers the hub is the publisher; with brokers every instance consumes the topics.
	var publisher port.Publisher = broadcastUC
	waitConsumers := func() {}
	if cfg.Kafka.Enabled() {
		slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.ConsumerGroup()))
		kafkaPublisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, cfg.Kafka.PublishTimeout)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		registry := infrastructure.NewHandlerRegistry()
		for _, entity := range entities {
			for _, action := range actions {
				topic := broker.TopicName(cfg.Kafka.TopicPrefix, entity, action)
				registry.Register(handler.NewEntityStreamHandler(entity, topic, []string{action}, broadcastUC))
			}
		}
		waitConsumers = broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup(), registry.Topics())
	}

	e, _, err := server.New(server.Deps{
		Config:    cfg,
		DB:        db,
		Hub:       hub,
		Publisher: usecase.NewNotifyChangeUseCase(publisher),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	e.Logger.SetOutput(log.Writer())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  2 * time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	stop()
	waitConsumers()
	return nil
}

func databaseOptions(cfg *config.Config, logger *slog.Logger) database.Options {
	dsn := cfg.Database.DSN
	if cfg.Database.Driver == "postgres" {
		dsn = cfg.Database.PostgresDSN()
	}
	return database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             dsn,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logger,
	}
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
