package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"wp-importer/api/router"
	"wp-importer/config"
	"wp-importer/db"
	"wp-importer/eventbus"
	"wp-importer/repositories"
	"wp-importer/services"
)

const shutdownTimeout = 10 * time.Second

// @title           WordPress to Ghost importer API
// @version         1.0
// @description     Imports WordPress authors, tags and posts into a Ghost MySQL database.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.APIToken == "" {
		config.Logger.Warn("API_TOKEN is not set, every /api request will be rejected")
	}

	sqlDB, err := db.NewMySQLConnection(ctx, cfg.DatabaseURL, cfg.Database)
	if err != nil {
		config.Logger.Errorf("failed to connect to MySQL: %v", err)
		os.Exit(1)
	}
	pool := db.NewPool(sqlDB)
	defer pool.Close()

	var sinks []services.ReportSink

	if cfg.MongoURI != "" {
		client, database, err := db.NewMongoDatabase(ctx, cfg.MongoURI, cfg.Mongo.DBName)
		if err != nil {
			config.Logger.Errorf("failed to connect to MongoDB, import reports disabled: %v", err)
		} else {
			defer func() {
				_ = client.Disconnect(context.Background())
			}()
			sinks = append(sinks, services.NewMongoReportSink(repositories.NewImportReportRepository(database)))
		}
	}

	if cfg.Brokers != "" {
		topic := eventbus.NewTopic(cfg.Kafka.Topic)
		if err := eventbus.EnsureTopics(ctx, cfg.Brokers, topic, cfg.Kafka.Partitions); err != nil {
			config.Logger.Warnf("failed to ensure kafka topics: %v", err)
		}
		bus, err := eventbus.NewKafkaEventBus(cfg.Brokers, config.ServiceName())
		if err != nil {
			config.Logger.Errorf("failed to create kafka producer, import events disabled: %v", err)
		} else {
			defer bus.Close()
			sinks = append(sinks, services.NewEventReportSink(bus, topic))
		}
	}

	importer := services.NewPostImporter(
		services.NewAuthorResolver(cfg.Import.DefaultAuthorID),
		services.NewTagResolver(),
		services.ImportOptionsFromConfig(cfg.Import),
	)

	importSvc := services.NewImportService(pool, importer, sinks...)
	r := router.New(router.Services{
		Posts:   importSvc,
		Authors: services.NewAuthorService(pool),
		Tags:    services.NewTagService(pool),
		Health:  services.NewHealthService(pool, cfg.Database.PingTimeout),
	}, cfg.APIToken)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           cors.AllowAll().Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Infof("importer listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			config.Logger.Errorf("http server stopped: %v", err)
		}
	case <-ctx.Done():
		config.Logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorf("http server shutdown: %v", err)
	}
	// flush pending import reports before the mongo client and kafka producer close
	importSvc.Wait()
	config.Logger.Info("importer stopped")
}
