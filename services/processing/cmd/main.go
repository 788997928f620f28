package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"jobtagger/common/database"
	"jobtagger/common/database/schema"
	"jobtagger/common/database/schema/migrations"
	"jobtagger/common/logging"
	"jobtagger/common/telemetry"
	"jobtagger/services/processing/internal/config"
	"jobtagger/services/processing/internal/events"
	"jobtagger/services/processing/internal/processor"
	"jobtagger/services/processing/internal/stages"
	"jobtagger/services/processing/internal/storage"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogFormat)
}

func newNATSConnection(cfg *config.Config, lc fx.Lifecycle) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("processing-service"),
		nats.RetryOnFailedConnect(true),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			nc.Close()
			return nil
		},
	})
	return nc, nil
}

func newClickHouseConnection(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (clickhouse.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.ClickHouseMigrate {
		if _, err := schema.NewMigrator(db.Conn(), logger).Migrate(ctx, migrations.All); err != nil {
			db.Close()
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db.Conn(), nil
}

func newTracer(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (trace.Tracer, error) {
	shutdown, err := telemetry.InitTracer(context.Background(), "jobtagger-processing", cfg.OTELCollectorURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdown(ctx)
			return nil
		},
	})
	return telemetry.GetTracer("jobtagger/processing"), nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newMetrics(reg *prometheus.Registry) *processor.Metrics {
	return processor.NewMetrics(reg)
}

func serveMetrics(cfg *config.Config, reg *prometheus.Registry, logger *zap.Logger, lc fx.Lifecycle) {
	if cfg.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Metrics server stopped", zap.Error(err))
				}
			}()
			logger.Info("Serving metrics", zap.String("addr", cfg.MetricsAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newClickHouseConnection,
			newTracer,
			newRegistry,
			newMetrics,
			stages.NewCleaner,
			stages.NewClassifier,
			stages.NewAnnotator,
			fx.Annotate(storage.NewClickHouseStore, fx.As(new(processor.JobStore))),
			fx.Annotate(processor.NewJobProcessor, fx.As(new(events.MessageProcessor))),
			events.NewHandler,
		),
		fx.Invoke(
			serveMetrics,
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
		),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
