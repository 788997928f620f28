package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobtagger/common/cache"
	"jobtagger/common/cache/memory"
	"jobtagger/common/cache/redis"
	"jobtagger/common/logging"
	"jobtagger/common/telemetry"
	"jobtagger/services/ingestion/internal/config"
	"jobtagger/services/ingestion/internal/messaging"
	"jobtagger/services/ingestion/internal/scheduler"
	"jobtagger/services/ingestion/internal/scraper"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracer, err := telemetry.InitTracer(context.Background(), "ingestion-service", cfg.OTELCollectorURL, logger)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) {}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracer(ctx)
	}()

	logger.Info("starting ingestion service",
		zap.Strings("keywords", cfg.SearchKeywords),
		zap.String("location", cfg.SearchLocation),
		zap.Int("max_jobs", cfg.MaxJobs),
		zap.Duration("polling_interval", cfg.PollingInterval),
		zap.Bool("publish_to_nats", cfg.PublishToNATS))

	searchCache := newCache(cfg, logger)
	defer searchCache.Close()

	var searcher scraper.Searcher
	linkedIn, err := scraper.NewLinkedInScraper(logger, scraper.Options{
		Headless:        cfg.Headless,
		PageLoadTimeout: cfg.PageLoadTimeout,
		SettleDelay:     cfg.SettleDelay,
		ScrollDelay:     cfg.ScrollDelay,
	})
	if err != nil {
		logger.Error("browser unavailable, searches will fall back to sample data", zap.Error(err))
		searcher = scraper.Failed(err)
	} else {
		defer func() {
			if err := linkedIn.Close(); err != nil {
				logger.Warn("failed to close browser", zap.Error(err))
			}
		}()
		searcher = scraper.NewCachingSearcher(linkedIn, searchCache, cfg.CacheTTL, logger)
	}

	var publisher messaging.Publisher
	if cfg.PublishToNATS {
		publisher, err = messaging.NewPublisher(logger, cfg)
		if err != nil {
			logger.Fatal("failed to create NATS publisher", zap.Error(err))
		}
		defer publisher.Close()
	}

	jobScheduler := scheduler.NewJobScheduler(searcher, publisher, logger, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- jobScheduler.Start(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			logger.Error("job scheduler failed", zap.Error(err))
		}
	case <-sigCh:
		logger.Info("shutting down...")
		jobScheduler.Stop()
		<-done
	}
	logger.Info("shutdown complete")
}

// newCache prefers Redis when REDIS_ADDR is set and reachable.
func newCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	opts := cache.DefaultOptions()
	opts.DefaultTTL = cfg.CacheTTL

	if cfg.RedisAddr != "" {
		opts.RedisURL = cfg.RedisAddr
		opts.RedisPassword = cfg.RedisPassword
		opts.RedisDB = cfg.RedisDB

		rc := redis.New(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := rc.Ping(ctx)
		if err == nil {
			logger.Info("using redis search cache", zap.String("addr", cfg.RedisAddr))
			return rc
		}
		logger.Warn("redis unreachable, using in-memory cache", zap.Error(err))
		_ = rc.Close()
	}
	return memory.New(opts)
}
