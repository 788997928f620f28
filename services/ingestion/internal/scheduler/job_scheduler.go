package scheduler

import (
	"context"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobtagger/common/errors"
	"jobtagger/common/models"
	"jobtagger/common/storage"
	"jobtagger/common/telemetry"
	"jobtagger/services/ingestion/internal/config"
	"jobtagger/services/ingestion/internal/messaging"
	"jobtagger/services/ingestion/internal/sampledata"
	"jobtagger/services/ingestion/internal/scraper"
)

var tracer = telemetry.GetTracer("jobtagger/ingestion/scheduler")

const rawFileName = "jobs_raw.json"

type JobScheduler struct {
	searcher        scraper.Searcher
	publisher       messaging.Publisher
	logger          *zap.Logger
	config          *config.Config
	limiter         *rate.Limiter
	mutex           sync.Mutex
	cancel          context.CancelFunc
	workerManager   *workerManager
	searchProcessor *searchProcessor
	now             func() time.Time
}

// NewJobScheduler wires a scheduler. publisher may be nil, in which case
// records are only written to disk.
func NewJobScheduler(searcher scraper.Searcher, publisher messaging.Publisher, logger *zap.Logger, config *config.Config) *JobScheduler {
	limit := rate.Inf
	if config.PublishRate > 0 {
		limit = rate.Limit(config.PublishRate)
	}

	scheduler := &JobScheduler{
		searcher:  searcher,
		publisher: publisher,
		logger:    logger,
		config:    config,
		limiter:   rate.NewLimiter(limit, 1),
		now:       time.Now,
	}
	scheduler.workerManager = newWorkerManager(scheduler, logger)
	scheduler.searchProcessor = newSearchProcessor(scheduler, logger)
	return scheduler
}

// Start runs one collection pass and then, when a polling interval is set,
// another every interval until ctx is done or Stop is called.
func (s *JobScheduler) Start(ctx context.Context) error {
	s.mutex.Lock()
	if s.cancel != nil {
		s.mutex.Unlock()
		return nil
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.mutex.Unlock()

	defer s.Stop()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("initial collection failed", zap.Error(err))
		if s.config.PollingInterval <= 0 {
			return err
		}
	}
	if s.config.PollingInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.config.PollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.Error("periodic collection failed", zap.Error(err))
			}
		}
	}
}

func (s *JobScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// RunStats summarizes one collection pass.
type RunStats struct {
	Scraped        int
	UsedSampleData bool
	Saved          int
	Published      int32
	PublishFailed  int32
}

// RunOnce scrapes every configured search, falls back to sample data when
// nothing was found, saves the raw file and publishes each record.
func (s *JobScheduler) RunOnce(ctx context.Context) (RunStats, error) {
	ctx, span := tracer.Start(ctx, "JobScheduler.RunOnce")
	defer span.End()

	var stats RunStats

	records := s.searchProcessor.runSearches(ctx)
	stats.Scraped = len(records)
	if len(records) == 0 {
		s.logger.Warn("no jobs found, using sample data instead")
		records = sampledata.Generate(rand.New(rand.NewSource(s.now().UnixNano())), s.now())
		stats.UsedSampleData = true
	}

	saved, err := s.saveRecords(records)
	if err != nil {
		span.RecordError(err)
		return stats, err
	}
	stats.Saved = saved

	if s.publisher != nil && len(records) > 0 {
		stats.Published, stats.PublishFailed = s.publishAll(ctx, records)
	}

	span.SetAttributes(
		telemetry.Int("jobs.scraped", stats.Scraped),
		telemetry.Int("jobs.saved", stats.Saved),
		telemetry.Int("jobs.published", int(stats.Published)),
	)
	s.logger.Info("completed job collection",
		zap.Int("scraped", stats.Scraped),
		zap.Bool("sample_data", stats.UsedSampleData),
		zap.Int("saved", stats.Saved),
		zap.Int32("published", stats.Published),
		zap.Int32("publish_failed", stats.PublishFailed))
	return stats, nil
}

func (s *JobScheduler) saveRecords(records []models.Record) (int, error) {
	if len(records) == 0 {
		s.logger.Info("no jobs to save")
		return 0, nil
	}

	path := filepath.Join(s.config.RawDir, rawFileName)
	if err := storage.SaveJSON(records, path); err != nil {
		return 0, errors.Internal("saving raw jobs", err)
	}
	s.logger.Info("saved jobs", zap.Int("count", len(records)), zap.String("file", path))
	return len(records), nil
}

func (s *JobScheduler) publishAll(ctx context.Context, records []models.Record) (int32, int32) {
	ctx, span := tracer.Start(ctx, "JobScheduler.publishAll")
	defer span.End()

	recordChan := make(chan models.Record)
	stats := &publishStats{}

	wg := s.workerManager.startWorkers(ctx, stats, recordChan)
	go s.searchProcessor.feedRecords(ctx, records, recordChan)
	wg.Wait()

	return stats.published, stats.failed
}

func (s *JobScheduler) publishRecord(ctx context.Context, record models.Record) error {
	ctx, span := tracer.Start(ctx, "JobScheduler.publishRecord")
	span.SetAttributes(telemetry.String("job_id", record.ID()))
	defer span.End()

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := s.publisher.PublishRecord(ctx, record); err != nil {
		span.RecordError(err)
		return errors.Internal("failed to publish job record", err)
	}
	return nil
}
