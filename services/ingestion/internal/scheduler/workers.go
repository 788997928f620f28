package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"jobtagger/common/models"
)

type publishStats struct {
	published int32
	failed    int32
}

type workerManager struct {
	scheduler *JobScheduler
	logger    *zap.Logger
}

func newWorkerManager(scheduler *JobScheduler, logger *zap.Logger) *workerManager {
	return &workerManager{
		scheduler: scheduler,
		logger:    logger,
	}
}

func (w *workerManager) startWorkers(ctx context.Context, stats *publishStats, recordChan <-chan models.Record) *sync.WaitGroup {
	var wg sync.WaitGroup

	numWorkers := w.scheduler.config.PublishWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range recordChan {
				if err := w.scheduler.publishRecord(ctx, record); err != nil {
					w.logger.Error("failed to publish job record",
						zap.String("job_id", record.ID()),
						zap.Error(err))
					atomic.AddInt32(&stats.failed, 1)
					continue
				}
				atomic.AddInt32(&stats.published, 1)
			}
		}()
	}

	return &wg
}
