package scheduler

import (
	"context"

	"go.uber.org/zap"

	"jobtagger/common/models"
	"jobtagger/services/ingestion/internal/scraper"
)

type searchProcessor struct {
	scheduler *JobScheduler
	logger    *zap.Logger
}

func newSearchProcessor(scheduler *JobScheduler, logger *zap.Logger) *searchProcessor {
	return &searchProcessor{
		scheduler: scheduler,
		logger:    logger,
	}
}

// runSearches runs every configured keyword search in turn. A failed search
// is logged and contributes no records.
func (p *searchProcessor) runSearches(ctx context.Context) []models.Record {
	cfg := p.scheduler.config

	var all []models.Record
	for _, keywords := range cfg.SearchKeywords {
		if ctx.Err() != nil {
			break
		}

		q := scraper.Query{
			Keywords: keywords,
			Location: cfg.SearchLocation,
			MaxJobs:  cfg.MaxJobs,
		}
		records, err := p.scheduler.searcher.Search(ctx, q)
		if err != nil {
			p.logger.Error("search failed",
				zap.String("keywords", keywords),
				zap.String("location", cfg.SearchLocation),
				zap.Error(err))
			continue
		}

		p.logger.Info("collected job postings",
			zap.String("keywords", keywords),
			zap.Int("count", len(records)))
		all = append(all, records...)
	}
	return all
}

func (p *searchProcessor) feedRecords(ctx context.Context, records []models.Record, recordChan chan<- models.Record) {
	defer close(recordChan)
	for _, r := range records {
		select {
		case recordChan <- r:
		case <-ctx.Done():
			return
		}
	}
}
