package scraper

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"jobtagger/common/cache"
	"jobtagger/common/models"
	"jobtagger/common/telemetry"
)

// CachingSearcher serves repeated searches from a cache. Cache failures are
// logged and otherwise ignored.
type CachingSearcher struct {
	next   Searcher
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachingSearcher(next Searcher, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachingSearcher {
	return &CachingSearcher{next: next, cache: c, ttl: ttl, logger: logger}
}

func cacheKey(q Query) string {
	return cache.Key("linkedin", "search", q.Keywords, q.Location, strconv.Itoa(q.MaxJobs))
}

func (s *CachingSearcher) Search(ctx context.Context, q Query) ([]models.Record, error) {
	ctx, span := tracer.Start(ctx, "CachingSearcher.Search")
	defer span.End()

	key := cacheKey(q)

	var cached models.RecordBatch
	err := s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		s.logger.Debug("cache hit for job search", zap.String("key", key))
		return cached, nil
	case stderrors.Is(err, cache.ErrNotFound):
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	default:
		span.SetAttributes(telemetry.String("cache.result", "error"))
		span.RecordError(err)
		s.logger.Warn("cache error for job search", zap.Error(err))
	}

	records, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	if err := s.cache.Set(ctx, key, models.RecordBatch(records), s.ttl); err != nil {
		s.logger.Warn("failed to cache job search results", zap.Error(err))
	}
	return records, nil
}
