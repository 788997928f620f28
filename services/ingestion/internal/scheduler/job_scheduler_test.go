package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtagger/common/models"
	"jobtagger/common/storage"
	"jobtagger/services/ingestion/internal/config"
	"jobtagger/services/ingestion/internal/scraper"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []scraper.Query
	results map[string][]models.Record
	errs    map[string]error
}

func (f *fakeSearcher) Search(_ context.Context, q scraper.Query) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if err := f.errs[q.Keywords]; err != nil {
		return nil, err
	}
	return f.results[q.Keywords], nil
}

type fakePublisher struct {
	mu   sync.Mutex
	ids  []string
	fail map[string]bool
}

func (f *fakePublisher) PublishRecord(_ context.Context, r models.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[r.ID()] {
		return fmt.Errorf("nats unavailable")
	}
	f.ids = append(f.ids, r.ID())
	return nil
}

func (f *fakePublisher) Close() {}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		SearchKeywords: []string{"golang", "python"},
		SearchLocation: "Remote",
		MaxJobs:        3,
		RawDir:         t.TempDir(),
		PublishWorkers: 3,
		PublishRate:    0,
	}
}

func TestJobScheduler_RunOnce(t *testing.T) {
	cfg := testConfig(t)
	searcher := &fakeSearcher{
		results: map[string][]models.Record{
			"golang": {{models.FieldJobID: "job_1_1"}, {models.FieldJobID: "job_2_1"}},
			"python": {{models.FieldJobID: "job_1_2"}},
		},
	}
	publisher := &fakePublisher{fail: map[string]bool{"job_2_1": true}}

	s := NewJobScheduler(searcher, publisher, zap.NewNop(), cfg)
	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RunStats{Scraped: 3, Saved: 3, Published: 2, PublishFailed: 1}, stats)
	assert.ElementsMatch(t, []string{"job_1_1", "job_1_2"}, publisher.ids)

	require.Len(t, searcher.queries, 2)
	assert.Equal(t, scraper.Query{Keywords: "golang", Location: "Remote", MaxJobs: 3}, searcher.queries[0])

	saved, err := storage.LoadJSON(filepath.Join(cfg.RawDir, "jobs_raw.json"))
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "job_1_1", saved[0].ID())
	assert.Equal(t, "job_1_2", saved[2].ID())
}

func TestJobScheduler_FallsBackToSampleData(t *testing.T) {
	cfg := testConfig(t)
	searcher := &fakeSearcher{errs: map[string]error{
		"golang": fmt.Errorf("blocked"),
		"python": fmt.Errorf("blocked"),
	}}

	s := NewJobScheduler(searcher, nil, zap.NewNop(), cfg)
	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.UsedSampleData)
	assert.Zero(t, stats.Scraped)
	assert.Equal(t, 10, stats.Saved)
	assert.Zero(t, stats.Published)

	saved, err := storage.LoadJSON(filepath.Join(cfg.RawDir, "jobs_raw.json"))
	require.NoError(t, err)
	require.Len(t, saved, 10)
	assert.Equal(t, "job_1000", saved[0].ID())
	assert.Equal(t, "job_1009", saved[9].ID())
}

func TestJobScheduler_FailedScraperUsesSampleData(t *testing.T) {
	cfg := testConfig(t)
	publisher := &fakePublisher{}

	s := NewJobScheduler(scraper.Failed(fmt.Errorf("no browser")), publisher, zap.NewNop(), cfg)
	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.UsedSampleData)
	assert.Equal(t, int32(10), stats.Published)
	assert.Len(t, publisher.ids, 10)
}

func TestJobScheduler_StartRunsOnceWithoutInterval(t *testing.T) {
	cfg := testConfig(t)
	searcher := &fakeSearcher{results: map[string][]models.Record{"golang": {{models.FieldJobID: "job_1_1"}}}}

	s := NewJobScheduler(searcher, nil, zap.NewNop(), cfg)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not return")
	}
	assert.Len(t, searcher.queries, 2)
}

func TestJobScheduler_StopEndsPolling(t *testing.T) {
	cfg := testConfig(t)
	cfg.PollingInterval = time.Hour
	searcher := &fakeSearcher{results: map[string][]models.Record{"golang": {{models.FieldJobID: "job_1_1"}}}}

	s := NewJobScheduler(searcher, nil, zap.NewNop(), cfg)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		searcher.mu.Lock()
		defer searcher.mu.Unlock()
		return len(searcher.queries) == 2
	}, 5*time.Second, 10*time.Millisecond)

	s.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestJobScheduler_RateLimitedPublishing(t *testing.T) {
	cfg := testConfig(t)
	cfg.PublishRate = 1000
	publisher := &fakePublisher{}
	searcher := &fakeSearcher{results: map[string][]models.Record{
		"golang": {{models.FieldJobID: "a"}, {models.FieldJobID: "b"}, {models.FieldJobID: "c"}},
	}}

	s := NewJobScheduler(searcher, publisher, zap.NewNop(), cfg)
	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), stats.Published)
}
