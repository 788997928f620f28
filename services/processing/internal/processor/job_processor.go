package processor

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"jobtagger/common/errors"
	"jobtagger/common/telemetry"
	"jobtagger/services/processing/internal/annotator"
	"jobtagger/services/processing/internal/cleaner"
	"jobtagger/services/processing/internal/parser"
	"jobtagger/services/processing/internal/storage"
)

// JobStore persists annotated rows.
type JobStore interface {
	StoreJob(ctx context.Context, job *storage.AnnotatedJob) error
}

type JobProcessor struct {
	logger    *zap.Logger
	cleaner   *cleaner.Cleaner
	annotator *annotator.Annotator
	store     JobStore
	metrics   *Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

func NewJobProcessor(
	logger *zap.Logger,
	c *cleaner.Cleaner,
	a *annotator.Annotator,
	store JobStore,
	metrics *Metrics,
) *JobProcessor {
	return &JobProcessor{
		logger:    logger,
		cleaner:   c,
		annotator: a,
		store:     store,
		metrics:   metrics,
		tracer:    telemetry.GetTracer("jobtagger/processing/processor"),
		now:       time.Now,
	}
}

// ProcessJobPosting cleans, annotates and stores every record in one raw
// message. Records the cleaner or annotator drop are not errors; a message
// that cannot be decoded or a row that cannot be stored is.
func (p *JobProcessor) ProcessJobPosting(ctx context.Context, rawData []byte) error {
	ctx, span := p.tracer.Start(ctx, "ProcessJobPosting")
	defer span.End()
	defer p.metrics.observeDuration(time.Now())

	records, err := parser.ParseRawRecords(rawData)
	if err != nil {
		p.metrics.MessagesFailed.WithLabelValues("parse").Inc()
		span.SetStatus(codes.Error, "parse failed")
		return fmt.Errorf("parse job posting: %w", err)
	}
	raws, err := parser.SplitRaw(records)
	if err != nil {
		p.metrics.MessagesFailed.WithLabelValues("parse").Inc()
		return fmt.Errorf("parse job posting: %w", err)
	}

	cleaned := make([]int, 0, len(records))
	for i, r := range records {
		c, err := p.cleaner.Clean(r)
		if err != nil {
			p.logger.Info("Dropped job posting",
				zap.String("job_id", r.ID()),
				zap.Error(err),
			)
			continue
		}
		records[i] = c
		cleaned = append(cleaned, i)
	}
	p.metrics.observeStage(StageClean, len(cleaned), len(records)-len(cleaned))

	var storeErrs []error
	annotated := 0
	for _, i := range cleaned {
		r, err := p.annotator.Annotate(records[i])
		if err != nil {
			p.logger.Error("Failed to annotate job posting",
				zap.String("job_id", records[i].ID()),
				zap.Error(err),
			)
			continue
		}
		annotated++

		job := storage.NewAnnotatedJob(r, raws[i], p.now())
		if err := p.store.StoreJob(ctx, job); err != nil {
			p.metrics.Records.WithLabelValues(StageStore, OutcomeFailed).Inc()
			storeErrs = append(storeErrs, errors.Unavailable("store annotated job "+job.JobID, err))
			continue
		}
		p.metrics.Records.WithLabelValues(StageStore, OutcomeKept).Inc()
	}
	p.metrics.observeStage(StageAnnotate, annotated, len(cleaned)-annotated)

	span.SetAttributes(
		attribute.Int("records", len(records)),
		attribute.Int("cleaned", len(cleaned)),
		attribute.Int("annotated", annotated),
	)

	if len(storeErrs) > 0 {
		p.metrics.MessagesFailed.WithLabelValues("store").Inc()
		span.SetStatus(codes.Error, "store failed")
		return fmt.Errorf("store job posting: %w", stderrors.Join(storeErrs...))
	}
	return nil
}
