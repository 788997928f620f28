package processor

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"jobtagger/common/models"
	"jobtagger/common/storage"
	"jobtagger/services/processing/internal/annotator"
	"jobtagger/services/processing/internal/cleaner"
)

// Pipeline runs the clean and annotate stages over JSON files.
type Pipeline struct {
	logger    *zap.Logger
	cleaner   *cleaner.Cleaner
	annotator *annotator.Annotator
	metrics   *Metrics
}

func NewPipeline(logger *zap.Logger, c *cleaner.Cleaner, a *annotator.Annotator, metrics *Metrics) *Pipeline {
	return &Pipeline{
		logger:    logger,
		cleaner:   c,
		annotator: a,
		metrics:   metrics,
	}
}

// CleanFiles loads and cleans each input in turn. A file that cannot be
// loaded is logged and skipped.
func (p *Pipeline) CleanFiles(paths []string) []models.Record {
	var all []models.Record
	for _, path := range paths {
		p.logger.Info("Processing file", zap.String("file", filepath.Base(path)))

		records, err := storage.LoadJSON(path)
		if err != nil {
			p.logger.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}

		cleaned, report := p.cleaner.CleanBatch(records)
		p.metrics.observeStage(StageClean, report.Kept, len(report.Dropped))
		p.logger.Info("Cleaned jobs",
			zap.String("file", filepath.Base(path)),
			zap.Int("kept", report.Kept),
			zap.Int("dropped", len(report.Dropped)),
		)
		all = append(all, cleaned...)
	}
	return all
}

// RunCleaner cleans paths into outDir/jobs_cleaned.{json,csv}. Nothing is
// written when no record survives. Save failures are returned.
func (p *Pipeline) RunCleaner(paths []string, outDir string) (int, error) {
	records := p.CleanFiles(paths)
	if len(records) == 0 {
		p.logger.Warn("No valid jobs found")
		return 0, nil
	}

	if err := save(records, outDir, "jobs_cleaned"); err != nil {
		return 0, err
	}

	p.logger.Info("Saved cleaned jobs",
		zap.Int("count", len(records)),
		zap.String("dir", outDir),
	)
	return len(records), nil
}

// RunAnnotator annotates the cleaned JSON at input into
// outDir/jobs_annotated.{json,csv}. An unreadable input counts as empty.
func (p *Pipeline) RunAnnotator(input, outDir string) ([]models.Record, error) {
	records, err := storage.LoadJSON(input)
	if err != nil {
		p.logger.Warn("Failed to load cleaned jobs", zap.String("file", input), zap.Error(err))
		records = nil
	}
	p.logger.Info("Loaded jobs", zap.Int("count", len(records)))

	annotated := p.annotator.AnnotateBatch(records)
	p.metrics.observeStage(StageAnnotate, len(annotated), len(records)-len(annotated))

	if err := save(annotated, outDir, "jobs_annotated"); err != nil {
		return nil, err
	}
	return annotated, nil
}

func save(records []models.Record, dir, name string) error {
	jsonPath := filepath.Join(dir, name+".json")
	if err := storage.SaveJSON(records, jsonPath); err != nil {
		return fmt.Errorf("save %s: %w", jsonPath, err)
	}
	csvPath := filepath.Join(dir, name+".csv")
	if err := storage.SaveCSV(records, csvPath); err != nil {
		return fmt.Errorf("save %s: %w", csvPath, err)
	}
	return nil
}
