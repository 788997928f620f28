// Package cleaner normalizes raw job records and drops the ones that cannot
// be identified.
package cleaner

import (
	"fmt"

	"go.uber.org/zap"

	"jobtagger/common/errors"
	"jobtagger/common/models"
	"jobtagger/services/processing/internal/skills"
	"jobtagger/services/processing/internal/text"
)

const rawDescriptionLimit = 500

var normalizedFields = []string{
	models.FieldTitle,
	models.FieldDescription,
	models.FieldCompany,
	models.FieldLocation,
}

type Cleaner struct {
	normalizer *text.Normalizer
	extractor  *skills.Extractor
	logger     *zap.Logger
}

func New(normalizer *text.Normalizer, extractor *skills.Extractor, logger *zap.Logger) *Cleaner {
	return &Cleaner{
		normalizer: normalizer,
		extractor:  extractor,
		logger:     logger,
	}
}

// Clean returns a normalized copy of r. Records without a job id, or whose
// title and company both normalize to nothing, fail with INVALID_INPUT. A
// panic while cleaning is returned as an INTERNAL error.
func (c *Cleaner) Clean(r models.Record) (cleaned models.Record, err error) {
	defer func() {
		if v := recover(); v != nil {
			cleaned = nil
			err = errors.Recovered(fmt.Sprintf("failed to clean job %s", r.ID()), v)
		}
	}()

	if !r.HasValue(models.FieldJobID) {
		return nil, errors.InvalidInput("missing job_id", nil)
	}

	out := r.Clone()
	for _, field := range normalizedFields {
		out[field] = c.normalizer.Normalize(r[field])
	}

	if out[models.FieldTitle] == "" && out[models.FieldCompany] == "" {
		return nil, errors.InvalidInput("missing title and company", nil)
	}

	description, _ := out.Text(models.FieldDescription)
	out[models.FieldSkills] = c.extractor.Extract(description).String()
	out[models.FieldRawDescription] = truncate(r.String(models.FieldDescription), rawDescriptionLimit)

	return out, nil
}

// Drop records why one input record was left out of a batch.
type Drop struct {
	JobID string
	Err   error
}

type Report struct {
	Kept    int
	Dropped []Drop
}

// CleanBatch cleans every record in order and omits the ones that fail.
func (c *Cleaner) CleanBatch(records []models.Record) ([]models.Record, Report) {
	var report Report
	out := make([]models.Record, 0, len(records))

	for _, r := range records {
		cleaned, err := c.Clean(r)
		if err != nil {
			report.Dropped = append(report.Dropped, Drop{JobID: r.ID(), Err: err})
			c.logDrop(r.ID(), err)
			continue
		}
		out = append(out, cleaned)
	}

	report.Kept = len(out)
	return out, report
}

func (c *Cleaner) logDrop(jobID string, err error) {
	if errors.IsType(err, errors.ErrTypeInvalidInput) {
		c.logger.Info("Skipping job",
			zap.String("job_id", jobID),
			zap.Error(err))
		return
	}
	c.logger.Error("Error cleaning job",
		zap.String("job_id", jobID),
		zap.Error(err))
}

func truncate(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
