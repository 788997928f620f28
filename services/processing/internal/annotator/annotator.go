// Package annotator attaches classifier labels to cleaned job records.
package annotator

import (
	"fmt"

	"go.uber.org/zap"

	"jobtagger/common/errors"
	"jobtagger/common/models"
	"jobtagger/services/processing/internal/classifier"
)

type Annotator struct {
	classifier *classifier.Classifier
	logger     *zap.Logger
}

func New(c *classifier.Classifier, logger *zap.Logger) *Annotator {
	return &Annotator{classifier: c, logger: logger}
}

// Annotate returns a copy of r with experience, job_type, education and
// salary set from its title and description.
func (a *Annotator) Annotate(r models.Record) (annotated models.Record, err error) {
	defer func() {
		if v := recover(); v != nil {
			annotated = nil
			err = errors.Recovered(fmt.Sprintf("failed to annotate job %s", r.ID()), v)
		}
	}()

	combined := r.String(models.FieldTitle) + " " + r.String(models.FieldDescription)
	labels := a.classifier.Classify(combined)

	out := r.Clone()
	out[models.FieldExperience] = labels.Experience
	out[models.FieldJobType] = labels.JobType
	out[models.FieldEducation] = labels.Education
	out[models.FieldSalary] = labels.Salary
	return out, nil
}

// AnnotateBatch annotates records in order, leaving out the ones that fail.
func (a *Annotator) AnnotateBatch(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		annotated, err := a.Annotate(r)
		if err != nil {
			a.logger.Error("Error annotating job",
				zap.String("job_id", r.ID()),
				zap.Error(err))
			continue
		}
		out = append(out, annotated)
	}
	return out
}
