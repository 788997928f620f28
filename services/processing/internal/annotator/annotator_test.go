package annotator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"jobtagger/common/errors"
	"jobtagger/common/models"
	"jobtagger/services/processing/internal/classifier"
)

func TestAnnotator_Annotate(t *testing.T) {
	a := New(classifier.New(classifier.DefaultTables(false)), zap.NewNop())

	in := models.Record{
		models.FieldJobID:       "job_1000",
		models.FieldTitle:       "senior backend engineer",
		models.FieldDescription: "need senior backend engineer python sql experience year required",
	}

	out, err := a.Annotate(in)
	require.NoError(t, err)

	assert.Equal(t, "Senior", out[models.FieldExperience])
	assert.Equal(t, "Backend", out[models.FieldJobType])
	assert.Equal(t, "Bachelor's", out[models.FieldEducation])
	assert.Equal(t, "Not specified", out[models.FieldSalary])
	assert.NotContains(t, in, models.FieldExperience)
}

func TestAnnotator_Annotate_Defaults(t *testing.T) {
	a := New(classifier.New(classifier.DefaultTables(false)), zap.NewNop())

	out, err := a.Annotate(models.Record{models.FieldJobID: "job_1"})
	require.NoError(t, err)

	assert.Equal(t, "Mid", out[models.FieldExperience])
	assert.Equal(t, "Other", out[models.FieldJobType])
	assert.Equal(t, "Bachelor's", out[models.FieldEducation])
	assert.Equal(t, "Not specified", out[models.FieldSalary])
}

func TestAnnotator_Annotate_TitleOnly(t *testing.T) {
	a := New(classifier.New(classifier.DefaultTables(false)), zap.NewNop())

	out, err := a.Annotate(models.Record{
		models.FieldJobID: "job_2",
		models.FieldTitle: "junior flutter developer mba 8 lpa",
	})
	require.NoError(t, err)

	assert.Equal(t, "Entry", out[models.FieldExperience])
	assert.Equal(t, "Mobile", out[models.FieldJobType])
	assert.Equal(t, "Master's", out[models.FieldEducation])
	assert.Equal(t, "Competitive", out[models.FieldSalary])
}

func TestAnnotator_AnnotateBatch(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := New(classifier.New(classifier.DefaultTables(false)), zap.New(core))

	records := []models.Record{
		{models.FieldJobID: "job_1", models.FieldTitle: "qa engineer"},
		{models.FieldJobID: "job_2", models.FieldTitle: "devops engineer"},
	}

	out := a.AnnotateBatch(records)
	require.Len(t, out, 2)
	assert.Equal(t, "QA", out[0][models.FieldJobType])
	assert.Equal(t, "DevOps", out[1][models.FieldJobType])
	assert.Zero(t, logs.Len())
}

func TestAnnotator_AnnotateBatch_DropsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	// A nil classifier panics on use, which stands in for any per-record failure.
	a := New(nil, zap.New(core))

	out := a.AnnotateBatch([]models.Record{{models.FieldJobID: "job_9"}})
	assert.Empty(t, out)

	entries := logs.FilterMessage("Error annotating job").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "job_9", entries[0].ContextMap()["job_id"])

	_, err := a.Annotate(models.Record{})
	assert.True(t, errors.IsType(err, errors.ErrTypeInternal))
}
