package stages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtagger/common/models"
	"jobtagger/services/processing/internal/config"
)

func TestNewClassifier(t *testing.T) {
	c, err := NewClassifier(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Bachelor's", c.Education("high school diploma"))

	c, err = NewClassifier(&config.Config{EducationFullTable: true}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "No Degree", c.Education("high school diploma"))
}

func TestNewClassifier_KeywordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
salary:
  default: Unknown
  categories:
    - label: Competitive
      keywords: [lpa, lakh, ctc]
`), 0o644))

	c, err := NewClassifier(&config.Config{KeywordsFile: path}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Competitive", c.Salary("ctc 20"))
	assert.Equal(t, "Unknown", c.Salary("negotiable"))

	_, err = NewClassifier(&config.Config{KeywordsFile: path + ".missing"}, zap.NewNop())
	assert.Error(t, err)
}

func TestCleanAndAnnotate_DictionaryLemmatizer(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the full english dictionary")
	}

	cl, err := NewCleaner(zap.NewNop())
	require.NoError(t, err)
	c, err := NewClassifier(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	an := NewAnnotator(c, zap.NewNop())

	tests := []struct {
		name        string
		record      models.Record
		title       string
		description string
		skills      string
		labels      map[string]string
	}{
		{
			name: "backend posting",
			record: models.Record{
				models.FieldJobID:       "job_1000",
				models.FieldTitle:       "Senior Backend Engineer",
				models.FieldCompany:     "TechCorp",
				models.FieldDescription: "We need a senior backend engineer with Python and SQL experience, 5+ years required.",
			},
			title:       "senior backend engineer",
			description: "need senior backend engineer python sql experience year required",
			skills:      "python, sql",
			labels: map[string]string{
				models.FieldExperience: "Senior",
				models.FieldJobType:    "Backend",
				models.FieldEducation:  "Bachelor's",
				models.FieldSalary:     "Not specified",
			},
		},
		{
			name: "data analysis posting",
			record: models.Record{
				models.FieldJobID:       "job_1001",
				models.FieldTitle:       "Data Analyst",
				models.FieldCompany:     "DataSystems",
				models.FieldDescription: "Data analysis with Excel",
			},
			title:       "data analyst",
			description: "data analysis excel",
			skills:      "Not specified",
			labels:      map[string]string{models.FieldJobType: "Data"},
		},
		{
			name: "data science posting",
			record: models.Record{
				models.FieldJobID:       "job_1002",
				models.FieldTitle:       "Data Engineer",
				models.FieldCompany:     "DataSystems",
				models.FieldDescription: "Data science platform",
			},
			title:       "data engineer",
			description: "data science platform",
			skills:      "Not specified",
			labels:      map[string]string{models.FieldJobType: "Data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, err := cl.Clean(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.title, cleaned[models.FieldTitle])
			assert.Equal(t, tt.description, cleaned[models.FieldDescription])
			assert.Equal(t, tt.skills, cleaned[models.FieldSkills])

			annotated, err := an.Annotate(cleaned)
			require.NoError(t, err)
			for field, label := range tt.labels {
				assert.Equal(t, label, annotated[field], field)
			}
		})
	}
}
