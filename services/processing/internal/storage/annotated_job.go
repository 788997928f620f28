package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtagger/common/models"
)

// rowNamespace seeds the row UUIDs so a job id always maps to the same row.
var rowNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// AnnotatedJob is one row of the annotated_jobs table.
type AnnotatedJob struct {
	ID             string
	JobID          string
	Title          string
	Company        string
	Location       string
	Description    string
	RawDescription string
	Skills         []string
	Experience     string
	JobType        string
	Education      string
	Salary         string
	PostedDate     string
	Source         string
	SourceURL      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	RawData        string
}

// NewAnnotatedJob flattens an annotated record into a row. rawData is the
// message the record was decoded from.
func NewAnnotatedJob(r models.Record, rawData []byte, now time.Time) *AnnotatedJob {
	jobID := r.String(models.FieldJobID)
	return &AnnotatedJob{
		ID:             uuid.NewSHA1(rowNamespace, []byte(jobID)).String(),
		JobID:          jobID,
		Title:          r.String(models.FieldTitle),
		Company:        r.String(models.FieldCompany),
		Location:       r.String(models.FieldLocation),
		Description:    r.String(models.FieldDescription),
		RawDescription: r.String(models.FieldRawDescription),
		Skills:         splitSkills(r.String(models.FieldSkills)),
		Experience:     r.String(models.FieldExperience),
		JobType:        r.String(models.FieldJobType),
		Education:      r.String(models.FieldEducation),
		Salary:         r.String(models.FieldSalary),
		PostedDate:     r.String(models.FieldPostedDate),
		Source:         r.String(models.FieldSource),
		SourceURL:      r.String(models.FieldURL),
		CreatedAt:      now,
		UpdatedAt:      now,
		RawData:        string(rawData),
	}
}

func splitSkills(s string) []string {
	if s == "" || s == models.NotSpecified {
		return []string{}
	}
	return strings.Split(s, ", ")
}
