package storage

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const insertAnnotatedJob = `
	INSERT INTO annotated_jobs (
		id, job_id, title, company, location, description, raw_description,
		skills, experience, job_type, education, salary, posted_date,
		source, source_url, created_at, updated_at, raw_data
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	)
`

type ClickHouseStore struct {
	db clickhouse.Conn
}

func NewClickHouseStore(db clickhouse.Conn) *ClickHouseStore {
	return &ClickHouseStore{db: db}
}

func (s *ClickHouseStore) StoreJob(ctx context.Context, job *AnnotatedJob) error {
	if err := s.db.Exec(ctx, insertAnnotatedJob,
		job.ID,
		job.JobID,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.RawDescription,
		job.Skills,
		job.Experience,
		job.JobType,
		job.Education,
		job.Salary,
		job.PostedDate,
		job.Source,
		job.SourceURL,
		job.CreatedAt,
		job.UpdatedAt,
		job.RawData,
	); err != nil {
		return fmt.Errorf("insert annotated job %s: %w", job.JobID, err)
	}
	return nil
}
