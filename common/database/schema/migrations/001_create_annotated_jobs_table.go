package migrations

import "jobtagger/common/database/schema"

var CreateAnnotatedJobsTable = schema.Migration{
	Version:     1,
	Description: "Create annotated_jobs table",
	Up: `
		CREATE TABLE IF NOT EXISTS annotated_jobs (
			id UUID,
			job_id String,
			title String,
			company String,
			location String,
			description String,
			raw_description String,
			skills Array(String),
			experience LowCardinality(String),
			job_type LowCardinality(String),
			education LowCardinality(String),
			salary LowCardinality(String),
			posted_date String,
			source LowCardinality(String),
			source_url String,
			created_at DateTime,
			updated_at DateTime,
			raw_data String
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY id
	`,
	Down: `DROP TABLE IF EXISTS annotated_jobs`,
}

// All lists every migration in version order.
var All = []schema.Migration{
	CreateAnnotatedJobsTable,
}
