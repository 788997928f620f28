package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Subject(t *testing.T) {
	t.Setenv("RAW_SUBJECT", "jobs.test")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "jobs.test", cfg.RawSubject)
	assert.Equal(t, "processing-service", cfg.QueueGroup)
	assert.Equal(t, "data/cleaned/jobs_cleaned.json", cfg.CleanedFile())
	assert.False(t, cfg.EducationFullTable)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RAW_INPUT_FILES", " a.json, ,b.json ")
	t.Setenv("EDUCATION_FULL_TABLE", "true")
	t.Setenv("NATS_CONN_TIMEOUT", "3s")
	t.Setenv("CLICKHOUSE_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("CLEANED_DIR", "/tmp/out")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.json", "b.json"}, cfg.RawInputFiles)
	assert.True(t, cfg.EducationFullTable)
	assert.Equal(t, 3*time.Second, cfg.NATSConnTimeout)
	assert.Equal(t, 10, cfg.ClickHouseMaxOpenConns)
	assert.Equal(t, "/tmp/out/jobs_cleaned.json", cfg.CleanedFile())
}
