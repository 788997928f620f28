package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtagger/common/models"
)

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jobs.json")
	records := []models.Record{
		{"job_id": "job_1", "title": "Dev <Go>", "company": "Café"},
		{"job_id": "job_2", "title": "QA"},
	}

	require.NoError(t, SaveJSON(records, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dev <Go>")
	assert.Contains(t, string(data), "Café")
	assert.Contains(t, string(data), "\n  {")

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "job_2", loaded[1].ID())
}

func TestSaveJSON_EmptyBatchWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, SaveJSON(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestLoadJSON_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadJSON(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"job_id": `), 0o644))
	_, err = LoadJSON(bad)
	assert.Error(t, err)
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	records := []models.Record{
		{"title": "dev", "job_id": "job_1"},
		{"job_id": "job_2", "skills": "python, sql", "salary": nil},
	}

	require.NoError(t, SaveCSV(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"job_id", "salary", "skills", "title"}, rows[0])
	assert.Equal(t, []string{"job_1", "", "", "dev"}, rows[1])
	assert.Equal(t, []string{"job_2", "", "python, sql", ""}, rows[2])
}

func TestSaveCSV_EmptyBatchIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, SaveCSV(nil, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
