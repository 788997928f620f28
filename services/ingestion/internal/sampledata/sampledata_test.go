package sampledata

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtagger/common/models"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	records := Generate(rand.New(rand.NewSource(1)), now)

	require.Len(t, records, Count)
	for i, r := range records {
		n := 1000 + i
		assert.Equal(t, fmt.Sprintf("job_%d", n), r[models.FieldJobID])
		assert.Equal(t, fmt.Sprintf("https://example.com/job/%d", n), r[models.FieldURL])
		assert.Contains(t, titles, r[models.FieldTitle])
		assert.Contains(t, companies, r[models.FieldCompany])
		assert.Contains(t, descriptions, r[models.FieldDescription])
		assert.Contains(t, sources, r[models.FieldSource])
		assert.Regexp(t, `^City [1-5]$`, r[models.FieldLocation])

		posted, err := time.Parse(time.DateOnly, r.String(models.FieldPostedDate))
		require.NoError(t, err)
		age := now.Sub(posted)
		assert.GreaterOrEqual(t, age, 24*time.Hour)
		assert.LessOrEqual(t, age, 31*24*time.Hour)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	now := time.Now()
	a := Generate(rand.New(rand.NewSource(42)), now)
	b := Generate(rand.New(rand.NewSource(42)), now)
	assert.Equal(t, a, b)
}
