package scraper

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtagger/common/models"
)

type fakeCard struct {
	texts map[string]string
	attrs map[string]string
}

func (f fakeCard) Text(selector string) (string, error) {
	if t, ok := f.texts[selector]; ok {
		return t, nil
	}
	return "", fmt.Errorf("no element matches %q", selector)
}

func (f fakeCard) Attr(selector, name string) (string, error) {
	if v, ok := f.attrs[selector+"@"+name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no element matches %q", selector)
}

func TestSafeGetText(t *testing.T) {
	c := fakeCard{texts: map[string]string{
		"h4":         "   ",
		".job-title": " Go Developer ",
	}}

	assert.Equal(t, "Go Developer", safeGetText(c, titleSelectors))
	assert.Equal(t, "", safeGetText(c, []string{"h1", "h2"}))
}

func TestBuildRecord(t *testing.T) {
	now := time.Unix(1700000000, 0)
	c := fakeCard{
		texts: map[string]string{
			"h3": "Backend Engineer",
			"h4": "Globex",
		},
		attrs: map[string]string{
			"a@href": "https://www.linkedin.com/jobs/view/123?refId=abc&trackingId=xyz",
		},
	}

	r, ok := buildRecord(c, 3, now)
	require.True(t, ok)

	assert.Equal(t, models.Record{
		models.FieldJobID:       "job_3_1700000000",
		models.FieldTitle:       "Backend Engineer",
		models.FieldCompany:     "Globex",
		models.FieldLocation:    "Not specified",
		models.FieldSource:      "LinkedIn",
		models.FieldURL:         "https://www.linkedin.com/jobs/view/123",
		models.FieldDescription: "",
		models.FieldPostedDate:  "",
	}, r)
}

func TestBuildRecord_FallbackSelectors(t *testing.T) {
	c := fakeCard{texts: map[string]string{
		".job-title":    "QA Lead",
		"h5":            "Initech",
		".job-location": "Austin, TX",
	}}

	r, ok := buildRecord(c, 1, time.Unix(0, 0))
	require.True(t, ok)
	assert.Equal(t, "QA Lead", r[models.FieldTitle])
	assert.Equal(t, "Initech", r[models.FieldCompany])
	assert.Equal(t, "Austin, TX", r[models.FieldLocation])
	assert.Equal(t, "", r[models.FieldURL])
}

func TestBuildRecord_MissingTitleOrCompany(t *testing.T) {
	_, ok := buildRecord(fakeCard{texts: map[string]string{"h3": "Engineer"}}, 1, time.Now())
	assert.False(t, ok)

	_, ok = buildRecord(fakeCard{texts: map[string]string{"h5": "Acme"}}, 1, time.Now())
	assert.False(t, ok)
}

func TestStripQuery(t *testing.T) {
	assert.Equal(t, "https://x.io/a", stripQuery("https://x.io/a?b=c"))
	assert.Equal(t, "https://x.io/a", stripQuery("https://x.io/a"))
	assert.Equal(t, "", stripQuery(""))
}
