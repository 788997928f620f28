// Package classifier maps posting text to experience, job type, education and
// salary labels using ordered keyword tables.
package classifier

import (
	"jobtagger/common/models"
	"jobtagger/services/processing/internal/keywords"
)

// TableMatcher is a compiled Table. Safe for concurrent use.
type TableMatcher struct {
	table Table
	set   *keywords.Set
}

func NewTableMatcher(t Table) *TableMatcher {
	groups := make([][]string, len(t.Categories))
	for i, c := range t.Categories {
		groups[i] = c.Keywords
	}
	return &TableMatcher{table: t, set: keywords.Compile(groups)}
}

// Classify returns "Not specified" for empty text, the first category in
// declared order with a keyword in text, or the table default.
func (m *TableMatcher) Classify(text string) string {
	if text == "" {
		return models.NotSpecified
	}
	if i := m.set.First(text); i >= 0 {
		return m.table.Categories[i].Label
	}
	return m.table.Default
}

// Labels holds the four annotation values for one text.
type Labels struct {
	Experience string
	JobType    string
	Education  string
	Salary     string
}

type Classifier struct {
	experience *TableMatcher
	jobType    *TableMatcher
	education  *TableMatcher
	salary     *TableMatcher
}

func New(t Tables) *Classifier {
	return &Classifier{
		experience: NewTableMatcher(t.Experience),
		jobType:    NewTableMatcher(t.JobType),
		education:  NewTableMatcher(t.Education),
		salary:     NewTableMatcher(t.Salary),
	}
}

func (c *Classifier) Experience(text string) string { return c.experience.Classify(text) }
func (c *Classifier) JobType(text string) string    { return c.jobType.Classify(text) }
func (c *Classifier) Education(text string) string  { return c.education.Classify(text) }
func (c *Classifier) Salary(text string) string     { return c.salary.Classify(text) }

func (c *Classifier) Classify(text string) Labels {
	return Labels{
		Experience: c.Experience(text),
		JobType:    c.JobType(text),
		Education:  c.Education(text),
		Salary:     c.Salary(text),
	}
}
