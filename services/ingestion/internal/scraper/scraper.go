// Package scraper collects raw job records from job boards.
package scraper

import (
	"context"

	"jobtagger/common/models"
)

// Query is one job search.
type Query struct {
	Keywords string
	Location string
	MaxJobs  int
}

type Searcher interface {
	Search(ctx context.Context, q Query) ([]models.Record, error)
}

type failed struct{ err error }

// Failed returns a Searcher whose every search fails with err. It stands in
// for a scraper that could not start.
func Failed(err error) Searcher {
	return failed{err: err}
}

func (f failed) Search(context.Context, Query) ([]models.Record, error) {
	return nil, f.err
}
