package scraper

import (
	"fmt"
	"strings"
	"time"

	"jobtagger/common/models"
)

const sourceLinkedIn = "LinkedIn"

// Card selectors, tried in order until one matches.
var cardSelectors = []string{
	"div.base-card.relative.w-full",
	"div[data-job-id]",
	".job-card-container",
	".jobs-search-results__list-item",
}

var (
	titleSelectors    = []string{"h3", "h4", ".job-title", "[data-test='job-title']"}
	companySelectors  = []string{"h4", "h5", ".job-company", "[data-test='job-company']"}
	locationSelectors = []string{"span", ".job-location", "[data-test='job-location']"}
)

// card is the part of a job card the field extraction reads.
type card interface {
	// Text returns the trimmed text of the first descendant matching
	// selector. A missing element is an error.
	Text(selector string) (string, error)
	// Attr returns an attribute of the first descendant matching selector.
	Attr(selector, name string) (string, error)
}

// safeGetText returns the first non-empty text among selectors, or "".
func safeGetText(c card, selectors []string) string {
	for _, sel := range selectors {
		text, err := c.Text(sel)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

// buildRecord extracts one raw record from the index-th card (1-based). ok is
// false when the card has no title or no company.
func buildRecord(c card, index int, now time.Time) (models.Record, bool) {
	title := safeGetText(c, titleSelectors)
	company := safeGetText(c, companySelectors)
	if title == "" || company == "" {
		return nil, false
	}

	location := safeGetText(c, locationSelectors)
	if location == "" {
		location = models.NotSpecified
	}

	href, err := c.Attr("a", "href")
	if err != nil {
		href = ""
	}

	return models.Record{
		models.FieldJobID:       fmt.Sprintf("job_%d_%d", index, now.Unix()),
		models.FieldTitle:       title,
		models.FieldCompany:     company,
		models.FieldLocation:    location,
		models.FieldSource:      sourceLinkedIn,
		models.FieldURL:         stripQuery(href),
		models.FieldDescription: "",
		models.FieldPostedDate:  "",
	}, true
}

func stripQuery(u string) string {
	base, _, _ := strings.Cut(u, "?")
	return base
}
