// Package sampledata generates the synthetic job records used when scraping
// yields nothing.
package sampledata

import (
	"fmt"
	"math/rand"
	"time"

	"jobtagger/common/models"
)

const (
	Count     = 10
	firstID   = 1000
	maxCity   = 5
	maxAgeDay = 30
)

var (
	titles = []string{
		"Software Engineer", "Data Scientist", "Frontend Developer", "DevOps Engineer", "Backend Developer",
	}
	companies = []string{
		"TechCorp", "DataSystems", "WebSolutions", "CloudTech", "AI Innovations",
	}
	descriptions = []string{
		"Looking for a skilled software engineer with experience in Python and web development.",
		"Join our data science team to work on cutting-edge machine learning projects.",
		"Frontend developer needed with React and TypeScript experience.",
		"DevOps engineer to manage our cloud infrastructure and CI/CD pipelines.",
		"Backend developer with expertise in Node.js and databases.",
	}
	sources = []string{"LinkedIn", "Indeed"}
)

// Generate returns Count records with ids job_1000 to job_1009. Field values
// are drawn from rng; posted dates are 1 to 30 days before now.
func Generate(rng *rand.Rand, now time.Time) []models.Record {
	records := make([]models.Record, 0, Count)
	for i := 0; i < Count; i++ {
		n := firstID + i
		posted := now.AddDate(0, 0, -(rng.Intn(maxAgeDay) + 1))

		records = append(records, models.Record{
			models.FieldJobID:       fmt.Sprintf("job_%d", n),
			models.FieldTitle:       pick(rng, titles),
			models.FieldCompany:     pick(rng, companies),
			models.FieldLocation:    fmt.Sprintf("City %d", rng.Intn(maxCity)+1),
			models.FieldDescription: pick(rng, descriptions),
			models.FieldPostedDate:  posted.Format(time.DateOnly),
			models.FieldURL:         fmt.Sprintf("https://example.com/job/%d", n),
			models.FieldSource:      pick(rng, sources),
		})
	}
	return records
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
