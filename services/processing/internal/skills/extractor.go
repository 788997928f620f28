// Package skills finds known technology names in posting text.
package skills

import (
	"strings"

	"jobtagger/common/models"
	"jobtagger/services/processing/internal/keywords"
)

// DefaultVocabulary is the ordered skill list. Output follows this order.
var DefaultVocabulary = []string{
	"python", "java", "javascript", "c++", "sql", "aws", "react",
	"docker", "kubernetes", "html", "css", "node.js", "git", "github",
}

type Outcome int

const (
	// Found means at least one skill matched.
	Found Outcome = iota
	// EmptyInput means there was no text to scan.
	EmptyInput
	// NoMatch means the text mentioned none of the skills.
	NoMatch
)

type Result struct {
	Outcome Outcome
	Skills  []string
}

// String renders the record field value: "" for empty input, "Not specified"
// when nothing matched, otherwise the skills joined by ", ".
func (r Result) String() string {
	switch r.Outcome {
	case EmptyInput:
		return ""
	case NoMatch:
		return models.NotSpecified
	default:
		return strings.Join(r.Skills, ", ")
	}
}

type Extractor struct {
	vocabulary []string
	set        *keywords.Set
}

func NewExtractor(vocabulary []string) *Extractor {
	groups := make([][]string, len(vocabulary))
	for i, skill := range vocabulary {
		groups[i] = []string{skill}
	}
	return &Extractor{
		vocabulary: vocabulary,
		set:        keywords.Compile(groups),
	}
}

// Extract lists every vocabulary skill contained in text, in vocabulary order.
func (e *Extractor) Extract(text string) Result {
	if text == "" {
		return Result{Outcome: EmptyInput}
	}

	var found []string
	for i, hit := range e.set.Match(text) {
		if hit {
			found = append(found, e.vocabulary[i])
		}
	}
	if len(found) == 0 {
		return Result{Outcome: NoMatch}
	}
	return Result{Outcome: Found, Skills: found}
}
