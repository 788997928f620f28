// Package text turns free-form posting text into a normalized token string.
package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	urlPattern       = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern   = regexp.MustCompile(`<.*?>`)
	nonLetterPattern = regexp.MustCompile(`[^a-z\s]`)
)

const minTokenLen = 3

type Normalizer struct {
	stopwords  map[string]struct{}
	lemmatizer Lemmatizer
}

// NewNormalizer builds a normalizer over the default stopword set. A nil
// lemmatizer leaves tokens unchanged.
func NewNormalizer(lemmatizer Lemmatizer) *Normalizer {
	if lemmatizer == nil {
		lemmatizer = identity{}
	}
	return &Normalizer{
		stopwords:  DefaultStopwords(),
		lemmatizer: lemmatizer,
	}
}

// Normalize lowercases v, strips URLs, HTML tags and everything that is not a
// letter, drops short tokens and stopwords and lemmatizes the rest. Anything
// that is not a non-empty string yields "".
func (n *Normalizer) Normalize(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}

	// Casers keep state, one per call.
	s = cases.Lower(language.Und).String(s)
	s = urlPattern.ReplaceAllString(s, "")
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = nonLetterPattern.ReplaceAllString(s, " ")

	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		lemma := n.lemmatizer.Lemma(tok)
		// A lemma the filters above would drop keeps the output stable.
		if _, stop := n.stopwords[lemma]; stop || len(lemma) < minTokenLen {
			lemma = tok
		}
		kept = append(kept, lemma)
	}

	return strings.Join(kept, " ")
}
