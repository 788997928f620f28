package text

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer reduces a lowercase token to its dictionary base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// NewLemmatizer loads the English dictionary lemmatizer, restricted to noun
// plural reductions. Loading takes a moment and a few tens of MB, so build it
// once per process.
func NewLemmatizer() (Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return NounLemmatizer{Dict: l}, nil
}

// NounLemmatizer reads every token as a noun. It accepts a dictionary lemma
// only when it is the singular of a plural form, so "servers" becomes
// "server" while "data", "required" and "leading" are left alone.
type NounLemmatizer struct {
	Dict Lemmatizer
}

func (n NounLemmatizer) Lemma(word string) string {
	lemma, ok := n.singular(word)
	if !ok {
		return word
	}
	// The singular must itself be stable, otherwise reduction is not
	// idempotent.
	if again, ok := n.singular(lemma); ok && again != lemma {
		return word
	}
	return lemma
}

func (n NounLemmatizer) singular(word string) (string, bool) {
	if !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return "", false
	}
	lemma := n.Dict.Lemma(word)
	if lemma == "" || lemma == word {
		return "", false
	}
	if isPluralOf(word, lemma) {
		return lemma, true
	}
	return "", false
}

// isPluralOf covers the regular English noun plural patterns plus the Greek
// "-ses" to "-sis" form.
func isPluralOf(plural, singular string) bool {
	switch {
	case plural == singular+"s", plural == singular+"es":
		return true
	case strings.HasSuffix(plural, "ies"):
		return singular == strings.TrimSuffix(plural, "ies")+"y"
	case strings.HasSuffix(plural, "ves"):
		stem := strings.TrimSuffix(plural, "ves")
		return singular == stem+"f" || singular == stem+"fe"
	case strings.HasSuffix(plural, "ses"):
		return singular == strings.TrimSuffix(plural, "es")+"is"
	}
	return false
}

type identity struct{}

func (identity) Lemma(word string) string { return word }
