// Package keyword provides the text-similarity primitive shared by the
// recommenders: free text is tokenized into a lowercase keyword set and
// pairs of sets are compared with Jaccard similarity.
package keyword

import (
	"regexp"
	"strings"
)

// Tokens shorter than this carry too little signal and are dropped.
const minTokenLength = 3

var nonWord = regexp.MustCompile(`\W+`)

// Set is a keyword bag: the set of lowercase tokens extracted from text.
type Set map[string]struct{}

// Tokenize splits text on runs of non-word characters, lowercases each
// token and keeps those with length > 2. Empty text yields an empty set.
func Tokenize(text string) Set {
	set := make(Set)
	for _, token := range nonWord.Split(text, -1) {
		token = strings.ToLower(token)
		if len(token) < minTokenLength {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// TokenizeAll tokenizes each text and unions the results into one set.
func TokenizeAll(texts ...string) Set {
	set := make(Set)
	for _, text := range texts {
		for token := range Tokenize(text) {
			set[token] = struct{}{}
		}
	}
	return set
}

// Jaccard returns |a∩b| / max(|a∪b|, 1). The denominator is clamped so
// two empty sets score 0 rather than dividing by zero.
func Jaccard(a, b Set) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union < 1 {
		union = 1
	}
	return float64(intersection) / float64(union)
}
