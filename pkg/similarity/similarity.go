// Package similarity scores how closely two pieces of text relate,
// combining keyword overlap with character-level sequence alignment.
package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Score computes the relevance of text against query as a value in [0, 1].
//
// Two signals are computed over the lowercase inputs:
//   - Jaccard similarity over whitespace-delimited term sets, which captures
//     keyword overlap regardless of word order.
//   - A sequence-match ratio over the raw character streams, which captures
//     near-duplicate phrasing even when stopwords differ.
//
// The stronger of the two wins. When the term sets share nothing at all the
// score is 0 outright, so true non-matches stay below any relevance floor.
func Score(query, text string) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(text)

	queryTerms := termSet(q)
	textTerms := termSet(t)

	overlap := 0
	for term := range queryTerms {
		if textTerms[term] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}

	union := len(queryTerms) + len(textTerms) - overlap
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(overlap) / float64(union)
	}

	sequence := sequenceRatio(q, t)

	if jaccard > sequence {
		return jaccard
	}
	return sequence
}

// sequenceRatio is the Ratcliff-Obershelp ratio over the rune sequences of
// both strings: 1.0 for identical inputs, 0.0 for fully disjoint ones.
func sequenceRatio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}

func termSet(s string) map[string]bool {
	terms := make(map[string]bool)
	for _, term := range strings.Fields(s) {
		terms[term] = true
	}
	return terms
}
