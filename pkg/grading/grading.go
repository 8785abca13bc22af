// Package grading scores whether retrieved context is good enough to answer
// a question from, either heuristically or by asking a model to rate it.
package grading

import (
	"context"
	"strings"

	"ai-concierge-be/pkg/retrieval"
)

// Result carries the self-grading scores for one retrieval. Both scores lie
// in [0, 1]. RefinedQuery is set only when a refinement was produced.
type Result struct {
	FactualRelevance float64 `json:"factual_relevance"`
	AnswerCoverage   float64 `json:"answer_coverage"`
	RefinedQuery     string  `json:"refined_query,omitempty"`
}

// Grader scores a (question, retrieval result) pair.
type Grader interface {
	Grade(ctx context.Context, question string, result *retrieval.RetrievalResult) (*Result, error)
}

// coverageThreshold is the per-document overlap ratio above which a document
// counts as covering the answer.
const coverageThreshold = 0.3

// coverageDenominator matches the default retrieval count: coverage rewards
// having at least three well-covering passages and intentionally does not
// renormalize when fewer were retrieved.
const coverageDenominator = 3.0

// HeuristicGrader grades by keyword matching, with no model in the loop.
type HeuristicGrader struct{}

var _ Grader = &HeuristicGrader{}

func NewHeuristicGrader() *HeuristicGrader {
	return &HeuristicGrader{}
}

// Grade computes, per document, the fraction of question terms found in the
// document. FactualRelevance is the best per-document ratio; AnswerCoverage
// is the share of documents above the coverage threshold out of three.
// Empty questions and empty result sets grade to zero rather than erroring.
func (g *HeuristicGrader) Grade(_ context.Context, question string, result *retrieval.RetrievalResult) (*Result, error) {
	questionTerms := make(map[string]bool)
	for _, term := range strings.Fields(strings.ToLower(question)) {
		questionTerms[term] = true
	}

	graded := &Result{}
	if len(questionTerms) == 0 || result == nil {
		return graded, nil
	}

	covering := 0
	for _, doc := range result.Docs {
		docTerms := make(map[string]bool)
		for _, term := range strings.Fields(strings.ToLower(doc.Content)) {
			docTerms[term] = true
		}

		overlap := 0
		for term := range questionTerms {
			if docTerms[term] {
				overlap++
			}
		}

		ratio := float64(overlap) / float64(len(questionTerms))
		if ratio > graded.FactualRelevance {
			graded.FactualRelevance = ratio
		}
		if ratio > coverageThreshold {
			covering++
		}
	}

	graded.AnswerCoverage = float64(covering) / coverageDenominator
	return graded, nil
}
