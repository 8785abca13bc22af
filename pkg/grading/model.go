package grading

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ai-concierge-be/pkg/llm"
	"ai-concierge-be/pkg/retrieval"
)

// MalformedResponseError reports a model grading reply that omitted one of
// the expected labeled lines. It propagates to the caller instead of being
// defaulted to zero, so a broken integration cannot masquerade as a low
// score.
type MalformedResponseError struct {
	MissingLabel string
	Output       string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed grading response: no %q line found", e.MissingLabel)
}

const (
	relevanceLabel = "Factual Relevance"
	coverageLabel  = "Answer Coverage"
)

// ModelGrader delegates grading to a generative model and parses the two
// numeric ratings out of its reply.
type ModelGrader struct {
	provider llm.LLMProvider
}

var _ Grader = &ModelGrader{}

func NewModelGrader(provider llm.LLMProvider) *ModelGrader {
	return &ModelGrader{provider: provider}
}

func (g *ModelGrader) Grade(ctx context.Context, question string, result *retrieval.RetrievalResult) (*Result, error) {
	var contents []string
	if result != nil {
		for _, doc := range result.Docs {
			contents = append(contents, doc.Content)
		}
	}

	prompt := fmt.Sprintf(`Rate the following on a scale of 0-1:

Question: %s
Retrieved Documents: %s

Factual Relevance: [0-1]
Answer Coverage: [0-1]`, question, strings.Join(contents, " | "))

	output, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("grading request: %w", err)
	}

	relevance, err := parseLabeledScore(output, relevanceLabel)
	if err != nil {
		return nil, err
	}
	coverage, err := parseLabeledScore(output, coverageLabel)
	if err != nil {
		return nil, err
	}

	return &Result{FactualRelevance: relevance, AnswerCoverage: coverage}, nil
}

// parseLabeledScore locates the line carrying the given label and extracts
// the numeric literal after its last colon.
func parseLabeledScore(output, label string) (float64, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, label) {
			continue
		}
		idx := strings.LastIndex(line, ":")
		if idx < 0 {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(line[idx+1:]), 64)
		if err != nil {
			continue
		}
		return value, nil
	}
	return 0, &MalformedResponseError{MissingLabel: label, Output: output}
}
