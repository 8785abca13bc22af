package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-concierge-be/pkg/llm"
)

// ErrNoImprovement signals that refinement returned the query unchanged.
// Callers should keep the original query and skip re-retrieval.
var ErrNoImprovement = errors.New("query refinement produced no improvement")

// Refiner rewrites a query to be more specific and searchable when grading
// judged the first retrieval insufficient.
type Refiner struct {
	provider llm.LLMProvider
}

func NewRefiner(provider llm.LLMProvider) *Refiner {
	return &Refiner{provider: provider}
}

// Refine asks the model for a rewritten query. An answer that matches the
// input (ignoring case and surrounding space) is treated as a failure to
// improve, not as a usable refinement.
func (r *Refiner) Refine(ctx context.Context, query string) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: "Refine the following query to be more specific and searchable. Reply with the refined query only."},
		{Role: "user", Content: query},
	}

	refined, err := r.provider.Chat(ctx, history, llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("refinement request: %w", err)
	}

	refined = strings.TrimSpace(refined)
	if refined == "" || strings.EqualFold(refined, strings.TrimSpace(query)) {
		return "", ErrNoImprovement
	}

	return refined, nil
}
