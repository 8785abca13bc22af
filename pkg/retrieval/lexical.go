package retrieval

import (
	"context"
	"log"
	"sort"

	"ai-concierge-be/pkg/similarity"
)

// LexicalRetriever ranks a static in-memory corpus by lexical similarity.
// The corpus is loaded once at startup and never mutated, so concurrent
// retrievals need no synchronization.
type LexicalRetriever struct {
	corpus []Document
	logger *log.Logger
}

var _ Retriever = &LexicalRetriever{}

// NewLexicalRetriever creates a retriever over the given corpus.
func NewLexicalRetriever(corpus []Document, logger *log.Logger) *LexicalRetriever {
	return &LexicalRetriever{
		corpus: corpus,
		logger: logger,
	}
}

// Retrieve scores every corpus document against the query and returns the
// top k (default 3) whose score clears the relevance floor. An empty corpus
// or query yields an empty result, not an error.
func (r *LexicalRetriever) Retrieve(ctx context.Context, query string, k int) (*RetrievalResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	type scoredDoc struct {
		doc   Document
		score float64
	}

	scored := make([]scoredDoc, 0, len(r.corpus))
	for _, doc := range r.corpus {
		contentScore := similarity.Score(query, doc.Content)

		// Metadata topics give short documents a second chance to match.
		// Missing fields read as empty strings and contribute 0.
		topicScore := similarity.Score(query, doc.Metadata["topic"])
		if sub := similarity.Score(query, doc.Metadata["subtopic"]); sub > topicScore {
			topicScore = sub
		}

		score := contentScore
		if topicScore > score {
			score = topicScore
		}
		scored = append(scored, scoredDoc{doc: doc, score: score})
	}

	// Stable sort keeps corpus order for ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	result := &RetrievalResult{Query: query, Docs: []Document{}}
	for i, sd := range scored {
		if sd.score <= ScoreFloor {
			r.logger.Printf("[DEBUG] Candidate %d: Score=%.4f [FILTERED] source=%s", i+1, sd.score, sd.doc.Source)
			continue
		}
		r.logger.Printf("[DEBUG] Candidate %d: Score=%.4f [KEEP] source=%s", i+1, sd.score, sd.doc.Source)
		result.Docs = append(result.Docs, sd.doc)
	}

	return result, nil
}
