// Package retrieval finds the knowledge-base passages most relevant to a
// user question. Two interchangeable strategies exist: in-process lexical
// scoring over a static corpus, and an embedded vector store.
package retrieval

import "context"

// Document is a single knowledge-base passage. Documents are loaded once at
// startup and treated as read-only; results reference them without copying
// content.
type Document struct {
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RetrievalResult carries the documents retrieved for a query, ordered by
// descending relevance. Docs may be shorter than the requested count, or
// empty when nothing cleared the relevance floor.
type RetrievalResult struct {
	Query string     `json:"query"`
	Docs  []Document `json:"docs"`
}

// Retriever is the retrieval capability the chat pipeline depends on.
// Implementations must return documents pre-ranked by relevance; the caller
// is agnostic to which strategy produced them.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (*RetrievalResult, error)
}

// DefaultTopK is the retrieval count used when the caller passes k <= 0.
const DefaultTopK = 3

// ScoreFloor excludes true non-matches while tolerating short or sparse
// documents.
const ScoreFloor = 0.05
