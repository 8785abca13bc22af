package retrieval

import (
	"context"
	"fmt"
	"log"

	chromem "github.com/philippgille/chromem-go"
)

// VectorRetriever delegates ranking to an embedded chromem vector database.
// It returns the same RetrievalResult shape as the lexical variant, so the
// chat pipeline stays agnostic to which strategy produced the documents.
type VectorRetriever struct {
	collection *chromem.Collection
	logger     *log.Logger
}

var _ Retriever = &VectorRetriever{}

// VectorConfig configures the embedded vector store.
type VectorConfig struct {
	Collection     string // collection name, default "knowledge_base"
	EmbeddingModel string // Ollama embedding model, e.g. "nomic-embed-text"
	OllamaBaseURL  string // e.g. "http://localhost:11434/api"
}

// NewVectorRetriever builds an in-memory chromem collection and seeds it
// with the corpus. Embeddings are generated through the configured Ollama
// endpoint, both at seed time and per query.
func NewVectorRetriever(cfg VectorConfig, corpus []Document, logger *log.Logger) (*VectorRetriever, error) {
	if cfg.Collection == "" {
		cfg.Collection = "knowledge_base"
	}

	db := chromem.NewDB()
	embed := chromem.NewEmbeddingFuncOllama(cfg.EmbeddingModel, cfg.OllamaBaseURL)

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("create vector collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(corpus))
	for i, doc := range corpus {
		metadata := map[string]string{"source": doc.Source}
		for key, value := range doc.Metadata {
			metadata[key] = value
		}
		docs = append(docs, chromem.Document{
			ID:       fmt.Sprintf("doc_%d", i),
			Content:  doc.Content,
			Metadata: metadata,
		})
	}

	if len(docs) > 0 {
		if err := collection.AddDocuments(context.Background(), docs, 2); err != nil {
			return nil, fmt.Errorf("seed vector collection: %w", err)
		}
	}

	logger.Printf("[INFO] Vector collection %q seeded with %d documents", cfg.Collection, len(docs))

	return &VectorRetriever{collection: collection, logger: logger}, nil
}

// Retrieve queries the collection for the k nearest documents. The store
// pre-ranks results by cosine similarity.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, k int) (*RetrievalResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if count := r.collection.Count(); k > count {
		k = count
	}

	result := &RetrievalResult{Query: query, Docs: []Document{}}
	if k == 0 || query == "" {
		return result, nil
	}

	matches, err := r.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	for i, match := range matches {
		r.logger.Printf("[DEBUG] Candidate %d: Score=%.4f source=%s", i+1, match.Similarity, match.Metadata["source"])
		result.Docs = append(result.Docs, Document{
			Content:  match.Content,
			Source:   match.Metadata["source"],
			Metadata: match.Metadata,
		})
	}

	return result, nil
}
