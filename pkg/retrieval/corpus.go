package retrieval

import (
	"encoding/json"
	"fmt"
	"os"
)

type corpusFile struct {
	Documents []Document `json:"documents"`
}

// LoadCorpus reads the knowledge-base listing from a JSON file of the form
// {"documents": [{"content": ..., "source": ..., "metadata": {...}}, ...]}.
func LoadCorpus(path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}

	var file corpusFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}

	return file.Documents, nil
}
