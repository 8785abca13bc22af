package retrieval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge_base.json")

	content := `{
		"documents": [
			{"content": "Our platform uses AI for scheduling", "source": "doc1",
			 "metadata": {"topic": "scheduling", "subtopic": "ai"}},
			{"content": "Payroll software is a separate product", "source": "doc2"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	docs, err := LoadCorpus(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "doc1", docs[0].Source)
	assert.Equal(t, "scheduling", docs[0].Metadata["topic"])
	assert.Nil(t, docs[1].Metadata)
}

func TestLoadCorpusMissingFile(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadCorpusMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadCorpus(path)
	assert.Error(t, err)
}
