package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-concierge-be/pkg/reflection"
	"ai-concierge-be/pkg/retrieval"
)

func TestBuilderBuild(t *testing.T) {
	docs := []retrieval.Document{
		{Content: "Our platform automates meeting scheduling with AI.", Source: "kb"},
		{Content: "Demos can be booked on weekdays.", Source: "kb"},
	}

	t.Run("starts with base instruction", func(t *testing.T) {
		got := NewBuilder("", nil).Build()
		assert.True(t, strings.HasPrefix(got, BasePrompt))
	})

	t.Run("includes negative feedback modifier", func(t *testing.T) {
		got := NewBuilder(reflection.ModifierConcise, docs).Build()
		assert.Contains(t, got, reflection.ModifierConcise)
	})

	t.Run("includes positive feedback modifier", func(t *testing.T) {
		got := NewBuilder(reflection.ModifierMaintain, docs).Build()
		assert.Contains(t, got, reflection.ModifierMaintain)
	})

	t.Run("lists every retrieved document", func(t *testing.T) {
		got := NewBuilder("", docs).Build()
		for _, doc := range docs {
			assert.Contains(t, got, doc.Content)
		}
	})

	t.Run("omits context section without documents", func(t *testing.T) {
		got := NewBuilder("", nil).Build()
		assert.NotContains(t, got, "context documents")
	})

	t.Run("modifier precedes documents", func(t *testing.T) {
		got := NewBuilder(reflection.ModifierConcise, docs).Build()
		modIdx := strings.Index(got, reflection.ModifierConcise)
		docIdx := strings.Index(got, docs[0].Content)
		assert.Less(t, modIdx, docIdx)
	})
}
