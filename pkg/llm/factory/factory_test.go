package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-concierge-be/pkg/llm"
)

func TestNewLLMProviderRoutesToOwnEndpoint(t *testing.T) {
	ollamaHits := 0
	ollamaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ollamaHits++
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"from ollama"},"done":true}`))
	}))
	defer ollamaSrv.Close()

	openaiHits := 0
	openaiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		openaiHits++
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"from openai"}}]}`))
	}))
	defer openaiSrv.Close()

	history := []llm.Message{{Role: "user", Content: "hello"}}

	t.Run("ollama", func(t *testing.T) {
		provider, err := NewLLMProvider("ollama", "llama3", ollamaSrv.URL, openaiSrv.URL, "")
		require.NoError(t, err)

		reply, err := provider.Chat(context.Background(), history)
		require.NoError(t, err)
		assert.Equal(t, "from ollama", reply)
	})

	t.Run("openai", func(t *testing.T) {
		provider, err := NewLLMProvider("openai", "gpt-4o-mini", ollamaSrv.URL, openaiSrv.URL, "test-key")
		require.NoError(t, err)

		reply, err := provider.Chat(context.Background(), history)
		require.NoError(t, err)
		assert.Equal(t, "from openai", reply)
	})

	assert.Equal(t, 1, ollamaHits)
	assert.Equal(t, 1, openaiHits)
}

func TestNewLLMProviderUnsupported(t *testing.T) {
	_, err := NewLLMProvider("bedrock", "model", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
