package grading

import (
	"context"
	"errors"
	"testing"

	"ai-concierge-be/pkg/llm"
	"ai-concierge-be/pkg/retrieval"
)

// stubProvider returns a canned reply for every call.
type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) ChatStream(_ context.Context, _ []llm.Message, _ ...llm.Option) (<-chan string, error) {
	ch := make(chan string, 1)
	ch <- s.reply
	close(ch)
	return ch, s.err
}

func (s *stubProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.reply, s.err
}

func TestModelGraderParsesLabeledScores(t *testing.T) {
	provider := &stubProvider{reply: "Factual Relevance: 0.8\nAnswer Coverage: 0.6"}
	g := NewModelGrader(provider)

	result, err := g.Grade(context.Background(), "question", &retrieval.RetrievalResult{
		Docs: []retrieval.Document{{Content: "context", Source: "doc1"}},
	})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.FactualRelevance != 0.8 {
		t.Errorf("FactualRelevance = %v, want 0.8", result.FactualRelevance)
	}
	if result.AnswerCoverage != 0.6 {
		t.Errorf("AnswerCoverage = %v, want 0.6", result.AnswerCoverage)
	}
}

func TestModelGraderMalformedResponse(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "missing relevance line",
			reply: "Answer Coverage: 0.5",
			want:  relevanceLabel,
		},
		{
			name:  "missing coverage line",
			reply: "Factual Relevance: 0.5",
			want:  coverageLabel,
		},
		{
			name:  "no numeric value",
			reply: "Factual Relevance: high\nAnswer Coverage: 0.5",
			want:  relevanceLabel,
		},
		{
			name:  "free text reply",
			reply: "The documents look quite relevant to me.",
			want:  relevanceLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewModelGrader(&stubProvider{reply: tt.reply})

			_, err := g.Grade(context.Background(), "question", &retrieval.RetrievalResult{})
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("error = %v, want MalformedResponseError", err)
			}
			if malformed.MissingLabel != tt.want {
				t.Errorf("MissingLabel = %q, want %q", malformed.MissingLabel, tt.want)
			}
		})
	}
}

func TestModelGraderUpstreamError(t *testing.T) {
	g := NewModelGrader(&stubProvider{err: errors.New("connection refused")})

	_, err := g.Grade(context.Background(), "question", &retrieval.RetrievalResult{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRefinerRewritesQuery(t *testing.T) {
	r := NewRefiner(&stubProvider{reply: "AI-driven shift scheduling algorithm details"})

	refined, err := r.Refine(context.Background(), "how does it work")
	if err != nil {
		t.Fatalf("Refine returned error: %v", err)
	}
	if refined != "AI-driven shift scheduling algorithm details" {
		t.Errorf("refined = %q", refined)
	}
}

func TestRefinerIdentityIsNoImprovement(t *testing.T) {
	tests := []struct {
		name  string
		query string
		reply string
	}{
		{name: "verbatim echo", query: "how does it work", reply: "how does it work"},
		{name: "case-only change", query: "how does it work", reply: "How Does It Work"},
		{name: "whitespace-only change", query: "how does it work", reply: "  how does it work  "},
		{name: "empty reply", query: "how does it work", reply: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRefiner(&stubProvider{reply: tt.reply})

			_, err := r.Refine(context.Background(), tt.query)
			if !errors.Is(err, ErrNoImprovement) {
				t.Errorf("error = %v, want ErrNoImprovement", err)
			}
		})
	}
}
