package grading

import (
	"context"
	"math"
	"testing"

	"ai-concierge-be/pkg/retrieval"
)

func TestHeuristicGradeEmptyResult(t *testing.T) {
	g := NewHeuristicGrader()

	result, err := g.Grade(context.Background(), "How does AI scheduling work?", &retrieval.RetrievalResult{})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.FactualRelevance != 0 {
		t.Errorf("FactualRelevance = %v, want 0", result.FactualRelevance)
	}
	if result.AnswerCoverage != 0 {
		t.Errorf("AnswerCoverage = %v, want 0", result.AnswerCoverage)
	}
}

func TestHeuristicGradeEmptyQuestion(t *testing.T) {
	g := NewHeuristicGrader()

	res := &retrieval.RetrievalResult{Docs: []retrieval.Document{{Content: "something", Source: "doc1"}}}
	result, err := g.Grade(context.Background(), "   ", res)
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.FactualRelevance != 0 || result.AnswerCoverage != 0 {
		t.Errorf("got relevance=%v coverage=%v, want zeros", result.FactualRelevance, result.AnswerCoverage)
	}
}

func TestHeuristicGrade(t *testing.T) {
	tests := []struct {
		name          string
		question      string
		docs          []retrieval.Document
		wantRelevance float64
		wantCoverage  float64
	}{
		{
			name:     "full overlap single doc",
			question: "ai scheduling",
			docs: []retrieval.Document{
				{Content: "ai scheduling explained in depth", Source: "doc1"},
			},
			wantRelevance: 1.0,
			wantCoverage:  1.0 / 3.0,
		},
		{
			name:     "relevance takes the best document",
			question: "ai scheduling works",
			docs: []retrieval.Document{
				{Content: "payroll product", Source: "doc2"},
				{Content: "ai scheduling works well", Source: "doc1"},
			},
			wantRelevance: 1.0,
			wantCoverage:  1.0 / 3.0,
		},
		{
			name:     "coverage denominator stays three",
			question: "ai",
			docs: []retrieval.Document{
				{Content: "ai platform", Source: "a"},
				{Content: "ai services", Source: "b"},
				{Content: "ai tooling", Source: "c"},
			},
			wantRelevance: 1.0,
			wantCoverage:  1.0,
		},
		{
			name:     "no overlap grades to zero",
			question: "quantum entanglement",
			docs: []retrieval.Document{
				{Content: "payroll software product", Source: "doc2"},
			},
			wantRelevance: 0,
			wantCoverage:  0,
		},
	}

	g := NewHeuristicGrader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := g.Grade(context.Background(), tt.question, &retrieval.RetrievalResult{Docs: tt.docs})
			if err != nil {
				t.Fatalf("Grade returned error: %v", err)
			}
			if math.Abs(result.FactualRelevance-tt.wantRelevance) > 1e-9 {
				t.Errorf("FactualRelevance = %v, want %v", result.FactualRelevance, tt.wantRelevance)
			}
			if math.Abs(result.AnswerCoverage-tt.wantCoverage) > 1e-9 {
				t.Errorf("AnswerCoverage = %v, want %v", result.AnswerCoverage, tt.wantCoverage)
			}
		})
	}
}

func TestHeuristicGradeScenario(t *testing.T) {
	g := NewHeuristicGrader()

	res := &retrieval.RetrievalResult{
		Query: "How does AI scheduling work?",
		Docs: []retrieval.Document{
			{Content: "Our platform uses AI for scheduling", Source: "doc1"},
		},
	}
	result, err := g.Grade(context.Background(), "How does AI scheduling work?", res)
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.FactualRelevance < 0.3 {
		t.Errorf("FactualRelevance = %v, want >= 0.3", result.FactualRelevance)
	}
}
