// Package prompt assembles the system prompt sent with every chat turn.
package prompt

import (
	"strings"

	"ai-concierge-be/pkg/retrieval"
)

// BasePrompt is the opening instruction for every conversation
const BasePrompt = "You are an AI concierge helping with AI technology questions. "

// Builder composes the base instruction, a feedback-derived style modifier,
// and retrieved reference documents into one system prompt.
type Builder struct {
	modifier string
	docs     []retrieval.Document
}

// NewBuilder creates a prompt builder
func NewBuilder(modifier string, docs []retrieval.Document) *Builder {
	return &Builder{
		modifier: modifier,
		docs:     docs,
	}
}

// Build assembles the full system prompt
func (b *Builder) Build() string {
	var prompt strings.Builder

	prompt.WriteString(BasePrompt)
	b.writeModifier(&prompt)
	b.writeReferenceDocuments(&prompt)

	return prompt.String()
}

func (b *Builder) writeModifier(prompt *strings.Builder) {
	if b.modifier == "" {
		return
	}
	prompt.WriteString(b.modifier)
}

func (b *Builder) writeReferenceDocuments(prompt *strings.Builder) {
	if len(b.docs) == 0 {
		return
	}

	prompt.WriteString("\n\nUse the following context documents to answer:\n")
	for _, doc := range b.docs {
		prompt.WriteString("- ")
		prompt.WriteString(doc.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\nAnswer based on the context above. If the context does not cover the question, say so honestly.")
}
