package router

import (
	"context"
	"fmt"
	"log"

	"ai-concierge-be/pkg/grading"
	"ai-concierge-be/pkg/retrieval"
)

// Outcome is what a handled chat turn produces. Docs and Grade are only set
// by the retrieval pipeline.
type Outcome struct {
	Reply string
	Docs  []retrieval.Document
	Grade *grading.Result
}

// Handler processes a parsed message for one mode.
type Handler func(ctx context.Context, userID string, msg *ParsedMessage) (*Outcome, error)

// Router dispatches parsed chat messages to per-mode handlers.
type Router struct {
	handlers map[Mode]Handler
	logger   *log.Logger
}

// NewRouter creates a message router with no handlers registered
func NewRouter(logger *log.Logger) *Router {
	return &Router{
		handlers: make(map[Mode]Handler),
		logger:   logger,
	}
}

// Handle registers the handler for a mode, replacing any previous one.
func (r *Router) Handle(mode Mode, h Handler) {
	r.handlers[mode] = h
}

// Dispatch parses the message and runs the matching handler
func (r *Router) Dispatch(ctx context.Context, userID, message string) (*Outcome, error) {
	parsed := Parse(message)
	r.logger.Printf("[DEBUG] Routing message for user %s: mode=%s input='%s'", userID, parsed.Mode, truncateLog(message, 80))

	handler, ok := r.handlers[parsed.Mode]
	if !ok {
		return nil, fmt.Errorf("no handler registered for mode %s", parsed.Mode)
	}
	return handler(ctx, userID, parsed)
}

func truncateLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
