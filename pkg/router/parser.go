// Package router decides what a chat message is asking for before any model
// is involved: inline feedback commands, task scheduling phrases, task
// listing, or a regular question for the retrieval pipeline.
package router

import (
	"regexp"
	"strings"
)

// Command constants - slash commands checked before anything else
const (
	CommandGoodAnswer = "/good_answer"
	CommandBadAnswer  = "/bad_answer"
)

// Mode represents where a chat message gets routed
type Mode string

const (
	ModeRAG       Mode = "RAG"        // Default: retrieval + generation
	ModeFeedback  Mode = "FEEDBACK"   // Inline /good_answer or /bad_answer
	ModeSchedule  Mode = "SCHEDULE"   // Demo scheduling phrase with a parsable slot
	ModeListTasks Mode = "LIST_TASKS" // Task listing request
)

// schedulePattern extracts a day and time from phrases like
// "schedule a demo tomorrow at 3pm". Free-form beyond this is left to the
// RAG pipeline rather than guessed at.
var schedulePattern = regexp.MustCompile(`(today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\s+at\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`)

// ParsedMessage contains routing information extracted from a chat message
type ParsedMessage struct {
	Original string
	Mode     Mode
	Positive bool   // Feedback mode: true for /good_answer
	When     string // Schedule mode: "<day> <time>"
}

// Parse extracts routing information from a chat message
// Supports:
//   - /good_answer, /bad_answer → feedback recording
//   - "schedule"/"demo" + "<day> at <time>" → task creation
//   - "what do i have scheduled?", "list tasks" → task listing
//   - anything else → RAG pipeline
func Parse(message string) *ParsedMessage {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	switch trimmed {
	case CommandGoodAnswer:
		return &ParsedMessage{Original: message, Mode: ModeFeedback, Positive: true}
	case CommandBadAnswer:
		return &ParsedMessage{Original: message, Mode: ModeFeedback, Positive: false}
	}

	if lower == "what do i have scheduled?" || lower == "list tasks" {
		return &ParsedMessage{Original: message, Mode: ModeListTasks}
	}

	if strings.Contains(lower, "schedule") || strings.Contains(lower, "demo") {
		if match := schedulePattern.FindStringSubmatch(lower); match != nil {
			return &ParsedMessage{
				Original: message,
				Mode:     ModeSchedule,
				When:     match[1] + " " + match[2],
			}
		}
	}

	return &ParsedMessage{Original: message, Mode: ModeRAG}
}
