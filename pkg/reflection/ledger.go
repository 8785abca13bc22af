// Package reflection accumulates user feedback and derives a response-style
// instruction from it. Events never expire or mutate; their weight decays
// continuously with age, halving every minute by default.
package reflection

import (
	"math"
	"sync"
	"time"
)

// DefaultDecayFactor halves an event's weight every minute.
const DefaultDecayFactor = 0.5

// Prompt modifiers appended to the system prompt depending on the sign of
// the cumulative score.
const (
	ModifierConcise  = "Be more concise and cite sources explicitly."
	ModifierMaintain = "Maintain current style, user is satisfied."
)

// FeedbackEvent is one recorded +1/-1 feedback signal. Append-only.
type FeedbackEvent struct {
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Ledger is a process-wide feedback log, safe for concurrent use.
type Ledger struct {
	mu          sync.Mutex
	events      []FeedbackEvent
	decayFactor float64
	now         func() time.Time
}

// NewLedger creates a ledger with the given decay factor per minute of age.
// A non-positive factor falls back to the default 0.5.
func NewLedger(decayFactor float64) *Ledger {
	if decayFactor <= 0 {
		decayFactor = DefaultDecayFactor
	}
	return &Ledger{
		decayFactor: decayFactor,
		now:         time.Now,
	}
}

// AddFeedback appends a +1.0 (good) or -1.0 (bad) event at the current
// instant.
func (l *Ledger) AddFeedback(isGood bool) {
	score := -1.0
	if isGood {
		score = 1.0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, FeedbackEvent{Score: score, Timestamp: l.now()})
}

// CumulativeScore recomputes the decayed sum over all stored events at read
// time: each event contributes score × decay^age_minutes. With no new
// events the score shrinks monotonically toward zero.
func (l *Ledger) CumulativeScore() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cumulative := 0.0
	for _, event := range l.events {
		ageMinutes := now.Sub(event.Timestamp).Seconds() / 60
		cumulative += event.Score * math.Pow(l.decayFactor, ageMinutes)
	}
	return cumulative
}

// PromptModifier derives a style instruction from the cumulative score: a
// conciseness nudge when negative, a keep-it-up when positive, and nothing
// at exactly zero (including the empty ledger).
func (l *Ledger) PromptModifier() string {
	score := l.CumulativeScore()
	switch {
	case score < 0:
		return ModifierConcise
	case score > 0:
		return ModifierMaintain
	default:
		return ""
	}
}
