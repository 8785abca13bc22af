// Package session keeps per-user conversation state in memory. Entries are
// created lazily on first contact and expire after an hour of inactivity;
// nothing survives a process restart.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrNoActiveSession is returned by feedback adjustments for users who have
// not chatted yet. Feedback never creates a session implicitly.
var ErrNoActiveSession = errors.New("no active session")

// HistoryLimit caps conversation history at the most recent entries,
// bounding both memory and prompt size.
const HistoryLimit = 10

// decayPerTurn shrinks the stored feedback score on every new contact.
// This is a coarse per-turn policy, independent of the time-indexed decay
// in the reflection ledger; both are live behavior.
const decayPerTurn = 0.5

// Turn is one history entry: who spoke and what was said.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is a snapshot of one user's live state.
type Session struct {
	UserID          string    `json:"user_id"`
	History         []Turn    `json:"history"`
	FeedbackScore   float64   `json:"feedback_score"`
	LastInteraction time.Time `json:"last_interaction"`
}

// Store holds active sessions keyed by user id. All read-modify-write
// sequences run under one mutex; the TTL cache below it evicts sessions of
// users inactive for an hour.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
	now   func() time.Time
}

// NewStore creates a session store whose entries expire after idleTTL
// without contact (checked every 10 minutes). A non-positive idleTTL keeps
// sessions for the process lifetime.
func NewStore(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = cache.NoExpiration
	}
	return &Store{
		cache: cache.New(idleTTL, 10*time.Minute),
		now:   time.Now,
	}
}

// GetOrCreate returns the user's session, creating an empty one on first
// contact. On every later contact the stored feedback score is multiplied
// by the per-turn decay constant and the interaction time refreshed.
func (s *Store) GetOrCreate(userID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(userID)
	if !found {
		entry = &Session{
			UserID:          userID,
			LastInteraction: s.now(),
		}
	} else {
		entry.FeedbackScore *= decayPerTurn
		entry.LastInteraction = s.now()
	}
	s.cache.Set(userID, entry, cache.DefaultExpiration)

	return s.snapshot(entry)
}

// Touch refreshes the user's last-interaction time without applying decay.
// Unknown users are ignored.
func (s *Store) Touch(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(userID)
	if !found {
		return
	}
	entry.LastInteraction = s.now()
	s.cache.Set(userID, entry, cache.DefaultExpiration)
}

// RecordTurn appends the user's message and the assistant's reply to the
// history, then drops the oldest entries beyond the limit. A session is
// created if none exists.
func (s *Store) RecordTurn(userID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(userID)
	if !found {
		entry = &Session{
			UserID:          userID,
			LastInteraction: s.now(),
		}
	}

	entry.History = append(entry.History,
		Turn{Role: "user", Content: userText},
		Turn{Role: "assistant", Content: assistantText},
	)
	if len(entry.History) > HistoryLimit {
		entry.History = entry.History[len(entry.History)-HistoryLimit:]
	}
	s.cache.Set(userID, entry, cache.DefaultExpiration)
}

// AdjustFeedback adds delta to the user's live feedback score and returns
// the new value. Unlike GetOrCreate, this fails for unknown users.
func (s *Store) AdjustFeedback(userID string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(userID)
	if !found {
		return 0, ErrNoActiveSession
	}
	entry.FeedbackScore += delta
	s.cache.Set(userID, entry, cache.DefaultExpiration)
	return entry.FeedbackScore, nil
}

// Get returns a snapshot of the user's session without mutating it.
func (s *Store) Get(userID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(userID)
	if !found {
		return Session{}, false
	}
	return s.snapshot(entry), true
}

func (s *Store) lookup(userID string) (*Session, bool) {
	if x, found := s.cache.Get(userID); found {
		return x.(*Session), true
	}
	return nil, false
}

func (s *Store) snapshot(entry *Session) Session {
	copied := *entry
	copied.History = append([]Turn(nil), entry.History...)
	return copied
}
