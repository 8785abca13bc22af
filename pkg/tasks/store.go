// Package tasks is an in-memory scheduler of per-user tasks. Lookups key on
// the task title; duplicates are not rejected on insert, so title operations
// act on the first match in insertion order.
package tasks

import (
	"errors"
	"sync"
	"time"
)

// ErrTaskNotFound is the normal, expected outcome of completing or removing
// a title that does not exist. Surfaced to the client as a 404.
var ErrTaskNotFound = errors.New("task not found")

// Task is one scheduled item. When is free-form text as the user phrased it.
type Task struct {
	Title       string    `json:"title"`
	When        string    `json:"when"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Completed   bool      `json:"completed"`
}

// Store keeps each user's tasks in insertion order. One store-wide mutex
// serializes all operations; every critical section is short and does no
// I/O, which is fine at the expected throughput of a scheduling side
// feature.
type Store struct {
	mu    sync.Mutex
	tasks map[string][]*Task
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		tasks: make(map[string][]*Task),
		now:   time.Now,
	}
}

// Add appends a new, uncompleted task to the user's list and returns it.
func (s *Store) Add(userID, title, when, description string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &Task{
		Title:       title,
		When:        when,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.tasks[userID] = append(s.tasks[userID], task)
	return *task
}

// List returns the user's tasks in insertion order. Unknown users get an
// empty list, not an error.
func (s *Store) List(userID string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	listed := make([]Task, 0, len(s.tasks[userID]))
	for _, task := range s.tasks[userID] {
		listed = append(listed, *task)
	}
	return listed
}

// Complete marks the first task with the given title as completed and
// returns it.
func (s *Store) Complete(userID, title string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks[userID] {
		if task.Title == title {
			task.Completed = true
			return *task, nil
		}
	}
	return Task{}, ErrTaskNotFound
}

// Remove deletes the first task with the given title.
func (s *Store) Remove(userID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tasks[userID]
	for i, task := range list {
		if task.Title == title {
			s.tasks[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}
