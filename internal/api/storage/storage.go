// Package storage holds the process-lifetime record stores. Nothing is
// persisted: every store starts from its seed data on boot.
package storage

import (
	"strconv"
	"sync"
	"time"
)

// Clock returns the current time. Stores take one so tests can pin it.
type Clock func() time.Time

// idSequence hands out monotonically increasing string identifiers.
// Identifiers are never reused after a delete.
type idSequence struct {
	mu   sync.Mutex
	next int
}

// newIDSequence starts the sequence after the highest numeric seed id
func newIDSequence(seedIDs []string) *idSequence {
	highest := 0
	for _, id := range seedIDs {
		if n, err := strconv.Atoi(id); err == nil && n > highest {
			highest = n
		}
	}
	return &idSequence{next: highest + 1}
}

func (s *idSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.Itoa(s.next)
	s.next++
	return id
}

// touch returns now, never earlier than createdAt
func touch(now time.Time, createdAt time.Time) time.Time {
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
