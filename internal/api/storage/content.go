package storage

import (
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"
)

// HomepageSections lists the top-level homepage keys an update may replace
var HomepageSections = []string{"hero", "stats", "features", "successStories", "companiesShowcase"}

// Homepage is the homepage content blob keyed by section name
type Homepage map[string]json.RawMessage

// ContentStore holds the editable homepage content
type ContentStore struct {
	mu        sync.RWMutex
	homepage  Homepage
	updatedAt time.Time
	now       Clock
}

// NewContentStore creates a store holding a copy of seed
func NewContentStore(seed Homepage, now Clock) *ContentStore {
	if now == nil {
		now = time.Now
	}
	homepage := maps.Clone(seed)
	if homepage == nil {
		homepage = Homepage{}
	}
	return &ContentStore{
		homepage:  homepage,
		updatedAt: now().UTC(),
		now:       now,
	}
}

// Homepage returns the current content and when it last changed
func (s *ContentStore) Homepage() (Homepage, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.homepage), s.updatedAt
}

// MergeHomepage replaces the known sections present in patch and returns the
// merged content. Unknown sections are ignored and reported back.
func (s *ContentStore) MergeHomepage(patch Homepage) (Homepage, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ignored []string
	for key, value := range patch {
		if !slices.Contains(HomepageSections, key) {
			ignored = append(ignored, key)
			continue
		}
		s.homepage[key] = slices.Clone(value)
	}
	s.updatedAt = s.now().UTC()
	slices.Sort(ignored)

	return maps.Clone(s.homepage), ignored
}
