package storage

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
)

// JobFilter selects jobs for a list request. Empty fields impose no constraint.
type JobFilter struct {
	Search  string
	Status  string
	Country string
	Company string
	Page    query.Page
}

// JobStore is the in-memory job collection
type JobStore struct {
	mu   sync.RWMutex
	jobs []domain.Job
	ids  *idSequence
	now  Clock
}

// NewJobStore creates a store holding a copy of seed
func NewJobStore(seed []domain.Job, now Clock) *JobStore {
	if now == nil {
		now = time.Now
	}
	jobs := make([]domain.Job, 0, len(seed))
	ids := make([]string, 0, len(seed))
	for _, j := range seed {
		jobs = append(jobs, j.Clone())
		ids = append(ids, j.ID)
	}
	return &JobStore{jobs: jobs, ids: newIDSequence(ids), now: now}
}

// List runs the query pipeline over a snapshot of the store
func (s *JobStore) List(filter JobFilter) query.Result[domain.Job] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := query.Run(s.jobs, jobPredicate(filter), newestFirst, filter.Page)
	items := make([]domain.Job, len(res.Items))
	for i, j := range res.Items {
		items[i] = j.Clone()
	}
	res.Items = items
	return res
}

func jobPredicate(f JobFilter) query.Predicate[domain.Job] {
	var preds []query.Predicate[domain.Job]

	if search := strings.ToLower(f.Search); search != "" {
		preds = append(preds, func(j domain.Job) bool {
			return query.ContainsFold(j.Title, search) ||
				query.ContainsFold(j.Company, search) ||
				query.MatchesAny(j.Technologies, search)
		})
	}
	if f.Status != "" {
		preds = append(preds, func(j domain.Job) bool { return j.Status == f.Status })
	}
	if f.Country != "" {
		preds = append(preds, func(j domain.Job) bool { return j.Country == f.Country })
	}
	if f.Company != "" {
		preds = append(preds, func(j domain.Job) bool { return j.Company == f.Company })
	}

	return query.All(preds...)
}

func newestFirst(a, b domain.Job) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

// Get returns the job with the given id
func (s *JobStore) Get(id string) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return s.jobs[i].Clone(), nil
}

// Create assigns an id and timestamps, applies defaults and appends the job
func (s *JobStore) Create(job domain.Job) domain.Job {
	now := s.now().UTC()

	job.ID = s.ids.Next()
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	job.Applications = 0
	job.Views = 0
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Technologies = nonNil(job.Technologies)
	job.Requirements = nonNil(job.Requirements)
	job.Benefits = nonNil(job.Benefits)
	job = job.Clone()

	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	return job.Clone()
}

// Update applies mutate to the stored job. The id can never change and
// updatedAt is always refreshed. If mutate fails the job is left untouched.
func (s *JobStore) Update(id string, mutate func(*domain.Job) error) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}

	updated := s.jobs[i].Clone()
	if err := mutate(&updated); err != nil {
		return domain.Job{}, err
	}
	updated.ID = s.jobs[i].ID
	updated.CreatedAt = s.jobs[i].CreatedAt
	updated.UpdatedAt = touch(s.now().UTC(), updated.CreatedAt)

	s.jobs[i] = updated
	return updated.Clone(), nil
}

// SetStatus changes only the status field
func (s *JobStore) SetStatus(id, status string) (domain.Job, error) {
	if !domain.IsValidJobStatus(status) {
		return domain.Job{}, domain.NewValidationError("Invalid status. Must be: active, paused, or closed")
	}
	return s.Update(id, func(j *domain.Job) error {
		j.Status = status
		return nil
	})
}

// Delete removes the job and returns it
func (s *JobStore) Delete(id string) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	removed := s.jobs[i]
	s.jobs = slices.Delete(s.jobs, i, i+1)
	return removed, nil
}

// Count returns the number of stored jobs
func (s *JobStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// CountCreatedSince returns how many jobs were created at or after t
func (s *JobStore) CountCreatedSince(t time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, j := range s.jobs {
		if !j.CreatedAt.Before(t) {
			n++
		}
	}
	return n
}

func (s *JobStore) indexOf(id string) int {
	return slices.IndexFunc(s.jobs, func(j domain.Job) bool { return j.ID == id })
}
