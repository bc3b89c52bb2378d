package storage

import (
	"testing"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestJobStore() *JobStore {
	return NewJobStore(SeedJobs(), fixedClock(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)))
}

func TestJobStore_List(t *testing.T) {
	tests := []struct {
		name    string
		filter  JobFilter
		wantIDs []string
		total   int
	}{
		{
			name:    "no filter sorts newest first",
			filter:  JobFilter{Page: query.NewPage(1, 10)},
			wantIDs: []string{"1", "2"},
			total:   2,
		},
		{
			name:    "search matches technologies case-insensitively",
			filter:  JobFilter{Search: "react", Page: query.NewPage(1, 10)},
			wantIDs: []string{"1"},
			total:   1,
		},
		{
			name:    "search matches company",
			filter:  JobFilter{Search: "ADYEN", Page: query.NewPage(1, 10)},
			wantIDs: []string{"2"},
			total:   1,
		},
		{
			name:    "country filter is exact",
			filter:  JobFilter{Country: "Netherlands", Page: query.NewPage(1, 10)},
			wantIDs: []string{"2"},
			total:   1,
		},
		{
			name:    "country filter does not fold case",
			filter:  JobFilter{Country: "netherlands", Page: query.NewPage(1, 10)},
			wantIDs: []string{},
			total:   0,
		},
		{
			name:    "status filter",
			filter:  JobFilter{Status: domain.JobStatusPaused, Page: query.NewPage(1, 10)},
			wantIDs: []string{},
			total:   0,
		},
		{
			name:    "second page of one",
			filter:  JobFilter{Page: query.NewPage(2, 1)},
			wantIDs: []string{"2"},
			total:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestJobStore()
			res := store.List(tt.filter)

			ids := make([]string, 0, len(res.Items))
			for _, j := range res.Items {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.total, res.Pagination.Total)
		})
	}
}

func TestJobStore_ListReturnsCopies(t *testing.T) {
	store := newTestJobStore()

	res := store.List(JobFilter{Page: query.NewPage(1, 10)})
	require.NotEmpty(t, res.Items)
	res.Items[0].Technologies[0] = "mutated"
	res.Items[0].Title = "mutated"

	job, err := store.Get(res.Items[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", job.Title)
	assert.NotEqual(t, "mutated", job.Technologies[0])
}

func TestJobStore_Create(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := NewJobStore(SeedJobs(), fixedClock(now))

	created := store.Create(domain.Job{
		Title:        "Backend Engineer",
		Company:      "Klarna",
		Applications: 99,
		Views:        42,
	})

	assert.Equal(t, "3", created.ID)
	assert.Equal(t, domain.JobStatusActive, created.Status)
	assert.Zero(t, created.Applications)
	assert.Zero(t, created.Views)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)
	assert.NotNil(t, created.Technologies)
	assert.NotNil(t, created.Requirements)
	assert.NotNil(t, created.Benefits)
	assert.Equal(t, 3, store.Count())

	got, err := store.Get("3")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestJobStore_IDsAreNeverReused(t *testing.T) {
	store := newTestJobStore()

	_, err := store.Delete("2")
	require.NoError(t, err)

	created := store.Create(domain.Job{Title: "Data Engineer"})
	assert.Equal(t, "3", created.ID)

	ids := map[string]bool{}
	for _, j := range store.List(JobFilter{Page: query.NewPage(1, 100)}).Items {
		assert.False(t, ids[j.ID], "duplicate id %s", j.ID)
		ids[j.ID] = true
	}
}

func TestJobStore_Update(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		id        string
		now       time.Time
		mutate    func(*domain.Job) error
		wantErr   error
		wantTitle string
	}{
		{
			name: "changes fields but keeps id",
			id:   "1",
			now:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			mutate: func(j *domain.Job) error {
				j.ID = "999"
				j.Title = "Staff React Developer"
				return nil
			},
			wantTitle: "Staff React Developer",
		},
		{
			name:    "missing job",
			id:      "404",
			now:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			mutate:  func(*domain.Job) error { return nil },
			wantErr: domain.ErrNotFound,
		},
		{
			name: "mutate error leaves job untouched",
			id:   "1",
			now:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			mutate: func(j *domain.Job) error {
				j.Title = "half-applied"
				return domain.NewValidationError("bad")
			},
			wantErr:   domain.ErrValidation,
			wantTitle: "Senior React Developer",
		},
		{
			name: "clock behind createdAt is clamped",
			id:   "1",
			now:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			mutate: func(j *domain.Job) error {
				j.Title = "Clamped"
				return nil
			},
			wantTitle: "Clamped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewJobStore(SeedJobs(), fixedClock(tt.now))

			job, err := store.Update(tt.id, tt.mutate)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantTitle != "" {
					stored, getErr := store.Get(tt.id)
					require.NoError(t, getErr)
					assert.Equal(t, tt.wantTitle, stored.Title)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, job.ID)
			assert.Equal(t, tt.wantTitle, job.Title)
			assert.Equal(t, created, job.CreatedAt)
			assert.False(t, job.UpdatedAt.Before(job.CreatedAt))
		})
	}
}

func TestJobStore_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		status  string
		wantErr error
	}{
		{name: "pause", id: "1", status: domain.JobStatusPaused},
		{name: "close", id: "2", status: domain.JobStatusClosed},
		{name: "unknown status", id: "1", status: "archived", wantErr: domain.ErrValidation},
		{name: "empty status", id: "1", status: "", wantErr: domain.ErrValidation},
		{name: "missing job", id: "77", status: domain.JobStatusActive, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestJobStore()

			job, err := store.SetStatus(tt.id, tt.status)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, job.Status)
		})
	}
}

func TestJobStore_SetStatusUnknownIsDescriptive(t *testing.T) {
	store := newTestJobStore()

	_, err := store.SetStatus("1", "archived")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid status. Must be: active, paused, or closed", verr.Message)

	job, getErr := store.Get("1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobStatusActive, job.Status)
}

func TestJobStore_Delete(t *testing.T) {
	store := newTestJobStore()

	removed, err := store.Delete("1")
	require.NoError(t, err)
	assert.Equal(t, "Senior React Developer", removed.Title)
	assert.Equal(t, 1, store.Count())

	_, err = store.Get("1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Delete("1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobStore_CountCreatedSince(t *testing.T) {
	store := newTestJobStore()

	assert.Equal(t, 2, store.CountCreatedSince(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, store.CountCreatedSince(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, store.CountCreatedSince(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
