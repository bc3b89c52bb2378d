package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	total   int
	created []time.Time
}

func (f fakeCounter) Count() int { return f.total }

func (f fakeCounter) CountCreatedSince(t time.Time) int {
	n := 0
	for _, c := range f.created {
		if !c.Before(t) {
			n++
		}
	}
	return n
}

func newTestProvider(t *testing.T, jobs, companies fakeCounter, now time.Time) *Provider {
	t.Helper()
	p, err := NewProvider(jobs, companies)
	require.NoError(t, err)
	p.now = func() time.Time { return now }
	p.intN = func(int) int { return 0 }
	return p
}

func TestProvider_Overview(t *testing.T) {
	p := newTestProvider(t, fakeCounter{}, fakeCounter{}, time.Now())

	var report struct {
		Overview struct {
			TotalJobs     int `json:"totalJobs"`
			AverageSalary int `json:"averageSalary"`
		} `json:"overview"`
		TopTechnologies []struct {
			Technology string `json:"technology"`
		} `json:"topTechnologies"`
	}
	require.NoError(t, json.Unmarshal(p.Overview(), &report))
	assert.Equal(t, 156, report.Overview.TotalJobs)
	assert.Equal(t, 67500, report.Overview.AverageSalary)
	require.NotEmpty(t, report.TopTechnologies)
	assert.Equal(t, "React", report.TopTechnologies[0].Technology)
}

func TestProvider_Metric(t *testing.T) {
	tests := []struct {
		name      string
		metric    string
		wantTotal int
		wantErr   error
	}{
		{name: "applications", metric: "applications", wantTotal: 242},
		{name: "jobs", metric: "jobs", wantTotal: 35},
		{name: "users", metric: "users", wantTotal: 132},
		{name: "unknown", metric: "revenue", wantErr: ErrUnknownMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, fakeCounter{}, fakeCounter{}, time.Now())

			m, err := p.Metric(tt.metric)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, m.Total)
			assert.Len(t, m.Data, 7)
		})
	}
}

func TestProvider_MetricIsCopied(t *testing.T) {
	p := newTestProvider(t, fakeCounter{}, fakeCounter{}, time.Now())

	m, err := p.Metric("jobs")
	require.NoError(t, err)
	m.Data[0].Value = -1

	again, err := p.Metric("jobs")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Data[0].Value)
	assert.Equal(t, []string{"applications", "jobs", "users"}, p.Metrics())
}

func TestProvider_Dashboard(t *testing.T) {
	now := time.Date(2024, 1, 21, 15, 0, 0, 0, time.UTC)
	jobs := fakeCounter{total: 3, created: []time.Time{
		now.Add(-time.Hour),
		now.Add(-48 * time.Hour),
	}}
	companies := fakeCounter{total: 4, created: []time.Time{
		now.Add(-24 * time.Hour),
		now.Add(-30 * 24 * time.Hour),
	}}
	p := newTestProvider(t, jobs, companies, now)

	d := p.Dashboard()

	assert.Equal(t, CurrentStats{
		ActiveUsers:          200,
		JobsPostedToday:      1,
		ApplicationsToday:    25,
		NewCompaniesThisWeek: 1,
		TotalJobs:            3,
		TotalCompanies:       4,
	}, d.CurrentStats)
	require.Len(t, d.RecentActivity, 4)
	assert.Equal(t, now.Add(-15*time.Minute), d.RecentActivity[0].Timestamp)
	assert.Len(t, d.Alerts, 2)
	require.Len(t, d.QuickActions, 4)
	assert.Equal(t, 3, d.QuickActions[0].Count)
	assert.Equal(t, 4, d.QuickActions[1].Count)
}
