// Package analytics serves the admin dashboard figures. The long-range
// reports are canned; the dashboard mixes live store counts into them.
package analytics

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// DefaultPeriod, DefaultGranularity and OverviewPeriod describe the canned
// reporting windows
const (
	DefaultPeriod      = "7d"
	DefaultGranularity = "daily"
	OverviewPeriod     = "30 days"
)

var ErrUnknownMetric = errors.New("Metric not found")

var (
	//go:embed data/overview.json
	overviewJSON []byte

	//go:embed data/metrics.json
	metricsJSON []byte
)

// RecordCounter is the slice of a record store the dashboard reads
type RecordCounter interface {
	Count() int
	CountCreatedSince(t time.Time) int
}

type Point struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type Metric struct {
	Data   []Point `json:"data"`
	Total  int     `json:"total"`
	Change string  `json:"change"`
}

type CurrentStats struct {
	ActiveUsers          int `json:"activeUsers"`
	JobsPostedToday      int `json:"jobsPostedToday"`
	ApplicationsToday    int `json:"applicationsToday"`
	NewCompaniesThisWeek int `json:"newCompaniesThisWeek"`
	TotalJobs            int `json:"totalJobs"`
	TotalCompanies       int `json:"totalCompanies"`
}

type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type QuickAction struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type Dashboard struct {
	CurrentStats   CurrentStats  `json:"currentStats"`
	RecentActivity []Activity    `json:"recentActivity"`
	Alerts         []Alert       `json:"alerts"`
	QuickActions   []QuickAction `json:"quickActions"`
}

// Provider builds analytics responses
type Provider struct {
	overview  json.RawMessage
	metrics   map[string]Metric
	jobs      RecordCounter
	companies RecordCounter
	now       func() time.Time
	intN      func(n int) int
}

// NewProvider loads the canned reports and reads live counts from the stores
func NewProvider(jobs, companies RecordCounter) (*Provider, error) {
	if !json.Valid(overviewJSON) {
		return nil, fmt.Errorf("overview report is not valid JSON")
	}

	var metrics map[string]Metric
	if err := json.Unmarshal(metricsJSON, &metrics); err != nil {
		return nil, fmt.Errorf("failed to parse metrics report: %w", err)
	}

	return &Provider{
		overview:  json.RawMessage(overviewJSON),
		metrics:   metrics,
		jobs:      jobs,
		companies: companies,
		now:       time.Now,
		intN:      rand.IntN,
	}, nil
}

// Overview returns the 30-day report
func (p *Provider) Overview() json.RawMessage {
	return slices.Clone(p.overview)
}

// Metric returns the series for one of applications, jobs or users
func (p *Provider) Metric(name string) (Metric, error) {
	m, ok := p.metrics[name]
	if !ok {
		return Metric{}, fmt.Errorf("metric %q: %w", name, ErrUnknownMetric)
	}
	m.Data = slices.Clone(m.Data)
	return m, nil
}

// Metrics lists the known metric names
func (p *Provider) Metrics() []string {
	names := make([]string, 0, len(p.metrics))
	for name := range p.metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dashboard returns the real-time view. Visitor figures are simulated;
// job and company figures come from the stores.
func (p *Provider) Dashboard() Dashboard {
	now := p.now().UTC()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	startOfDay := now.Truncate(24 * time.Hour)

	totalJobs := p.jobs.Count()
	totalCompanies := p.companies.Count()

	return Dashboard{
		CurrentStats: CurrentStats{
			ActiveUsers:          p.intN(50) + 200,
			JobsPostedToday:      p.jobs.CountCreatedSince(startOfDay),
			ApplicationsToday:    p.intN(50) + 25,
			NewCompaniesThisWeek: p.companies.CountCreatedSince(ago(7 * 24 * time.Hour)),
			TotalJobs:            totalJobs,
			TotalCompanies:       totalCompanies,
		},
		RecentActivity: []Activity{
			{ID: "1", Type: "job_posted", Message: "New job posted: Senior React Developer at Spotify", Timestamp: ago(15 * time.Minute)},
			{ID: "2", Type: "application", Message: "New application received for DevOps Engineer position", Timestamp: ago(32 * time.Minute)},
			{ID: "3", Type: "company_joined", Message: "New company registered: TechStart Amsterdam", Timestamp: ago(45 * time.Minute)},
			{ID: "4", Type: "user_signup", Message: "5 new developers signed up in the last hour", Timestamp: ago(time.Hour)},
		},
		Alerts: []Alert{
			{Type: "warning", Message: "Server response time increased by 15% in the last hour", Timestamp: ago(30 * time.Minute)},
			{Type: "info", Message: "Scheduled maintenance planned for Sunday 2AM-4AM", Timestamp: ago(2 * time.Hour)},
		},
		QuickActions: []QuickAction{
			{Action: "post_job", Label: "Post New Job", Count: totalJobs},
			{Action: "add_company", Label: "Add Company", Count: totalCompanies},
			{Action: "review_applications", Label: "Review Applications", Count: 23},
			{Action: "moderate_content", Label: "Moderate Content", Count: 5},
		},
	}
}
