package storage

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CompanyFilter selects companies for a list request. Featured is nil when
// the caller did not ask for a featured filter.
type CompanyFilter struct {
	Search   string
	Country  string
	Industry string
	Status   string
	Featured *bool
	Page     query.Page
}

// CompanyStore is the in-memory company collection
type CompanyStore struct {
	mu        sync.RWMutex
	companies []domain.Company
	ids       *idSequence
	now       Clock
	locale    language.Tag
}

// NewCompanyStore creates a store holding a copy of seed
func NewCompanyStore(seed []domain.Company, now Clock) *CompanyStore {
	if now == nil {
		now = time.Now
	}
	companies := make([]domain.Company, 0, len(seed))
	ids := make([]string, 0, len(seed))
	for _, c := range seed {
		companies = append(companies, c.Clone())
		ids = append(ids, c.ID)
	}
	return &CompanyStore{
		companies: companies,
		ids:       newIDSequence(ids),
		now:       now,
		locale:    language.English,
	}
}

// List runs the query pipeline over a snapshot of the store
func (s *CompanyStore) List(filter CompanyFilter) query.Result[domain.Company] {
	// Collators keep internal buffers and are not safe for concurrent use
	col := collate.New(s.locale)
	byName := func(a, b domain.Company) int {
		return col.CompareString(a.Name, b.Name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := query.Run(s.companies, companyPredicate(filter), byName, filter.Page)
	items := make([]domain.Company, len(res.Items))
	for i, c := range res.Items {
		items[i] = c.Clone()
	}
	res.Items = items
	return res
}

func companyPredicate(f CompanyFilter) query.Predicate[domain.Company] {
	var preds []query.Predicate[domain.Company]

	if search := strings.ToLower(f.Search); search != "" {
		preds = append(preds, func(c domain.Company) bool {
			return query.ContainsFold(c.Name, search) ||
				query.ContainsFold(c.City, search) ||
				query.ContainsFold(c.Industry, search)
		})
	}
	if f.Country != "" {
		preds = append(preds, func(c domain.Company) bool { return c.Country == f.Country })
	}
	if f.Industry != "" {
		preds = append(preds, func(c domain.Company) bool { return c.Industry == f.Industry })
	}
	if f.Status != "" {
		preds = append(preds, func(c domain.Company) bool { return c.Status == f.Status })
	}
	if f.Featured != nil {
		featured := *f.Featured
		preds = append(preds, func(c domain.Company) bool { return c.Featured == featured })
	}

	return query.All(preds...)
}

// Get returns the company with the given id
func (s *CompanyStore) Get(id string) (domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Company{}, fmt.Errorf("company %s: %w", id, domain.ErrNotFound)
	}
	return s.companies[i].Clone(), nil
}

// Create rejects a case-insensitive duplicate name, then assigns id, slug,
// timestamps and defaults before appending the company
func (s *CompanyStore) Create(company domain.Company) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.companies {
		if strings.EqualFold(existing.Name, company.Name) {
			return domain.Company{}, fmt.Errorf("company %q: %w", company.Name, domain.ErrConflict)
		}
	}

	now := s.now().UTC()
	company.ID = s.ids.Next()
	company.Slug = domain.Slugify(company.Name)
	if company.Status == "" {
		company.Status = domain.CompanyStatusActive
	}
	company.ActiveJobs = 0
	company.TotalApplications = 0
	company.TechStack = nonNil(company.TechStack)
	company.Benefits = nonNil(company.Benefits)
	company.CreatedAt = now
	company.UpdatedAt = now

	s.companies = append(s.companies, company.Clone())
	return company.Clone(), nil
}

// Update applies mutate to the stored company. The id can never change, the
// slug follows the name and updatedAt is always refreshed.
func (s *CompanyStore) Update(id string, mutate func(*domain.Company) error) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Company{}, fmt.Errorf("company %s: %w", id, domain.ErrNotFound)
	}

	current := s.companies[i]
	updated := current.Clone()
	if err := mutate(&updated); err != nil {
		return domain.Company{}, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if updated.Name != current.Name {
		updated.Slug = domain.Slugify(updated.Name)
	}
	updated.UpdatedAt = touch(s.now().UTC(), updated.CreatedAt)

	s.companies[i] = updated
	return updated.Clone(), nil
}

// SetFeatured changes only the featured flag
func (s *CompanyStore) SetFeatured(id string, featured bool) (domain.Company, error) {
	return s.Update(id, func(c *domain.Company) error {
		c.Featured = featured
		return nil
	})
}

// Delete removes the company and returns it. Jobs referencing it are kept.
func (s *CompanyStore) Delete(id string) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Company{}, fmt.Errorf("company %s: %w", id, domain.ErrNotFound)
	}
	removed := s.companies[i]
	s.companies = slices.Delete(s.companies, i, i+1)
	return removed, nil
}

// Stats summarizes the whole collection, ignoring any filter
func (s *CompanyStore) Stats() domain.CompanyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.CompanyStats{TotalCompanies: len(s.companies)}
	for _, c := range s.companies {
		if c.Featured {
			stats.FeaturedCompanies++
		}
		if c.Status == domain.CompanyStatusActive {
			stats.ActiveCompanies++
		}
	}
	return stats
}

func (s *CompanyStore) indexOf(id string) int {
	return slices.IndexFunc(s.companies, func(c domain.Company) bool { return c.ID == id })
}

// CountCreatedSince returns how many companies were created at or after t
func (s *CompanyStore) CountCreatedSince(t time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.companies {
		if !c.CreatedAt.Before(t) {
			n++
		}
	}
	return n
}

func (s *CompanyStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.companies)
}
