// Package query implements the filter, sort, paginate pipeline shared by the
// list endpoints.
package query

import (
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when page is missing or not positive
	DefaultPage = 1
	// DefaultLimit is used when limit is missing or not positive
	DefaultLimit = 10
)

// Page is a normalized page request
type Page struct {
	Page  int
	Limit int
}

// NewPage normalizes page and limit, falling back to the defaults for
// zero or negative values
func NewPage(page, limit int) Page {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Page{Page: page, Limit: limit}
}

// ParsePage builds a Page from raw query string values. Unparsable values
// behave like missing ones.
func ParsePage(rawPage, rawLimit string) Page {
	page, _ := strconv.Atoi(strings.TrimSpace(rawPage))
	limit, _ := strconv.Atoi(strings.TrimSpace(rawLimit))
	return NewPage(page, limit)
}

// Pagination is the metadata returned next to a page of items
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Result is one page of a filtered and sorted sequence
type Result[T any] struct {
	Items      []T
	Pagination Pagination
}

// Predicate reports whether a record is kept
type Predicate[T any] func(T) bool

// All composes predicates with logical AND. Nil predicates are skipped.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}

// Run filters records with keep, sorts the survivors stably with cmp and
// slices out the requested page. records is never modified.
func Run[T any](records []T, keep Predicate[T], cmp func(a, b T) int, page Page) Result[T] {
	page = NewPage(page.Page, page.Limit)

	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if keep == nil || keep(r) {
			filtered = append(filtered, r)
		}
	}

	if cmp != nil {
		slices.SortStableFunc(filtered, cmp)
	}

	total := len(filtered)
	start, end := bounds(page, total)

	return Result[T]{
		Items: filtered[start:end],
		Pagination: Pagination{
			Page:    page.Page,
			Limit:   page.Limit,
			Total:   total,
			Pages:   pageCount(total, page.Limit),
			HasNext: page.Limit < total-start,
			HasPrev: page.Page > 1,
		},
	}
}

// bounds clamps [(page-1)*limit, start+limit) to [0, total] without
// overflowing for large page or limit values
func bounds(page Page, total int) (int, int) {
	skip := page.Page - 1
	if skip > 0 && skip > total/page.Limit {
		return total, total
	}
	start := skip * page.Limit
	if start > total {
		return total, total
	}
	end := total
	if page.Limit < total-start {
		end = start + page.Limit
	}
	return start, end
}

func pageCount(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// ContainsFold reports whether needle is a case-insensitive substring of s.
// needle must already be lowercased.
func ContainsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// MatchesAny reports whether the lowercased needle occurs in any of values
func MatchesAny(values []string, lowerNeedle string) bool {
	for _, v := range values {
		if ContainsFold(v, lowerNeedle) {
			return true
		}
	}
	return false
}
