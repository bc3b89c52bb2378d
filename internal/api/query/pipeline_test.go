package query

import (
	"cmp"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	id   int
	name string
	rank int
}

func sampleRecords(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{id: i + 1, name: "rec", rank: i % 3}
	}
	return out
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected Page
	}{
		{name: "valid values", page: 2, limit: 5, expected: Page{Page: 2, Limit: 5}},
		{name: "zero page", page: 0, limit: 5, expected: Page{Page: 1, Limit: 5}},
		{name: "negative page", page: -3, limit: 5, expected: Page{Page: 1, Limit: 5}},
		{name: "zero limit", page: 1, limit: 0, expected: Page{Page: 1, Limit: 10}},
		{name: "negative limit", page: 1, limit: -1, expected: Page{Page: 1, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPage(tt.page, tt.limit))
		})
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, Page{Page: 3, Limit: 20}, ParsePage("3", "20"))
	assert.Equal(t, Page{Page: 1, Limit: 10}, ParsePage("", ""))
	assert.Equal(t, Page{Page: 1, Limit: 10}, ParsePage("abc", "1.5"))
	assert.Equal(t, Page{Page: 1, Limit: 10}, ParsePage("-2", "0"))
}

func TestRun_PaginationMetadata(t *testing.T) {
	records := sampleRecords(23)

	tests := []struct {
		name      string
		page      Page
		wantLen   int
		wantPages int
		hasNext   bool
		hasPrev   bool
		firstID   int
	}{
		{name: "first page", page: Page{Page: 1, Limit: 10}, wantLen: 10, wantPages: 3, hasNext: true, hasPrev: false, firstID: 1},
		{name: "middle page", page: Page{Page: 2, Limit: 10}, wantLen: 10, wantPages: 3, hasNext: true, hasPrev: true, firstID: 11},
		{name: "last partial page", page: Page{Page: 3, Limit: 10}, wantLen: 3, wantPages: 3, hasNext: false, hasPrev: true, firstID: 21},
		{name: "out of range page", page: Page{Page: 9, Limit: 10}, wantLen: 0, wantPages: 3, hasNext: false, hasPrev: true},
		{name: "limit larger than total", page: Page{Page: 1, Limit: 100}, wantLen: 23, wantPages: 1, hasNext: false, hasPrev: false, firstID: 1},
		{name: "degenerate values use defaults", page: Page{Page: 0, Limit: -5}, wantLen: 10, wantPages: 3, hasNext: true, hasPrev: false, firstID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(records, nil, nil, tt.page)

			assert.Len(t, res.Items, tt.wantLen)
			assert.Equal(t, 23, res.Pagination.Total)
			assert.Equal(t, tt.wantPages, res.Pagination.Pages)
			assert.Equal(t, tt.hasNext, res.Pagination.HasNext)
			assert.Equal(t, tt.hasPrev, res.Pagination.HasPrev)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstID, res.Items[0].id)
			}
		})
	}
}

func TestRun_PagesAlwaysCeilOfTotal(t *testing.T) {
	records := sampleRecords(37)
	for limit := 1; limit <= 40; limit++ {
		for page := 1; page <= 5; page++ {
			res := Run(records, nil, nil, Page{Page: page, Limit: limit})
			assert.Equal(t, int(math.Ceil(37/float64(limit))), res.Pagination.Pages)
			assert.LessOrEqual(t, len(res.Items), limit)
		}
	}
}

func TestRun_HugeValuesDoNotOverflow(t *testing.T) {
	records := sampleRecords(5)

	require.NotPanics(t, func() {
		res := Run(records, nil, nil, Page{Page: math.MaxInt, Limit: math.MaxInt})
		assert.Empty(t, res.Items)
		assert.Equal(t, 1, res.Pagination.Pages)
		assert.False(t, res.Pagination.HasNext)
	})

	res := Run(records, nil, nil, Page{Page: 1, Limit: math.MaxInt})
	assert.Len(t, res.Items, 5)
	assert.False(t, res.Pagination.HasNext)
}

func TestRun_EmptyInput(t *testing.T) {
	res := Run([]record{}, nil, nil, Page{Page: 1, Limit: 10})
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Pagination.Pages)
	assert.False(t, res.Pagination.HasNext)
}

func TestRun_FilterAndStableSort(t *testing.T) {
	records := sampleRecords(9)
	keep := func(r record) bool { return r.rank != 1 }
	byRank := func(a, b record) int { return cmp.Compare(a.rank, b.rank) }

	res := Run(records, keep, byRank, Page{Page: 1, Limit: 10})

	ids := make([]int, 0, len(res.Items))
	for _, r := range res.Items {
		ids = append(ids, r.id)
	}
	// rank 0: ids 1,4,7; rank 2: ids 3,6,9, insertion order kept within ties
	assert.Equal(t, []int{1, 4, 7, 3, 6, 9}, ids)
	assert.Equal(t, 6, res.Pagination.Total)
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords(6)
	original := append([]record(nil), records...)
	desc := func(a, b record) int { return cmp.Compare(b.id, a.id) }

	Run(records, nil, desc, Page{Page: 1, Limit: 3})

	assert.Equal(t, original, records)
}

func TestRun_FilterIsIdempotent(t *testing.T) {
	records := sampleRecords(12)
	keep := func(r record) bool { return r.rank == 2 }

	once := Run(records, keep, nil, Page{Page: 1, Limit: 100})
	twice := Run(once.Items, keep, nil, Page{Page: 1, Limit: 100})

	assert.Equal(t, once.Items, twice.Items)
	assert.Equal(t, once.Pagination, twice.Pagination)
}

func TestAll(t *testing.T) {
	gt := func(n int) Predicate[int] { return func(v int) bool { return v > n } }
	lt := func(n int) Predicate[int] { return func(v int) bool { return v < n } }

	p := All(gt(2), nil, lt(5))
	assert.True(t, p(3))
	assert.False(t, p(2))
	assert.False(t, p(5))
	assert.True(t, All[int]()(42))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Senior React Developer", "react"))
	assert.False(t, ContainsFold("DevOps Engineer", "react"))
	assert.True(t, MatchesAny([]string{"AWS", "Kubernetes"}, "kube"))
	assert.False(t, MatchesAny(nil, "kube"))
}
