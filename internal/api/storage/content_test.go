package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedHomepage(t *testing.T) {
	h := SeedHomepage()
	for _, section := range HomepageSections {
		assert.Contains(t, h, section)
	}

	var stories []struct {
		Name   string `json:"name"`
		Salary string `json:"salary"`
	}
	require.NoError(t, json.Unmarshal(h["successStories"], &stories))
	require.Len(t, stories, 2)
	assert.Equal(t, "Mehmet Akın", stories[0].Name)
	assert.Equal(t, "€65,000/year", stories[0].Salary)
}

func TestContentStore_MergeHomepage(t *testing.T) {
	boot := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := boot.Add(time.Hour)
	current := boot
	store := NewContentStore(SeedHomepage(), func() time.Time { return current })

	_, updatedAt := store.Homepage()
	assert.Equal(t, boot, updatedAt)

	before, _ := store.Homepage()
	current = later
	merged, ignored := store.MergeHomepage(Homepage{
		"hero":    json.RawMessage(`{"title":"Work in Europe"}`),
		"banner":  json.RawMessage(`{"text":"nope"}`),
		"address": json.RawMessage(`"x"`),
	})

	assert.Equal(t, []string{"address", "banner"}, ignored)
	assert.JSONEq(t, `{"title":"Work in Europe"}`, string(merged["hero"]))
	assert.NotContains(t, merged, "banner")
	assert.Equal(t, before["stats"], merged["stats"])

	got, updatedAt := store.Homepage()
	assert.Equal(t, merged, got)
	assert.Equal(t, later, updatedAt)
}

func TestContentStore_NilSeed(t *testing.T) {
	store := NewContentStore(nil, nil)

	merged, ignored := store.MergeHomepage(Homepage{"stats": json.RawMessage(`{}`)})
	assert.Empty(t, ignored)
	assert.Len(t, merged, 1)
}
