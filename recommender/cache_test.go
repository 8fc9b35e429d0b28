package recommender

import (
	"testing"
	"time"

	"tourrec/repository"
)

func TestFingerprint_TracksCatalogChanges(t *testing.T) {
	base := catalogFixture()
	baseFp := Fingerprint(base)

	testCases := []struct {
		name   string
		mutate func([]repository.TourItem) []repository.TourItem
		same   bool
	}{
		{"Unchanged", func(items []repository.TourItem) []repository.TourItem {
			return items
		}, true},
		{"ItemEdited", func(items []repository.TourItem) []repository.TourItem {
			items[1].UpdatedAt = items[1].UpdatedAt.Add(time.Second)
			return items
		}, false},
		{"ItemRemoved", func(items []repository.TourItem) []repository.TourItem {
			return items[:2]
		}, false},
		{"ItemAdded", func(items []repository.TourItem) []repository.TourItem {
			return append(items, repository.TourItem{ID: "4", UpdatedAt: time.Unix(400, 0)})
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fp := Fingerprint(tc.mutate(catalogFixture()))
			if (fp == baseFp) != tc.same {
				t.Errorf("fingerprint match = %v, expected %v", fp == baseFp, tc.same)
			}
		})
	}
}

func TestSimilarityCache_HitAndInvalidate(t *testing.T) {
	cache := NewSimilarityCache()
	snap := &Snapshot{Items: catalogFixture()}

	if _, ok := cache.Get("fp-1"); ok {
		t.Fatal("empty cache should miss")
	}

	cache.Put("fp-1", snap)
	got, ok := cache.Get("fp-1")
	if !ok || got != snap {
		t.Fatal("expected cache hit for matching fingerprint")
	}

	if _, ok := cache.Get("fp-2"); ok {
		t.Fatal("changed fingerprint should miss")
	}
}
