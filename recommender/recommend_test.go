package recommender

import (
	"context"
	"testing"

	"tourrec/repository"
)

func TestRecommendForUser_HistoryBased(t *testing.T) {
	items := catalogFixture()
	sim := buildMatrixFromFixture(t)

	recs := RecommendForUser([]string{"1"}, items, sim, 2)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.ID == "1" {
			t.Fatalf("visited tour must never be recommended")
		}
	}
	// City Walk shares "relaxing" and the Leisure category with Beach Tour.
	if recs[0].ID != "3" {
		t.Errorf("expected tour 3 ranked first, got %s", recs[0].ID)
	}
	if recs[1].ID != "2" {
		t.Errorf("expected tour 2 ranked second, got %s", recs[1].ID)
	}
}

func TestRecommendForUser_EmptyHistoryDiversified(t *testing.T) {
	items := catalogFixture()
	sim := buildMatrixFromFixture(t)

	recs := RecommendForUser(nil, items, sim, 2)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	categories := map[string]bool{}
	for _, rec := range recs {
		categories[rec.Category] = true
	}
	if !categories["Leisure"] || !categories["Adventure"] {
		t.Fatalf("expected both categories represented, got %v", categories)
	}
}

func TestRecommendForUser_UnknownVisitedIDs(t *testing.T) {
	items := catalogFixture()
	sim := buildMatrixFromFixture(t)

	testCases := []struct {
		name    string
		visited []string
		wantLen int
	}{
		{"AllUnknown", []string{"missing-a", "missing-b"}, 2},
		{"MixedKnownUnknown", []string{"1", "missing-a"}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recs := RecommendForUser(tc.visited, items, sim, 2)
			if len(recs) != tc.wantLen {
				t.Fatalf("expected %d recommendations, got %d", tc.wantLen, len(recs))
			}
			for _, rec := range recs {
				for _, v := range tc.visited {
					if rec.ID == v {
						t.Errorf("visited id %s leaked into results", v)
					}
				}
			}
		})
	}
}

func TestRecommendForUser_FewerUnvisitedThanTopN(t *testing.T) {
	items := catalogFixture()
	sim := buildMatrixFromFixture(t)

	recs := RecommendForUser([]string{"1", "2"}, items, sim, 5)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].ID != "3" {
		t.Errorf("expected the only unvisited tour, got %s", recs[0].ID)
	}
}

func TestRecommendForUser_StableTieBreak(t *testing.T) {
	// Four tours with identical content tie on score; catalog order decides.
	items := []repository.TourItem{
		{ID: "a", Description: "quiet forest walk quiet", Category: "Nature"},
		{ID: "b", Description: "quiet forest walk quiet", Category: "Nature"},
		{ID: "c", Description: "quiet forest walk quiet", Category: "Nature"},
		{ID: "d", Description: "quiet forest walk quiet", Category: "Nature"},
	}
	fs, err := BuildFeatures(items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vecs := Combine(fs, 0.7, 0.3)
	sim, err := BuildSimilarityMatrix(context.Background(), vecs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recs := RecommendForUser([]string{"b"}, items, sim, 3)
	want := []string{"a", "c", "d"}
	if len(recs) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(recs))
	}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], rec.ID)
		}
	}
}

func TestDiversifiedSample_OnePerCategory(t *testing.T) {
	items := []repository.TourItem{
		{ID: "1", Category: "Leisure"},
		{ID: "2", Category: "Leisure"},
		{ID: "3", Category: "Adventure"},
		{ID: "4", Category: "Culture"},
	}

	recs := diversifiedSample(items, 5)
	want := []string{"1", "3", "4"}
	if len(recs) != len(want) {
		t.Fatalf("expected %d picks, got %d", len(want), len(recs))
	}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], rec.ID)
		}
	}
}
