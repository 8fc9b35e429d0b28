package recommender

import (
	"context"
	"errors"
	"testing"

	"tourrec/config"
	"tourrec/repository"

	"go.uber.org/zap"
)

type fakeCatalog struct {
	tours      []repository.TourItem
	visited    map[string][]string
	fetchCalls int
}

func (f *fakeCatalog) FetchTours(ctx context.Context) ([]repository.TourItem, error) {
	f.fetchCalls++
	return f.tours, nil
}

func (f *fakeCatalog) FetchVisitedTourIDs(ctx context.Context, userID string) ([]string, error) {
	return f.visited[userID], nil
}

func (f *fakeCatalog) FetchTourDisplay(ctx context.Context, tourIDs []string) (map[string]repository.TourDisplay, error) {
	return nil, nil
}

func newTestService(catalog *fakeCatalog) *Service {
	return NewService(catalog, config.DefaultSettings(), zap.NewNop())
}

func TestService_Recommend(t *testing.T) {
	catalog := &fakeCatalog{
		tours:   catalogFixture(),
		visited: map[string][]string{"user-a": {"1"}},
	}
	svc := newTestService(catalog)

	recs, err := svc.Recommend(context.Background(), "user-a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "3" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestService_UnknownUserGetsDiversifiedSample(t *testing.T) {
	catalog := &fakeCatalog{tours: catalogFixture()}
	svc := newTestService(catalog)

	recs, err := svc.Recommend(context.Background(), "nobody", 2)
	if err != nil {
		t.Fatalf("unknown user must not be an error, got %v", err)
	}
	categories := map[string]bool{}
	for _, rec := range recs {
		categories[rec.Category] = true
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", categories)
	}
}

func TestService_EmptyCatalog(t *testing.T) {
	svc := newTestService(&fakeCatalog{})
	_, err := svc.Recommend(context.Background(), "user-a", 2)
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestService_CachesMatrixAcrossRequests(t *testing.T) {
	catalog := &fakeCatalog{tours: catalogFixture()}
	svc := newTestService(catalog)

	if _, err := svc.Recommend(context.Background(), "user-a", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, ok := svc.cache.Get(Fingerprint(catalog.tours))
	if !ok {
		t.Fatal("expected snapshot cached after first request")
	}

	if _, err := svc.Recommend(context.Background(), "user-b", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := svc.cache.Get(Fingerprint(catalog.tours))
	if first != second {
		t.Fatal("second request should reuse the cached snapshot")
	}
}
