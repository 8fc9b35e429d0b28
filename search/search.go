package search

import (
	"context"
	"fmt"
	"sort"

	"tourrec/pkg/embedding"
	"tourrec/repository"

	"go.uber.org/zap"
)

const DefaultPageSize = 10

// Result is one semantic search hit with its display data joined on.
type Result struct {
	Distance    float32  `json:"distance"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
	Categories  []string `json:"categories"`
}

// Service answers free-text queries by nearest-neighbor lookup over the tour
// embeddings. The query is encoded with the same model the materializer used;
// mixing models would make the distances meaningless, which is why one shared
// client is injected into both.
type Service struct {
	catalog      repository.CatalogRepo
	vectors      repository.TourVectorRepo
	embed        embedding.Client
	materializer *Materializer
	logger       *zap.Logger
}

func NewService(
	catalog repository.CatalogRepo,
	vectors repository.TourVectorRepo,
	embed embedding.Client,
	materializer *Materializer,
	logger *zap.Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		vectors:      vectors,
		embed:        embed,
		materializer: materializer,
		logger:       logger,
	}
}

// Search returns the page of tours nearest to the query, ascending by
// distance. Tours missing an embedding are materialized first. An empty
// catalog or a page past the end yields an empty list, not an error.
func (s *Service) Search(ctx context.Context, query string, size, page int) ([]Result, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	items, err := s.catalog.FetchTours(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tours: %w", err)
	}
	if err := s.materializer.MaterializeMissing(ctx, items); err != nil {
		return nil, fmt.Errorf("materialize embeddings: %w", err)
	}

	vecs, err := s.embed.GetEmbeddings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("empty embedding response for query")
	}

	hits, err := s.vectors.Search(ctx, vecs[0], uint64(size), uint64(page)*uint64(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVectorStoreUnavailable, err)
	}
	if len(hits) == 0 {
		return []Result{}, nil
	}

	// Equal distances rank by tour id so pages are deterministic.
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].TourID < hits[b].TourID
	})

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.TourID)
	}
	display, err := s.catalog.FetchTourDisplay(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch display data: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		d := display[hit.TourID]
		if d.ImageURLs == nil {
			d.ImageURLs = []string{}
		}
		if d.Categories == nil {
			d.Categories = []string{}
		}
		results = append(results, Result{
			Distance:    hit.Distance,
			ID:          hit.TourID,
			Name:        hit.Name,
			Description: hit.Description,
			ImageURLs:   d.ImageURLs,
			Categories:  d.Categories,
		})
	}
	return results, nil
}
