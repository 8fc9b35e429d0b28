package recommender

import (
	"context"
	"fmt"

	"tourrec/config"
	"tourrec/repository"

	"go.uber.org/zap"
)

// Service answers history-based recommendation requests against the current
// catalog snapshot. Feature encoders and the similarity matrix are refit
// whenever the catalog fingerprint changes; concurrent requests may observe
// different snapshots while the catalog is being written (read-mostly data,
// no isolation guarantee).
type Service struct {
	catalog  repository.CatalogRepo
	cache    *SimilarityCache
	settings config.Settings
	logger   *zap.Logger
}

func NewService(catalog repository.CatalogRepo, settings config.Settings, logger *zap.Logger) *Service {
	return &Service{
		catalog:  catalog,
		cache:    NewSimilarityCache(),
		settings: settings,
		logger:   logger,
	}
}

// Recommend returns up to topN tours for the user, topN <= 0 meaning the
// configured default. A user without activity rows is an empty history, not
// an error.
func (s *Service) Recommend(ctx context.Context, userID string, topN int) ([]Recommendation, error) {
	items, err := s.catalog.FetchTours(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tours: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	fingerprint := Fingerprint(items)
	snapshot, ok := s.cache.Get(fingerprint)
	if !ok {
		snapshot, err = s.buildSnapshot(ctx, items)
		if err != nil {
			return nil, err
		}
		s.cache.Put(fingerprint, snapshot)
		s.logger.Info("similarity matrix rebuilt",
			zap.Int("tours", len(items)),
			zap.String("fingerprint", fingerprint[:12]),
		)
	}

	visited, err := s.catalog.FetchVisitedTourIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user activity: %w", err)
	}

	if topN <= 0 {
		topN = s.settings.TopN
	}
	return RecommendForUser(visited, snapshot.Items, snapshot.Matrix, topN), nil
}

func (s *Service) buildSnapshot(ctx context.Context, items []repository.TourItem) (*Snapshot, error) {
	features, err := BuildFeatures(items, s.settings.StopWords)
	if err != nil {
		return nil, err
	}
	vecs := Combine(features, s.settings.LexicalWeight, s.settings.CategoricalWeight)
	matrix, err := BuildSimilarityMatrix(ctx, vecs)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Items: items, Matrix: matrix}, nil
}
