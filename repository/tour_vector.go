package repository

import "context"

// TourEmbeddingDoc is one persisted semantic vector, keyed by tour id.
// At most one document exists per tour.
type TourEmbeddingDoc struct {
	TourID      string
	Name        string
	Description string
	Vector      []float32
}

// SearchHit is one nearest-neighbor result. Distance is cosine distance,
// smaller means more similar.
type SearchHit struct {
	Distance    float32
	TourID      string
	Name        string
	Description string
}

type TourVectorRepo interface {
	// UpsertOne writes the embedding for a tour. Re-running with the same
	// tour id overwrites rather than duplicates.
	UpsertOne(ctx context.Context, doc *TourEmbeddingDoc) error

	// ExistingIDs reports which of the given tour ids already have an
	// embedding stored.
	ExistingIDs(ctx context.Context, tourIDs []string) (map[string]struct{}, error)

	// Search returns the nearest stored vectors to the query vector,
	// ascending by distance, skipping offset results.
	Search(ctx context.Context, vector []float32, limit, offset uint64) ([]SearchHit, error)
}
