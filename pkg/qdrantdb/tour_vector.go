package qdrantdb

import (
	"context"
	"fmt"

	"tourrec/repository"

	"github.com/qdrant/go-client/qdrant"
)

const (
	TourCollectionName = "tour_embeddings"
)

// CreateTourCollection creates the embedding collection if it does not exist.
// Points are keyed by tour UUID, so one tour can never hold two embeddings.
func (c *TourVectorClient) CreateTourCollection(ctx context.Context) error {
	exists, err := c.Client.CollectionExists(ctx, TourCollectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = c.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: TourCollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.dims,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("err create tour collection: %w", err)
	}
	return nil
}

// UpsertOne writes the embedding point for one tour. The point id is the tour
// id itself, so re-running a batch overwrites instead of duplicating.
func (c *TourVectorClient) UpsertOne(ctx context.Context, doc *repository.TourEmbeddingDoc) error {
	md := map[string]any{
		"tour_id":     doc.TourID,
		"name":        doc.Name,
		"description": doc.Description,
	}
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(doc.TourID),
		Vectors: qdrant.NewVectorsDense(doc.Vector),
		Payload: qdrant.NewValueMap(md),
	}

	_, err := c.Client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: TourCollectionName,
		Points:         []*qdrant.PointStruct{point},
	})

	return err
}

// ExistingIDs reports which of the given tour ids already have a stored
// point. Callers subtract the result from the catalog to find tours that
// still need embedding.
func (c *TourVectorClient) ExistingIDs(ctx context.Context, tourIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(tourIDs))
	if len(tourIDs) == 0 {
		return existing, nil
	}

	ids := make([]*qdrant.PointId, 0, len(tourIDs))
	for _, id := range tourIDs {
		ids = append(ids, qdrant.NewID(id))
	}

	resp, err := c.Client.Get(ctx, &qdrant.GetPoints{
		CollectionName: TourCollectionName,
		Ids:            ids,
	})
	if err != nil {
		return nil, fmt.Errorf("err get tour points: %w", err)
	}

	for _, point := range resp {
		existing[point.Id.GetUuid()] = struct{}{}
	}
	return existing, nil
}

// Search runs a paginated nearest-neighbor query. Qdrant scores cosine
// matches with higher-is-closer, so the score is converted to a cosine
// distance before returning.
func (c *TourVectorClient) Search(ctx context.Context, vector []float32, limit, offset uint64) ([]repository.SearchHit, error) {
	resp, err := c.Client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: TourCollectionName,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          qdrant.PtrOf(limit),
		Offset:         qdrant.PtrOf(offset),
		WithPayload:    qdrant.NewWithPayloadInclude("tour_id", "name", "description"),
	})
	if err != nil {
		return nil, fmt.Errorf("err query tour points: %w", err)
	}

	hits := make([]repository.SearchHit, 0, len(resp))
	for _, point := range resp {
		payload := point.GetPayload()
		hits = append(hits, repository.SearchHit{
			Distance:    1 - point.GetScore(),
			TourID:      payload["tour_id"].GetStringValue(),
			Name:        payload["name"].GetStringValue(),
			Description: payload["description"].GetStringValue(),
		})
	}
	return hits, nil
}
