package repository

import (
	"context"
	"time"
)

// TourItem is one row of the catalog snapshot consumed by the recommender.
// A tour may map to many categories upstream; the catalog read resolves that
// to a single category per tour (lowest category id wins). Missing description
// or category come back as empty strings, never as a dropped row.
type TourItem struct {
	ID          string
	Name        string
	Description string
	Category    string
	UpdatedAt   time.Time
}

// UserActivity records one visit of a user to a tour. Visits are an unordered
// set per user; there is no recency signal.
type UserActivity struct {
	UserID string
	TourID string
}

// TourDisplay holds the auxiliary fields joined onto search results.
type TourDisplay struct {
	ImageURLs  []string
	Categories []string
}

type CatalogRepo interface {
	FetchTours(ctx context.Context) ([]TourItem, error)
	FetchVisitedTourIDs(ctx context.Context, userID string) ([]string, error)
	FetchTourDisplay(ctx context.Context, tourIDs []string) (map[string]TourDisplay, error)
}
