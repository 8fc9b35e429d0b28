package postgres

import (
	"context"
	"fmt"

	"tourrec/repository"
)

// FetchTours reads the current catalog snapshot. Tours without a category or
// description still come back (left joins), with empty strings substituted.
// Tours mapped to several categories are collapsed to one row, keeping the
// category with the lowest id so the choice is deterministic.
func (c *PostgresClient) FetchTours(ctx context.Context) ([]repository.TourItem, error) {
	query := `
		SELECT DISTINCT ON (t.id)
		       t.id::text,
		       t.name,
		       COALESCE(t.description, ''),
		       COALESCE(c.name, ''),
		       t.updated_at
		FROM tourism.tours t
		LEFT JOIN tourism.tour_categories tc ON t.id = tc.tour_id
		LEFT JOIN tourism.categories c ON tc.category_id = c.id
		ORDER BY t.id, c.id
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch tours: %w", err)
	}
	defer rows.Close()

	var tours []repository.TourItem
	for rows.Next() {
		var t repository.TourItem
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan tour row: %w", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tour rows: %w", err)
	}

	return tours, nil
}

// FetchVisitedTourIDs returns the set of tour ids a user has visited. An
// unknown user simply has no rows, which is an empty history, not an error.
func (c *PostgresClient) FetchVisitedTourIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT tour_id::text
		FROM tourism.user_activities
		WHERE user_id = $1
	`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch user activities: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unable to scan activity row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}

	return ids, nil
}

// FetchTourDisplay aggregates image URLs and category names for the given
// tours. Tours without images or categories get empty slices.
func (c *PostgresClient) FetchTourDisplay(ctx context.Context, tourIDs []string) (map[string]repository.TourDisplay, error) {
	display := make(map[string]repository.TourDisplay, len(tourIDs))
	if len(tourIDs) == 0 {
		return display, nil
	}

	query := `
		SELECT t.id::text,
		       array_remove(array_agg(DISTINCT i.image_url), NULL),
		       array_remove(array_agg(DISTINCT c.name), NULL)
		FROM tourism.tours t
		LEFT JOIN tourism.images i ON t.id = i.tour_id
		LEFT JOIN tourism.tour_categories tc ON t.id = tc.tour_id
		LEFT JOIN tourism.categories c ON tc.category_id = c.id
		WHERE t.id = ANY($1::uuid[])
		GROUP BY t.id
	`

	rows, err := c.pool.Query(ctx, query, tourIDs)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch tour display data: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var d repository.TourDisplay
		if err := rows.Scan(&id, &d.ImageURLs, &d.Categories); err != nil {
			return nil, fmt.Errorf("unable to scan display row: %w", err)
		}
		display[id] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("display rows: %w", err)
	}

	return display, nil
}
