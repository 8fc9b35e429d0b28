package recommender

import (
	"sort"

	"tourrec/repository"
)

const DefaultTopN = 5

// Recommendation is one ranked catalog item returned to the caller.
type Recommendation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// RecommendForUser ranks unvisited tours by their mean similarity to the
// user's visited tours. Visited ids never appear in the result, even ids that
// are no longer in the catalog are tolerated. A user with no usable history
// gets a category-diversified sample instead, so new users see catalog
// breadth rather than an arbitrary subset.
//
// Ties rank in catalog order, which keeps results deterministic.
func RecommendForUser(visitedIDs []string, items []repository.TourItem, sim [][]float64, topN int) []Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	indexByID := make(map[string]int, len(items))
	for i, item := range items {
		indexByID[item.ID] = i
	}

	visited := make(map[string]struct{}, len(visitedIDs))
	visitedIdx := make([]int, 0, len(visitedIDs))
	for _, id := range visitedIDs {
		visited[id] = struct{}{}
		if i, ok := indexByID[id]; ok {
			visitedIdx = append(visitedIdx, i)
		}
	}

	// No visit maps onto the current catalog: same as an empty history.
	if len(visitedIdx) == 0 {
		return diversifiedSample(items, topN)
	}

	// Mean over the visited rows rewards broad thematic overlap instead of
	// a strong match with any single visited tour.
	scores := make([]float64, len(items))
	for _, v := range visitedIdx {
		for j, s := range sim[v] {
			scores[j] += s
		}
	}
	for j := range scores {
		scores[j] /= float64(len(visitedIdx))
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	recs := make([]Recommendation, 0, topN)
	for _, i := range order {
		if _, skip := visited[items[i].ID]; skip {
			continue
		}
		recs = append(recs, toRecommendation(items[i]))
		if len(recs) == topN {
			break
		}
	}
	return recs
}

// diversifiedSample picks the first tour of every category in catalog order,
// then truncates. Every category present contributes a candidate before the
// cut, so the result spans min(topN, category count) distinct categories.
func diversifiedSample(items []repository.TourItem, topN int) []Recommendation {
	seen := make(map[string]struct{})
	recs := make([]Recommendation, 0, topN)
	for _, item := range items {
		if _, dup := seen[item.Category]; dup {
			continue
		}
		seen[item.Category] = struct{}{}
		recs = append(recs, toRecommendation(item))
		if len(recs) == topN {
			break
		}
	}
	return recs
}

func toRecommendation(item repository.TourItem) Recommendation {
	return Recommendation{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
	}
}
