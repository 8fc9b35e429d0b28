package recommender

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildSimilarityMatrix computes the pairwise cosine-similarity matrix over
// the combined vectors. The matrix is symmetric with a unit diagonal; a zero
// vector is similar to nothing, its off-diagonal entries are 0 rather than a
// division error.
//
// This is the O(N²·D) step that caps the viable catalog size for per-snapshot
// rebuilds. Rows are computed concurrently.
func BuildSimilarityMatrix(ctx context.Context, vecs []CombinedVector) ([][]float64, error) {
	n := len(vecs)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1.0
	}

	norms := make([]float64, n)
	for i, v := range vecs {
		norms[i] = v.Norm()
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				var s float64
				if norms[i] > 0 && norms[j] > 0 {
					s = vecs[i].Dot(vecs[j]) / (norms[i] * norms[j])
				}
				sim[i][j] = s
				sim[j][i] = s
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sim, nil
}
