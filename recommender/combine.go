package recommender

import "math"

// CombinedVector is the merged feature point of one item: the weighted,
// per-space-normalized lexical and categorical components. The similarity
// builder only touches it through Dot and Norm, so the two spaces stay
// disjoint dimensions of one opaque vector.
type CombinedVector struct {
	terms map[string]float64
	cat   int
	catW  float64
}

// Combine L2-normalizes each feature space per item, applies the space
// weights and merges. Normalization happens before weighting so that longer
// descriptions do not dominate by incidental magnitude.
func Combine(fs *FeatureSet, lexicalWeight, categoricalWeight float64) []CombinedVector {
	vecs := make([]CombinedVector, len(fs.Lexical))
	for i, lex := range fs.Lexical {
		terms := normalizeLexical(lex)
		for term, w := range terms {
			terms[term] = w * lexicalWeight
		}

		catW := 0.0
		if fs.CategoryIndex[i] >= 0 {
			// A one-hot vector already has unit norm.
			catW = categoricalWeight
		}

		vecs[i] = CombinedVector{
			terms: terms,
			cat:   fs.CategoryIndex[i],
			catW:  catW,
		}
	}
	return vecs
}

// normalizeLexical returns a copy of vec scaled to unit L2 norm. An empty or
// all-zero vector stays empty.
func normalizeLexical(vec map[string]float64) map[string]float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}

	out := make(map[string]float64, len(vec))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for term, w := range vec {
		out[term] = w / norm
	}
	return out
}

// Dot is the inner product of two combined vectors. The categorical
// dimensions of two items only overlap when they share a category.
func (v CombinedVector) Dot(o CombinedVector) float64 {
	a, b := v.terms, o.terms
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	if v.cat >= 0 && v.cat == o.cat {
		dot += v.catW * o.catW
	}
	return dot
}

func (v CombinedVector) Norm() float64 {
	var sum float64
	for _, w := range v.terms {
		sum += w * w
	}
	sum += v.catW * v.catW
	return math.Sqrt(sum)
}
