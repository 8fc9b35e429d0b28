package recommender

import (
	"math"
	"testing"
)

func TestCombine_NormalizesBeforeWeighting(t *testing.T) {
	fs := &FeatureSet{
		Lexical: []map[string]float64{
			{"beach": 3.0, "relax": 4.0},
			{},
		},
		CategoryIndex: []int{0, 0},
		Categories:    []string{"Leisure"},
	}

	vecs := Combine(fs, 0.7, 0.3)

	// Lexical component alone must carry weight 0.7 after unit-normalizing
	// the raw vector, regardless of the original magnitude.
	var lexNorm float64
	for _, w := range vecs[0].terms {
		lexNorm += w * w
	}
	if got := math.Sqrt(lexNorm); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("expected lexical component norm 0.7, got %v", got)
	}

	want := math.Sqrt(0.7*0.7 + 0.3*0.3)
	if got := vecs[0].Norm(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected combined norm %v, got %v", want, got)
	}

	// Item with empty lexical content keeps only the categorical component.
	if got := vecs[1].Norm(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected norm 0.3 for lexically empty item, got %v", got)
	}
}

func TestCombine_EmptyContentIsZeroVector(t *testing.T) {
	fs := &FeatureSet{
		Lexical:       []map[string]float64{{}},
		CategoryIndex: []int{-1},
	}
	vecs := Combine(fs, 0.7, 0.3)
	if got := vecs[0].Norm(); got != 0 {
		t.Fatalf("expected zero norm for entirely empty item, got %v", got)
	}
}

func TestDot_CategoricalOverlap(t *testing.T) {
	fs := &FeatureSet{
		Lexical:       []map[string]float64{{}, {}, {}},
		CategoryIndex: []int{0, 0, 1},
		Categories:    []string{"Adventure", "Leisure"},
	}
	vecs := Combine(fs, 0.7, 0.3)

	if got := vecs[0].Dot(vecs[1]); math.Abs(got-0.09) > 1e-9 {
		t.Errorf("same category should contribute weight²: got %v", got)
	}
	if got := vecs[0].Dot(vecs[2]); got != 0 {
		t.Errorf("different categories should not overlap: got %v", got)
	}
}
