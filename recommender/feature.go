package recommender

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"tourrec/repository"

	"github.com/kljensen/snowball"
)

// Document-frequency bounds for the lexical vocabulary. Terms in a single
// document carry no pairwise signal; terms in nearly every document carry no
// discriminative signal.
const (
	minDocFreq   = 2
	maxDocFreqPc = 0.95
)

// FeatureSet holds the per-item feature vectors of one catalog snapshot plus
// the encoders fit on it. Vocabulary and category indices are only meaningful
// within this snapshot; a refit on a changed catalog assigns new indices.
type FeatureSet struct {
	// Lexical holds one sparse tf-idf vector per item, term -> weight.
	Lexical []map[string]float64
	// CategoryIndex holds the fitted category index per item, -1 when the
	// item has no category.
	CategoryIndex []int
	// Categories is the fitted label order, sorted for determinism.
	Categories []string
}

// BuildFeatures fits lexical and categorical encoders on the given catalog
// snapshot and transforms every item. Lexical vectors use tf-idf over
// stemmed unigrams and bigrams with sublinear term-frequency scaling.
func BuildFeatures(items []repository.TourItem, stopWords []string) (*FeatureSet, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[stemWord(strings.ToLower(w))] = struct{}{}
	}

	// Tokenize once, count document frequencies.
	docTerms := make([]map[string]int, len(items))
	docFreq := make(map[string]int)
	for i, item := range items {
		counts := make(map[string]int)
		for _, term := range analyze(item.Description, stop) {
			counts[term]++
		}
		docTerms[i] = counts
		for term := range counts {
			docFreq[term]++
		}
	}

	n := float64(len(items))
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		if df < minDocFreq || float64(df)/n > maxDocFreqPc {
			continue
		}
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	lexical := make([]map[string]float64, len(items))
	for i, counts := range docTerms {
		vec := make(map[string]float64)
		for term, count := range counts {
			w, ok := idf[term]
			if !ok {
				continue
			}
			// Sublinear tf dampens repeated words.
			vec[term] = (1 + math.Log(float64(count))) * w
		}
		lexical[i] = vec
	}

	categories, categoryIndex := fitCategories(items)

	return &FeatureSet{
		Lexical:       lexical,
		CategoryIndex: categoryIndex,
		Categories:    categories,
	}, nil
}

// fitCategories assigns a deterministic index to every category label seen in
// the snapshot and encodes each item as its category index.
func fitCategories(items []repository.TourItem) ([]string, []int) {
	seen := make(map[string]struct{})
	for _, item := range items {
		if item.Category != "" {
			seen[item.Category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}

	encoded := make([]int, len(items))
	for i, item := range items {
		if item.Category == "" {
			encoded[i] = -1
			continue
		}
		encoded[i] = index[item.Category]
	}
	return categories, encoded
}

// analyze lowercases, tokenizes and stems the text, then emits unigrams and
// adjacent-pair bigrams.
func analyze(text string, stop map[string]struct{}) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	stems := make([]string, 0, len(words))
	for _, w := range words {
		s := stemWord(w)
		if _, skip := stop[s]; skip {
			continue
		}
		stems = append(stems, s)
	}

	terms := make([]string, 0, 2*len(stems))
	terms = append(terms, stems...)
	for i := 0; i+1 < len(stems); i++ {
		terms = append(terms, stems[i]+" "+stems[i+1])
	}
	return terms
}

func stemWord(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stem
}
