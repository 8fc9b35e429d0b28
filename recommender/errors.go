package recommender

import "errors"

// ErrEmptyCatalog means there are no tours to fit feature encoders on.
var ErrEmptyCatalog = errors.New("catalog is empty, cannot build features")
