package search

import "errors"

// ErrVectorStoreUnavailable marks the embedding store as unreachable, fatal
// for the current request or batch.
var ErrVectorStoreUnavailable = errors.New("vector store unavailable")
