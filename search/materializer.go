package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"tourrec/pkg/embedding"
	"tourrec/repository"

	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxComposedChars caps the text sent to the embedding model; anything longer
// is cut at the first split boundary.
const maxComposedChars = 1200

const materializeConcurrency = 4

// Materializer backfills semantic embeddings for tours that do not have one
// yet. Runs are idempotent: the missing set is re-derived from the store on
// every run and writes are upserts keyed by tour id, so an interrupted batch
// or a concurrent run never duplicates rows.
type Materializer struct {
	vectors    repository.TourVectorRepo
	embed      embedding.Client
	splitter   textsplitter.RecursiveCharacter
	logger     *zap.Logger
	maxRetries int
	baseDelay  time.Duration
}

func NewMaterializer(vectors repository.TourVectorRepo, embed embedding.Client, logger *zap.Logger) *Materializer {
	return &Materializer{
		vectors: vectors,
		embed:   embed,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(maxComposedChars),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " "}),
		),
		logger:     logger,
		maxRetries: 5,
		baseDelay:  100 * time.Millisecond,
	}
}

// MaterializeMissing embeds and persists every catalog tour that lacks a
// stored vector. A failure on one tour is logged and skipped; an unreachable
// embedding model aborts the whole batch.
func (m *Materializer) MaterializeMissing(ctx context.Context, items []repository.TourItem) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	existing, err := m.vectors.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVectorStoreUnavailable, err)
	}

	missing := make([]repository.TourItem, 0)
	for _, item := range items {
		if _, ok := existing[item.ID]; !ok {
			missing = append(missing, item)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var skipped atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(materializeConcurrency)
	for _, item := range missing {
		eg.Go(func() error {
			text := composeText(item)
			vec, err := m.embedWithRetry(ctx, text)
			if err != nil {
				if errors.Is(err, embedding.ErrUnavailable) || errors.Is(err, context.Canceled) {
					return err
				}
				skipped.Add(1)
				m.logger.Warn("skipping tour, embed failed",
					zap.String("tour_id", item.ID),
					zap.Error(err))
				return nil
			}

			doc := &repository.TourEmbeddingDoc{
				TourID:      item.ID,
				Name:        item.Name,
				Description: item.Description,
				Vector:      vec,
			}
			if err := m.vectors.UpsertOne(ctx, doc); err != nil {
				skipped.Add(1)
				m.logger.Warn("skipping tour, embedding write failed",
					zap.String("tour_id", item.ID),
					zap.Error(err))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	m.logger.Info("embeddings materialized",
		zap.Int("missing", len(missing)),
		zap.Int64("skipped", skipped.Load()),
	)
	return nil
}

// composeText builds the string handed to the embedding model. Fields may be
// empty, never null; an oversized composition is cut at a split boundary so
// it fits the model input window.
func composeText(item repository.TourItem) string {
	return strings.TrimSpace(item.Description + " " + item.Category + " " + item.Name)
}

func (m *Materializer) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxComposedChars {
		chunks, err := m.splitter.SplitText(text)
		if err == nil && len(chunks) > 0 {
			text = chunks[0]
		}
	}

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		vecs, err := m.embed.GetEmbeddings(ctx, []string{text})
		if err == nil {
			if len(vecs) == 0 {
				return nil, fmt.Errorf("empty embedding response")
			}
			return vecs[0], nil
		}

		lastErr = err

		// Don't wait after the last attempt
		if attempt < m.maxRetries {
			delay := m.backoffDelay(attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, lastErr
}

func (m *Materializer) backoffDelay(attempt int) time.Duration {
	// Exponential backoff: baseDelay * 2^attempt with some jitter
	delay := float64(m.baseDelay) * math.Pow(2, float64(attempt))
	jitter := delay * 0.25 * (0.5 - (float64(time.Now().UnixNano()%1000) / 1000))
	return time.Duration(delay + jitter)
}
