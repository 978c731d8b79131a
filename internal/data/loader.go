package data

import (
	"iter"
	"math/rand"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	BatchSize int   // Default 32.
	Shuffle   bool  // Reshuffle the sample order on every pass.
	Seed      int64 // Seed of the shuffle; passes of two loaders with equal seeds match.
	DropLast  bool  // Skip the trailing partial batch.
}

// Loader yields the batches of a dataset, one pass at a time.
//
// Example:
//
//	loader, err := data.NewLoader(ds, data.LoaderConfig{BatchSize: 64, Shuffle: true})
//	for batch := range loader.Batches() {
//	    out := model.Forward(batch.X)
//	    ...
//	}
type Loader[B tensor.Backend] struct {
	dataset Dataset[B]
	cfg     LoaderConfig
	rng     *rand.Rand
}

// NewLoader creates a loader over ds.
func NewLoader[B tensor.Backend](ds Dataset[B], cfg LoaderConfig) (*Loader[B], error) {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 32
	}
	if cfg.BatchSize < 0 {
		return nil, errors.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	return &Loader[B]{
		dataset: ds,
		cfg:     cfg,
		//nolint:gosec // shuffling, not security sensitive
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Dataset returns the underlying dataset.
func (l *Loader[B]) Dataset() Dataset[B] {
	return l.dataset
}

// Len returns the number of samples in the dataset.
func (l *Loader[B]) Len() int {
	return l.dataset.Len()
}

// NumBatches returns the number of batches of one pass.
func (l *Loader[B]) NumBatches() int {
	n := l.dataset.Len()
	if l.cfg.DropLast {
		return n / l.cfg.BatchSize
	}
	return (n + l.cfg.BatchSize - 1) / l.cfg.BatchSize
}

// BatchSize returns the configured batch size.
func (l *Loader[B]) BatchSize() int {
	return l.cfg.BatchSize
}

// HasWeights reports whether samples carry a weight, judged by the arity of
// the first sample. An empty dataset has no weights.
func (l *Loader[B]) HasWeights() bool {
	if l.dataset.Len() == 0 {
		return false
	}
	return len(l.dataset.Sample(0)) == 3
}

// Batches returns an iterator over one pass. With Shuffle set every call
// draws a new order.
func (l *Loader[B]) Batches() iter.Seq[Batch[B]] {
	n := l.dataset.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if l.cfg.Shuffle {
		l.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	return func(yield func(Batch[B]) bool) {
		for start := 0; start < n; start += l.cfg.BatchSize {
			end := min(start+l.cfg.BatchSize, n)
			if l.cfg.DropLast && end-start < l.cfg.BatchSize {
				return
			}
			if !yield(l.dataset.Batch(order[start:end])) {
				return
			}
		}
	}
}
