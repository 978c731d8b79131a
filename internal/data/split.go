package data

import (
	"math/rand"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
)

// Subset exposes the samples of a parent dataset at fixed indices.
type Subset[B tensor.Backend] struct {
	parent  Dataset[B]
	indices []int
}

// NewSubset creates a view of parent restricted to indices.
func NewSubset[B tensor.Backend](parent Dataset[B], indices []int) *Subset[B] {
	return &Subset[B]{parent: parent, indices: indices}
}

// Len returns the number of samples in the subset.
func (s *Subset[B]) Len() int {
	return len(s.indices)
}

// Sample returns sample i of the subset.
func (s *Subset[B]) Sample(i int) []*tensor.Tensor[B] {
	return s.parent.Sample(s.indices[i])
}

// Batch gathers subset samples.
func (s *Subset[B]) Batch(indices []int) Batch[B] {
	mapped := make([]int, len(indices))
	for i, idx := range indices {
		mapped[i] = s.indices[idx]
	}
	return s.parent.Batch(mapped)
}

// Indices returns the parent indices of the subset.
func (s *Subset[B]) Indices() []int {
	return s.indices
}

// RandomSplit partitions ds into non-overlapping subsets of the given lengths,
// using a permutation drawn from seed. The lengths must sum to ds.Len().
func RandomSplit[B tensor.Backend](ds Dataset[B], lengths []int, seed int64) ([]*Subset[B], error) {
	total := 0
	for _, n := range lengths {
		if n < 0 {
			return nil, errors.Errorf("split lengths must be non-negative, got %v", lengths)
		}
		total += n
	}
	if total != ds.Len() {
		return nil, errors.Errorf("sum of split lengths %v does not equal the dataset length %d", lengths, ds.Len())
	}

	//nolint:gosec // shuffling, not security sensitive
	perm := rand.New(rand.NewSource(seed)).Perm(total)
	subsets := make([]*Subset[B], len(lengths))
	offset := 0
	for i, n := range lengths {
		subsets[i] = NewSubset(ds, perm[offset:offset+n])
		offset += n
	}
	return subsets, nil
}

// SplitFraction splits ds into a training part and a validation part holding
// int(len * fraction) samples. Both parts must be non-empty.
func SplitFraction[B tensor.Backend](ds Dataset[B], fraction float64, seed int64) (train, val *Subset[B], err error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, errors.Errorf("validation split must be in (0, 1), got %g", fraction)
	}
	valLen := int(float64(ds.Len()) * fraction)
	if valLen == 0 || valLen == ds.Len() {
		return nil, nil, errors.Errorf("validation split %g of %d samples leaves %d for validation and %d for training",
			fraction, ds.Len(), valLen, ds.Len()-valLen)
	}
	parts, err := RandomSplit(ds, []int{ds.Len() - valLen, valLen}, seed)
	if err != nil {
		return nil, nil, err
	}
	return parts[0], parts[1], nil
}
