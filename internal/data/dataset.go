// Package data provides the datasets and batch loader consumed by the
// training loop.
//
// A Dataset holds samples of two fields (input, target) or three (input,
// target, per-sample weight). Every sample of a dataset has the same arity;
// the loader inspects the first sample once to decide whether batches carry
// weights.
package data

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
)

// Dataset is an indexable collection of samples.
type Dataset[B tensor.Backend] interface {
	// Len returns the number of samples.
	Len() int

	// Sample returns the fields of sample i: (x, y) or (x, y, weight).
	// Each field is the row i of the corresponding dataset tensor.
	Sample(i int) []*tensor.Tensor[B]

	// Batch gathers the samples at indices into one batch.
	Batch(indices []int) Batch[B]
}

// Batch is a group of samples stacked along dimension 0.
// Weight is nil when the dataset carries no sample weights.
type Batch[B tensor.Backend] struct {
	X      *tensor.Tensor[B]
	Y      *tensor.Tensor[B]
	Weight *tensor.Tensor[B]
}

// Size returns the number of samples in the batch.
func (b Batch[B]) Size() int {
	return b.X.Shape()[0]
}

// TensorDataset serves rows of in-memory tensors.
//
// Example:
//
//	ds, err := data.NewTensorDataset(x, y)        // samples (x_i, y_i)
//	weighted, err := ds.WithWeights(w)            // samples (x_i, y_i, w_i)
type TensorDataset[B tensor.Backend] struct {
	x, y, weight *tensor.Tensor[B]
}

// NewTensorDataset pairs x and y row by row. Both must share dimension 0.
func NewTensorDataset[B tensor.Backend](x, y *tensor.Tensor[B]) (*TensorDataset[B], error) {
	if x.Rank() == 0 || y.Rank() == 0 {
		return nil, errors.Errorf("dataset tensors must have a batch dimension, got %v and %v", x.Shape(), y.Shape())
	}
	if x.Shape()[0] != y.Shape()[0] {
		return nil, errors.Errorf("size mismatch between tensors: x has %d rows, y has %d", x.Shape()[0], y.Shape()[0])
	}
	return &TensorDataset[B]{x: x, y: y}, nil
}

// WithWeights returns a copy of the dataset whose samples carry weight[i].
// weight must hold one value per sample.
func (d *TensorDataset[B]) WithWeights(weight *tensor.Tensor[B]) (*TensorDataset[B], error) {
	if weight.NumElements() != d.Len() {
		return nil, errors.Errorf("sample weight has %d values for %d samples", weight.NumElements(), d.Len())
	}
	return &TensorDataset[B]{x: d.x, y: d.y, weight: weight.Reshape(d.Len())}, nil
}

// HasWeights reports whether samples carry a weight.
func (d *TensorDataset[B]) HasWeights() bool {
	return d.weight != nil
}

// Len returns the number of rows.
func (d *TensorDataset[B]) Len() int {
	return d.x.Shape()[0]
}

// Sample returns row i of each tensor.
func (d *TensorDataset[B]) Sample(i int) []*tensor.Tensor[B] {
	rows := []int{i}
	fields := []*tensor.Tensor[B]{d.x.Index(rows), d.y.Index(rows)}
	if d.weight != nil {
		fields = append(fields, d.weight.Index(rows))
	}
	return fields
}

// Batch gathers the rows at indices.
func (d *TensorDataset[B]) Batch(indices []int) Batch[B] {
	b := Batch[B]{X: d.x.Index(indices), Y: d.y.Index(indices)}
	if d.weight != nil {
		b.Weight = d.weight.Index(indices)
	}
	return b
}

// Tensors returns the dataset tensors; weight is nil when absent.
func (d *TensorDataset[B]) Tensors() (x, y, weight *tensor.Tensor[B]) {
	return d.x, d.y, d.weight
}
