package nn

import (
	"strings"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Loss computes a loss from predictions and targets.
//
// With ReductionMean or ReductionSum the result is a rank-0 tensor. With
// ReductionNone it is a per-sample vector of shape [N].
type Loss[B tensor.Backend] interface {
	Forward(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B]
}

// Reduction selects how per-element losses are combined.
type Reduction int

// Supported reductions.
const (
	ReductionMean Reduction = iota // average over all elements
	ReductionSum                   // sum over all elements
	ReductionNone                  // one value per sample
)

// String returns the reduction name as used in configuration.
func (r Reduction) String() string {
	switch r {
	case ReductionMean:
		return "mean"
	case ReductionSum:
		return "sum"
	case ReductionNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseReduction converts "mean", "sum" or "none" to a Reduction.
func ParseReduction(name string) (Reduction, error) {
	switch strings.ToLower(name) {
	case "mean", "":
		return ReductionMean, nil
	case "sum":
		return ReductionSum, nil
	case "none":
		return ReductionNone, nil
	}
	return ReductionMean, errors.Errorf("invalid reduction %q, we support [mean sum none]", name)
}

// reduce applies r to element-wise losses of shape [N, ...].
// ReductionNone averages the non-batch dimensions of each sample.
func reduce[B tensor.Backend](elementwise *tensor.Tensor[B], r Reduction) *tensor.Tensor[B] {
	switch r {
	case ReductionSum:
		return elementwise.Sum()
	case ReductionNone:
		if elementwise.Rank() <= 1 {
			return elementwise
		}
		return elementwise.Reshape(elementwise.Shape()[0], -1).MeanDim(-1, false)
	default:
		return elementwise.Mean()
	}
}

func checkSameShape(name string, predictions, targets tensor.Shape) {
	if !predictions.Equal(targets) {
		exceptions.Panicf("%s: predictions %v and targets %v must have the same shape", name, predictions, targets)
	}
}

// MSELoss computes the Mean Squared Error: (predictions - targets)².
//
// Example:
//
//	mse := nn.NewMSELoss[Backend](nn.ReductionMean)
//	loss := mse.Forward(predictions, targets)
type MSELoss[B tensor.Backend] struct {
	reduction Reduction
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](reduction Reduction) *MSELoss[B] {
	return &MSELoss[B]{reduction: reduction}
}

// Reduction returns the loss's reduction mode.
func (m *MSELoss[B]) Reduction() Reduction {
	return m.reduction
}

// Forward computes the MSE loss for predictions and targets of the same shape.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	checkSameShape("MSELoss", predictions.Shape(), targets.Shape())
	return reduce(predictions.Sub(targets).Square(), m.reduction)
}

// L1Loss computes the Mean Absolute Error: |predictions - targets|.
type L1Loss[B tensor.Backend] struct {
	reduction Reduction
}

// NewL1Loss creates a new L1 loss function.
func NewL1Loss[B tensor.Backend](reduction Reduction) *L1Loss[B] {
	return &L1Loss[B]{reduction: reduction}
}

// Reduction returns the loss's reduction mode.
func (l *L1Loss[B]) Reduction() Reduction {
	return l.reduction
}

// Forward computes the L1 loss for predictions and targets of the same shape.
func (l *L1Loss[B]) Forward(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	checkSameShape("L1Loss", predictions.Shape(), targets.Shape())
	return reduce(predictions.Sub(targets).Abs(), l.reduction)
}

// BCEWithLogitsLoss computes binary cross-entropy on raw logits.
//
// Uses the numerically stable form:
//
//	loss = max(x, 0) - x*y + log(1 + exp(-|x|))
type BCEWithLogitsLoss[B tensor.Backend] struct {
	reduction Reduction
}

// NewBCEWithLogitsLoss creates a new BCE-with-logits loss function.
func NewBCEWithLogitsLoss[B tensor.Backend](reduction Reduction) *BCEWithLogitsLoss[B] {
	return &BCEWithLogitsLoss[B]{reduction: reduction}
}

// Reduction returns the loss's reduction mode.
func (l *BCEWithLogitsLoss[B]) Reduction() Reduction {
	return l.reduction
}

// Forward computes the loss for logits and {0, 1} targets of the same shape.
func (l *BCEWithLogitsLoss[B]) Forward(logits, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	checkSameShape("BCEWithLogitsLoss", logits.Shape(), targets.Shape())
	softplus := logits.Abs().Neg().Exp().AddScalar(1).Log()
	elementwise := logits.ReLU().Sub(logits.Mul(targets)).Add(softplus)
	return reduce(elementwise, l.reduction)
}
