package metrics

import (
	"math"

	"github.com/born-ml/keras/internal/tensor"
)

// MeanSquaredError is mean((predictions - targets)²).
type MeanSquaredError[B tensor.Backend] struct{}

// NewMeanSquaredError creates a MeanSquaredError metric.
func NewMeanSquaredError[B tensor.Backend]() *MeanSquaredError[B] {
	return &MeanSquaredError[B]{}
}

// Score returns the mean squared error as a rank-0 tensor.
func (m *MeanSquaredError[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	return scalar(meanSquared("MeanSquaredError", predictions, targets), predictions)
}

// Abbr returns "mse".
func (m *MeanSquaredError[B]) Abbr() string {
	return "mse"
}

// MeanAbsoluteError is mean(|predictions - targets|).
type MeanAbsoluteError[B tensor.Backend] struct{}

// NewMeanAbsoluteError creates a MeanAbsoluteError metric.
func NewMeanAbsoluteError[B tensor.Backend]() *MeanAbsoluteError[B] {
	return &MeanAbsoluteError[B]{}
}

// Score returns the mean absolute error as a rank-0 tensor.
func (m *MeanAbsoluteError[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	pred, labels := sameLength("MeanAbsoluteError", predictions, targets)
	var sum float64
	for i, p := range pred {
		sum += math.Abs(float64(p - labels[i]))
	}
	return scalar(sum/float64(len(pred)), predictions)
}

// Abbr returns "mae".
func (m *MeanAbsoluteError[B]) Abbr() string {
	return "mae"
}

// RootMeanSquaredError is sqrt(mean((predictions - targets)²)).
type RootMeanSquaredError[B tensor.Backend] struct{}

// NewRootMeanSquaredError creates a RootMeanSquaredError metric.
func NewRootMeanSquaredError[B tensor.Backend]() *RootMeanSquaredError[B] {
	return &RootMeanSquaredError[B]{}
}

// Score returns the root mean squared error as a rank-0 tensor.
func (m *RootMeanSquaredError[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	return scalar(math.Sqrt(meanSquared("RootMeanSquaredError", predictions, targets)), predictions)
}

// Abbr returns "rmse".
func (m *RootMeanSquaredError[B]) Abbr() string {
	return "rmse"
}

func meanSquared[B tensor.Backend](name string, predictions, targets *tensor.Tensor[B]) float64 {
	pred, labels := sameLength(name, predictions, targets)
	var sum float64
	for i, p := range pred {
		d := float64(p - labels[i])
		sum += d * d
	}
	return sum / float64(len(pred))
}
