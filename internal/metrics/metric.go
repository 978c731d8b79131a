// Package metrics implements the scoring functions reported during training.
//
// Every metric satisfies the Metric interface: it scores a batch (or a whole
// pass) of predictions against targets and exposes the abbreviation used as
// its History column name.
//
// Available metrics:
//   - Accuracy ("acc"): argmax of the predictions against class indices
//   - BinaryAccuracy ("acc"): rounded predictions against 0/1 targets
//   - MeanSquaredError ("mse"), MeanAbsoluteError ("mae"), RootMeanSquaredError ("rmse")
//   - ROCAUC ("auc"): area under the ROC curve of binary scores
package metrics

import (
	"github.com/born-ml/keras/internal/tensor"
)

// Metric scores predictions against targets.
//
// Score returns a rank-0 tensor or a per-sample vector; callers average
// vector results.
type Metric[B tensor.Backend] interface {
	Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B]
	Abbr() string
}

// ScoreFunc is a plain scoring function.
type ScoreFunc[B tensor.Backend] func(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B]

// Named pairs a scoring function with the column name it reports under.
// Named satisfies Metric, so a plain function can be used wherever a metric is expected.
//
// Example:
//
//	maxErr := metrics.NewNamed("max_err", func(pred, target *tensor.Tensor[B]) *tensor.Tensor[B] { ... })
type Named[B tensor.Backend] struct {
	Name string
	Fn   ScoreFunc[B]
}

// NewNamed creates a Named metric.
func NewNamed[B tensor.Backend](name string, fn ScoreFunc[B]) Named[B] {
	return Named[B]{Name: name, Fn: fn}
}

// FromMetric turns m into a Named entry under its abbreviation.
func FromMetric[B tensor.Backend](m Metric[B]) Named[B] {
	if n, ok := m.(Named[B]); ok {
		return n
	}
	return Named[B]{Name: m.Abbr(), Fn: m.Score}
}

// Score calls the wrapped function.
func (n Named[B]) Score(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	return n.Fn(predictions, targets)
}

// Abbr returns the name.
func (n Named[B]) Abbr() string {
	return n.Name
}

var _ Metric[tensor.Backend] = Named[tensor.Backend]{}

// scalar wraps a float64 result as a rank-0 tensor on the predictions' backend.
func scalar[B tensor.Backend](value float64, like *tensor.Tensor[B]) *tensor.Tensor[B] {
	raw := tensor.MustNewRaw(tensor.Shape{}, like.Device())
	raw.Data()[0] = float32(value)
	return tensor.New(raw, like.Backend())
}
