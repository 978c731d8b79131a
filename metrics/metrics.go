// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics provides the metrics reported during training.
//
// Metrics can be passed to Model.Compile as values, or by name:
// "mse", "mae", "rmse", "acc", "binary_acc", "auc".
package metrics

import (
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/tensor"
)

// Metric scores predictions against targets and names itself with Abbr.
type Metric[B tensor.Backend] = metrics.Metric[B]

// ScoreFunc scores predictions against targets, as a scalar or one value per sample.
type ScoreFunc[B tensor.Backend] = metrics.ScoreFunc[B]

// Named is a score function with an explicit name.
type Named[B tensor.Backend] = metrics.Named[B]

// NewNamed names fn.
func NewNamed[B tensor.Backend](name string, fn ScoreFunc[B]) Named[B] {
	return metrics.NewNamed(name, fn)
}

// NewAccuracy compares the argmax of logits with class indices ("acc").
func NewAccuracy[B tensor.Backend]() Metric[B] { return metrics.NewAccuracy[B]() }

// NewBinaryAccuracy compares rounded probabilities with 0/1 targets ("acc").
func NewBinaryAccuracy[B tensor.Backend]() Metric[B] { return metrics.NewBinaryAccuracy[B]() }

// NewROCAUC computes the area under the ROC curve ("auc").
func NewROCAUC[B tensor.Backend]() Metric[B] { return metrics.NewROCAUC[B]() }

// NewMeanSquaredError computes the mean squared error ("mse").
func NewMeanSquaredError[B tensor.Backend]() Metric[B] { return metrics.NewMeanSquaredError[B]() }

// NewMeanAbsoluteError computes the mean absolute error ("mae").
func NewMeanAbsoluteError[B tensor.Backend]() Metric[B] { return metrics.NewMeanAbsoluteError[B]() }

// NewRootMeanSquaredError computes the root mean squared error ("rmse").
func NewRootMeanSquaredError[B tensor.Backend]() Metric[B] {
	return metrics.NewRootMeanSquaredError[B]()
}
