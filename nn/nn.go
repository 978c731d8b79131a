// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and losses of keras models.
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewDropout[Backend](0.2),
//	    nn.NewLinear(128, 10, backend),
//	)
//	loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{Reduction: nn.ReductionNone})
package nn

import (
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
)

// Module is implemented by every layer and model.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a trainable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a named parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// SetSeed seeds weight initialization and dropout masks.
func SetSeed(seed int64) {
	nn.SetSeed(seed)
}

// Layers

// Linear is a fully connected layer: y = x @ W^T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// LinearOption configures NewLinear.
type LinearOption = nn.LinearOption

// WithoutBias creates a Linear layer without bias.
func WithoutBias() LinearOption {
	return nn.WithoutBias()
}

// NewLinear creates a Linear layer with Xavier initialization.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, opts ...LinearOption) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend, opts...)
}

// Dropout zeroes inputs with probability p in training mode.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a Dropout layer.
func NewDropout[B tensor.Backend](p float32) *Dropout[B] {
	return nn.NewDropout[B](p)
}

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential from modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// ReLU activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] { return nn.NewReLU[B]() }

// Sigmoid activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] { return nn.NewSigmoid[B]() }

// Tanh activation.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] { return nn.NewTanh[B]() }

// Softmax over the last dimension.
type Softmax[B tensor.Backend] = nn.Softmax[B]

// NewSoftmax creates a Softmax activation.
func NewSoftmax[B tensor.Backend]() *Softmax[B] { return nn.NewSoftmax[B]() }

// Flatten reshapes [N, ...] into [N, prod(...)].
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a Flatten layer.
func NewFlatten[B tensor.Backend]() *Flatten[B] { return nn.NewFlatten[B]() }

// Losses

// Loss computes a loss from predictions and targets.
type Loss[B tensor.Backend] = nn.Loss[B]

// Reduction selects how a loss reduces its per-element values.
type Reduction = nn.Reduction

// Reductions. Sample weights need ReductionNone.
const (
	ReductionMean = nn.ReductionMean
	ReductionSum  = nn.ReductionSum
	ReductionNone = nn.ReductionNone
)

// NewMSELoss creates a mean squared error loss.
func NewMSELoss[B tensor.Backend](reduction Reduction) *nn.MSELoss[B] {
	return nn.NewMSELoss[B](reduction)
}

// NewL1Loss creates a mean absolute error loss.
func NewL1Loss[B tensor.Backend](reduction Reduction) *nn.L1Loss[B] {
	return nn.NewL1Loss[B](reduction)
}

// NewBCEWithLogitsLoss creates a binary cross-entropy loss on logits.
func NewBCEWithLogitsLoss[B tensor.Backend](reduction Reduction) *nn.BCEWithLogitsLoss[B] {
	return nn.NewBCEWithLogitsLoss[B](reduction)
}

// CrossEntropyConfig configures NewCrossEntropyLoss.
type CrossEntropyConfig = nn.CrossEntropyConfig

// NewCrossEntropyLoss creates a cross-entropy loss on logits and class indices.
func NewCrossEntropyLoss[B tensor.Backend](cfg CrossEntropyConfig) *nn.CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss[B](cfg)
}
