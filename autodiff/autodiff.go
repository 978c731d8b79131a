// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// New wraps a backend so that tensor operations are recorded on a gradient
// tape while it is recording. keras models require such a backend.
//
//	backend := autodiff.New(cpu.New())
//	model := keras.NewModel[*autodiff.Backend[*cpu.Backend]](module, backend)
package autodiff

import (
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/tensor"
)

// Backend is a backend recording its operations on a gradient tape.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New wraps backend with a gradient tape.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for backpropagation.
type GradientTape = autodiff.GradientTape

// BackwardCapable is implemented by backends with a gradient tape.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes the gradients of t with respect to every recorded input.
func Backward[B BackwardCapable](t *tensor.Tensor[B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// NoGrad runs fn without recording.
func NoGrad[B BackwardCapable](backend B, fn func()) {
	autodiff.NoGrad(backend, fn)
}
