// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package keras

import (
	"fmt"
	"io"
	"os"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/serialization"
	"github.com/born-ml/keras/internal/summary"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
)

// Version of the keras package.
const Version = "0.3.0"

// ErrNotCompiled is returned by the training and evaluation methods of a
// Model that was not compiled.
var ErrNotCompiled = errors.New("model is not compiled, call Compile first")

// History is the per-epoch metric table returned by Fit.
type History = training.History

// Snapshot is an ordered set of metric values, e.g. the result of Evaluate.
type Snapshot = training.Snapshot

// Loader yields batches to FitLoader and EvaluateLoader. *data.Loader implements it.
type Loader[B autodiff.BackwardCapable] = training.Loader[B]

// Errors returned by training.
var (
	ErrStopTraining  = training.ErrStopTraining
	ErrUnreducedLoss = training.ErrUnreducedLoss
	ErrEmptyDataset  = training.ErrEmptyDataset
)

// Model wraps a module with training and inference features.
type Model[B autodiff.BackwardCapable] struct {
	module  nn.Module[B]
	backend B
	out     io.Writer
	trainer *training.Trainer[B]
}

// NewModel wraps module. backend must be the backend module's parameters live on.
func NewModel[B autodiff.BackwardCapable](module nn.Module[B], backend B) *Model[B] {
	return &Model[B]{module: module, backend: backend, out: os.Stdout}
}

// SetOutput sets where progress lines and summaries are written. Default os.Stdout.
// It applies to the next Compile.
func (m *Model[B]) SetOutput(w io.Writer) {
	m.out = w
}

// Module returns the wrapped module.
func (m *Model[B]) Module() nn.Module[B] {
	return m.module
}

// Forward runs the wrapped module.
func (m *Model[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return m.module.Forward(x)
}

// Parameters returns the wrapped module's parameters.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	return m.module.Parameters()
}

// Compiled reports whether Compile succeeded.
func (m *Model[B]) Compiled() bool {
	return m.trainer != nil
}

// Trainer returns the trainer built by Compile, or nil.
func (m *Model[B]) Trainer() *training.Trainer[B] {
	return m.trainer
}

// CountParams returns the total number of scalars in the model's parameters.
func (m *Model[B]) CountParams() int {
	return nn.CountParams(m.module)
}

// Summary prints one row per layer for a sample of inputShape
// (without the batch dimension).
func (m *Model[B]) Summary(inputShape ...int) error {
	var s *summary.Summary
	var err error
	autodiff.NoGrad(m.backend, func() {
		s, err = summary.Of(m.module, tensor.Shape(inputShape), m.backend)
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(m.out, s.String())
	return err
}

// SaveWeights writes the model's state dict to a safetensors file.
func (m *Model[B]) SaveWeights(path string) error {
	return serialization.WriteSafeTensors(path, nn.StateDict(m.module), map[string]string{
		"keras_version": Version,
	})
}

// LoadWeights reads a safetensors file written by SaveWeights into the model.
func (m *Model[B]) LoadWeights(path string) error {
	state, _, err := serialization.ReadSafeTensors(path, m.backend.Device())
	if err != nil {
		return err
	}
	return errors.Wrapf(nn.LoadStateDict(m.module, state), "loading weights from %s", path)
}
