// Package nn implements the neural network building blocks trained by the
// keras training loop.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Linear, Dropout, Flatten and activation layers
//   - Sequential: Container for stacking layers
//   - Loss functions with a Reduction mode: MSE, L1, CrossEntropy, BCEWithLogits
//   - State dicts for checkpointing
package nn

import (
	"github.com/born-ml/keras/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(128, 10, backend),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all trainable parameters of this module, or an
	// empty slice for modules without any (e.g., activation functions).
	Parameters() []*Parameter[B]
}

// TrainingMode is implemented by modules whose behaviour differs between
// training and inference (Dropout, and containers holding it).
type TrainingMode interface {
	SetTraining(training bool)
}

// Stateful is implemented by modules that name their own state dict entries.
type Stateful interface {
	StateDict() map[string]*tensor.RawTensor
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

// SetTraining switches m into training or inference mode when it supports it.
func SetTraining[B tensor.Backend](m Module[B], training bool) {
	if tm, ok := m.(TrainingMode); ok {
		tm.SetTraining(training)
	}
}

// CountParams returns the number of scalar trainable parameters in m.
func CountParams[B tensor.Backend](m Module[B]) int {
	n := 0
	for _, p := range m.Parameters() {
		n += p.Tensor().NumElements()
	}
	return n
}
