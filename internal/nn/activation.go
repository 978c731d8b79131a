package nn

import (
	"github.com/born-ml/keras/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module: f(x) = max(0, x).
//
// Example:
//
//	relu := nn.NewReLU[Backend]()
//	output := relu.Forward(input)
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation.
func (r *ReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.ReLU()
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid is a sigmoid activation module: σ(x) = 1 / (1 + exp(-x)).
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Sigmoid()
}

// Parameters returns an empty slice.
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies Tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Tanh()
}

// Parameters returns an empty slice.
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// Softmax normalizes the last dimension into probabilities.
type Softmax[B tensor.Backend] struct{}

// NewSoftmax creates a new Softmax module.
func NewSoftmax[B tensor.Backend]() *Softmax[B] {
	return &Softmax[B]{}
}

// Forward applies softmax along the last dimension.
func (s *Softmax[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Softmax()
}

// Parameters returns an empty slice.
func (s *Softmax[B]) Parameters() []*Parameter[B] {
	return nil
}

// Flatten reshapes [N, d1, d2, ...] into [N, d1*d2*...].
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a new Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward flattens all dimensions after the first.
func (f *Flatten[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Flatten()
}

// Parameters returns an empty slice.
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}
