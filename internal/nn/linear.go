package nn

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, backend)
//	output := layer.Forward(input) // [32, 784] -> [32, 128]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B]
	bias        *Parameter[B]
}

// LinearOption configures a Linear layer.
type LinearOption func(*linearConfig)

type linearConfig struct {
	noBias bool
}

// WithoutBias creates the layer without a bias term.
func WithoutBias() LinearOption {
	return func(c *linearConfig) { c.noBias = true }
}

// NewLinear creates a new Linear layer.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, opts ...LinearOption) *Linear[B] {
	var cfg linearConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, backend)),
	}
	if !cfg.noBias {
		l.bias = NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))
	}
	return l
}

// Forward computes y = x @ W.T + b for x of shape [batch_size, in_features].
func (l *Linear[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		exceptions.Panicf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape)
	}
	if inputShape[1] != l.inFeatures {
		exceptions.Panicf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1])
	}

	output := input.MatMul(l.weight.Tensor().Transpose())
	if l.bias != nil {
		output = output.Add(l.bias.Tensor())
	}
	return output
}

// Parameters returns [weight, bias], or [weight] without bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns a map of parameter names to raw tensors.
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := map[string]*tensor.RawTensor{"weight": l.weight.Tensor().Raw()}
	if l.bias != nil {
		stateDict["bias"] = l.bias.Tensor().Raw()
	}
	return stateDict
}

// LoadStateDict copies weight (and bias) from stateDict into the layer.
func (l *Linear[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := loadInto(l.weight.Tensor(), stateDict, "weight"); err != nil {
		return err
	}
	if l.bias != nil {
		return loadInto(l.bias.Tensor(), stateDict, "bias")
	}
	return nil
}

// loadInto copies stateDict[name] into dst after checking its shape.
func loadInto[B tensor.Backend](dst *tensor.Tensor[B], stateDict map[string]*tensor.RawTensor, name string) error {
	raw, ok := stateDict[name]
	if !ok {
		return errors.Errorf("missing %s in state dict", name)
	}
	if !raw.Shape().Equal(dst.Shape()) {
		return errors.Errorf("%s shape mismatch: expected %v, got %v", name, dst.Shape(), raw.Shape())
	}
	copy(dst.Data(), raw.Data())
	return nil
}
