package nn

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Dropout zeroes elements with probability p during training and scales the
// survivors by 1/(1-p). In inference mode it is the identity.
//
// Modules start in training mode; the trainer switches them with SetTraining.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
}

// NewDropout creates a Dropout layer with drop probability p in [0, 1).
func NewDropout[B tensor.Backend](p float32) *Dropout[B] {
	if p < 0 || p >= 1 {
		exceptions.Panicf("NewDropout: probability must be in [0, 1), got %g", p)
	}
	return &Dropout[B]{p: p, training: true}
}

// SetTraining switches between training and inference behaviour.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the layer is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// Forward multiplies the input by a random keep mask while training.
func (d *Dropout[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	if !d.training || d.p == 0 {
		return input
	}
	mask := tensor.Zeros(input.Shape(), input.Backend())
	data := mask.Data()
	scale := 1 / (1 - d.p)

	rngMu.Lock()
	for i := range data {
		if rng.Float32() >= d.p {
			data[i] = scale
		}
	}
	rngMu.Unlock()

	return input.Mul(mask)
}

// Parameters returns an empty slice.
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
