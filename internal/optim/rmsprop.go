package optim

import (
	"math"

	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
)

// RMSprop divides the gradient by a running average of its recent magnitude.
//
//	v = alpha * v + (1-alpha) * gradient²
//	param = param - lr * gradient / (sqrt(v) + eps)
type RMSprop[B tensor.Backend] struct {
	paramGroups[B]
	alpha    float32
	eps      float32
	momentum float32
	square   map[*nn.Parameter[B]][]float32
	buf      map[*nn.Parameter[B]][]float32
}

// RMSpropConfig holds configuration for RMSprop.
type RMSpropConfig struct {
	LR          float32 // Learning rate (default: 0.01)
	Alpha       float32 // Smoothing constant (default: 0.99)
	Eps         float32 // Term for numerical stability (default: 1e-8)
	Momentum    float32 // Momentum factor (default: 0)
	WeightDecay float32 // L2 penalty (default: 0)
}

// NewRMSprop creates a new RMSprop optimizer.
func NewRMSprop[B tensor.Backend](params []*nn.Parameter[B], config RMSpropConfig) *RMSprop[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Alpha == 0 {
		config.Alpha = 0.99
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &RMSprop[B]{
		paramGroups: newParamGroups(params, config.LR, config.WeightDecay),
		alpha:       config.Alpha,
		eps:         config.Eps,
		momentum:    config.Momentum,
		square:      make(map[*nn.Parameter[B]][]float32),
		buf:         make(map[*nn.Parameter[B]][]float32),
	}
}

// Step performs a single optimization step.
func (r *RMSprop[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	r.each(grads, func(group *ParamGroup, p *nn.Parameter[B], grad []float32) {
		data := p.Tensor().Data()
		sq := stateFor(r.square, p)
		var buf []float32
		if r.momentum != 0 {
			buf = stateFor(r.buf, p)
		}
		for i := range data {
			g := grad[i] + group.WeightDecay*data[i]
			sq[i] = r.alpha*sq[i] + (1-r.alpha)*g*g
			step := g / (float32(math.Sqrt(float64(sq[i]))) + r.eps)
			if buf != nil {
				buf[i] = r.momentum*buf[i] + step
				step = buf[i]
			}
			data[i] -= group.LR * step
		}
	})
}
