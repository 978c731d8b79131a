package optim

import (
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD[B tensor.Backend] struct {
	paramGroups[B]
	momentum   float32
	velocities map[*nn.Parameter[B]][]float32
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float32 // Learning rate (default: 0.01)
	Momentum    float32 // Momentum factor (default: 0.0, range: [0, 1))
	WeightDecay float32 // L2 penalty added to the gradient (default: 0)
}

// NewSGD creates a new SGD optimizer.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[B]{
		paramGroups: newParamGroups(params, config.LR, config.WeightDecay),
		momentum:    config.Momentum,
		velocities:  make(map[*nn.Parameter[B]][]float32),
	}
}

// Step performs a single optimization step.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	s.each(grads, func(group *ParamGroup, p *nn.Parameter[B], grad []float32) {
		data := p.Tensor().Data()
		var velocity []float32
		if s.momentum != 0 {
			velocity = stateFor(s.velocities, p)
		}
		for i := range data {
			g := grad[i] + group.WeightDecay*data[i]
			if velocity != nil {
				velocity[i] = s.momentum*velocity[i] + g
				g = velocity[i]
			}
			data[i] -= group.LR * g
		}
	})
}
