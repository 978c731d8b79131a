package optim

import (
	"math"

	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// With Decoupled set (AdamW), weight decay shrinks the parameter directly
// instead of being added to the gradient.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[B tensor.Backend] struct {
	paramGroups[B]
	beta1     float32
	beta2     float32
	eps       float32
	decoupled bool
	t         int
	m         map[*nn.Parameter[B]][]float32
	v         map[*nn.Parameter[B]][]float32
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR          float32    // Learning rate (default: 0.001)
	Betas       [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps         float32    // Term for numerical stability (default: 1e-8)
	WeightDecay float32    // L2 penalty, or decoupled decay for AdamW (default: 0, AdamW 0.01)
	Decoupled   bool       // Use AdamW's decoupled weight decay
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *Adam[B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[B]{
		paramGroups: newParamGroups(params, config.LR, config.WeightDecay),
		beta1:       config.Betas[0],
		beta2:       config.Betas[1],
		eps:         config.Eps,
		decoupled:   config.Decoupled,
		m:           make(map[*nn.Parameter[B]][]float32),
		v:           make(map[*nn.Parameter[B]][]float32),
	}
}

// NewAdamW creates Adam with decoupled weight decay (default decay 0.01).
func NewAdamW[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *Adam[B] {
	if config.WeightDecay == 0 {
		config.WeightDecay = 0.01
	}
	config.Decoupled = true
	return NewAdam(params, config)
}

// Step performs a single optimization step. Parameters with no gradient are skipped.
func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.t++
	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	a.each(grads, func(group *ParamGroup, p *nn.Parameter[B], grad []float32) {
		data := p.Tensor().Data()
		m := stateFor(a.m, p)
		v := stateFor(a.v, p)

		for i := range data {
			g := grad[i]
			if a.decoupled {
				data[i] -= group.LR * group.WeightDecay * data[i]
			} else {
				g += group.WeightDecay * data[i]
			}

			m[i] = a.beta1*m[i] + (1-a.beta1)*g
			v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
			mHat := m[i] / biasCorrection1
			vHat := v[i] / biasCorrection2
			data[i] -= group.LR * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		}
	})
}
