// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - ParamGroup: a set of parameters sharing hyper-parameters
//   - SGD (with momentum), Adam, AdamW and RMSprop
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	backend.Tape().StartRecording()
//	output := model.Forward(input)
//	loss := lossFunc.Forward(output, targets)
//	grads := autodiff.Backward(loss, backend)
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
package optim

import (
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters in-place, using the
	// gradient map returned by autodiff.Backward.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the learning rate of the first parameter group.
	GetLR() float32

	// SetLR sets the learning rate of every parameter group.
	SetLR(lr float32)

	// ParamGroups returns the parameter groups in registration order.
	ParamGroups() []*ParamGroup
}

// ParamGroup holds the hyper-parameters shared by a set of parameters.
// Schedulers adjust LR between steps.
type ParamGroup struct {
	LR          float32
	WeightDecay float32
	numParams   int
}

// NumParams returns the number of parameter tensors in the group.
func (g *ParamGroup) NumParams() int {
	return g.numParams
}

// paramGroups is embedded by every optimizer: it owns the parameter groups and
// walks parameters together with their gradients.
type paramGroups[B tensor.Backend] struct {
	groups []*ParamGroup
	params [][]*nn.Parameter[B]
}

func newParamGroups[B tensor.Backend](params []*nn.Parameter[B], lr, weightDecay float32) paramGroups[B] {
	var g paramGroups[B]
	g.AddParamGroup(params, lr, weightDecay)
	return g
}

// AddParamGroup registers more parameters with their own hyper-parameters.
func (g *paramGroups[B]) AddParamGroup(params []*nn.Parameter[B], lr, weightDecay float32) *ParamGroup {
	group := &ParamGroup{LR: lr, WeightDecay: weightDecay, numParams: len(params)}
	g.groups = append(g.groups, group)
	g.params = append(g.params, params)
	return group
}

// ParamGroups returns the parameter groups.
func (g *paramGroups[B]) ParamGroups() []*ParamGroup {
	return g.groups
}

// GetLR returns the learning rate of the first group.
func (g *paramGroups[B]) GetLR() float32 {
	if len(g.groups) == 0 {
		return 0
	}
	return g.groups[0].LR
}

// SetLR sets the learning rate of every group.
func (g *paramGroups[B]) SetLR(lr float32) {
	for _, group := range g.groups {
		group.LR = lr
	}
}

// ZeroGrad clears gradients for all parameters.
func (g *paramGroups[B]) ZeroGrad() {
	for _, params := range g.params {
		for _, p := range params {
			p.ZeroGrad()
		}
	}
}

// each calls fn for every parameter that received a gradient, recording the
// gradient on the parameter first. Parameters outside the graph are skipped.
func (g *paramGroups[B]) each(grads map[*tensor.RawTensor]*tensor.RawTensor, fn func(group *ParamGroup, p *nn.Parameter[B], grad []float32)) {
	for i, params := range g.params {
		for _, p := range params {
			grad := getGradient(p, grads)
			if grad == nil {
				continue
			}
			p.SetGrad(tensor.New(grad, p.Tensor().Backend()))
			fn(g.groups[i], p, grad.Data())
		}
	}
}

// getGradient safely retrieves gradient for a parameter.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}

// stateFor returns the zero-initialized state buffer of p, allocating it on first use.
func stateFor[B tensor.Backend](state map[*nn.Parameter[B]][]float32, p *nn.Parameter[B]) []float32 {
	s, ok := state[p]
	if !ok {
		s = make([]float32, p.Tensor().NumElements())
		state[p] = s
	}
	return s
}
