package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/stretchr/testify/assert"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func setup(values []float32) (Backend, *nn.Parameter[Backend]) {
	backend := autodiff.New(cpu.New())
	p := nn.NewParameter("w", tensor.MustFromSlice(values, tensor.Shape{len(values)}, backend))
	return backend, p
}

func gradsFor(p *nn.Parameter[Backend], g []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	raw, _ := tensor.RawFromSlice(g, p.Tensor().Shape(), tensor.CPU)
	return map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): raw}
}

func TestSGD_SimpleUpdate(t *testing.T) {
	_, p := setup([]float32{1, 2})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{LR: 0.1})

	opt.Step(gradsFor(p, []float32{1, -1}))
	assert.InDeltaSlice(t, []float32{0.9, 2.1}, p.Tensor().Data(), 1e-6)
	assert.NotNil(t, p.Grad(), "Step records the gradient on the parameter")

	opt.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestSGD_WithMomentum(t *testing.T) {
	_, p := setup([]float32{0})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{LR: 1, Momentum: 0.5})

	opt.Step(gradsFor(p, []float32{1})) // v = 1
	assert.InDelta(t, -1, p.Tensor().Data()[0], 1e-6)
	opt.Step(gradsFor(p, []float32{1})) // v = 1.5
	assert.InDelta(t, -2.5, p.Tensor().Data()[0], 1e-6)
}

func TestSGD_SkipsParamsWithoutGradient(t *testing.T) {
	_, p := setup([]float32{3})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{})
	opt.Step(map[*tensor.RawTensor]*tensor.RawTensor{})
	assert.Equal(t, float32(3), p.Tensor().Data()[0])
	assert.Equal(t, float32(0.01), opt.GetLR(), "default learning rate")
}

func TestParamGroups_GetSetLR(t *testing.T) {
	_, p := setup([]float32{1})
	_, q := setup([]float32{1})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{LR: 0.1})
	opt.AddParamGroup([]*nn.Parameter[Backend]{q}, 0.5, 0)

	groups := opt.ParamGroups()
	assert.Len(t, groups, 2)
	assert.Equal(t, 1, groups[1].NumParams())
	assert.Equal(t, float32(0.1), opt.GetLR(), "first group")

	grads := gradsFor(p, []float32{1})
	for k, v := range gradsFor(q, []float32{1}) {
		grads[k] = v
	}
	opt.Step(grads)
	assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-6)
	assert.InDelta(t, 0.5, q.Tensor().Data()[0], 1e-6)

	opt.SetLR(0.01)
	assert.Equal(t, float32(0.01), groups[0].LR)
	assert.Equal(t, float32(0.01), groups[1].LR)
}

func TestAdam_FirstStepMovesByLR(t *testing.T) {
	_, p := setup([]float32{1, 1})
	opt := optim.NewAdam([]*nn.Parameter[Backend]{p}, optim.AdamConfig{LR: 0.1})

	// With bias correction the first step is lr * sign(grad).
	opt.Step(gradsFor(p, []float32{3, -0.5}))
	assert.InDeltaSlice(t, []float32{0.9, 1.1}, p.Tensor().Data(), 1e-5)
}

func TestAdamW_DecoupledDecay(t *testing.T) {
	_, p := setup([]float32{2})
	opt := optim.NewAdamW([]*nn.Parameter[Backend]{p}, optim.AdamConfig{LR: 0.1, WeightDecay: 0.5})

	opt.Step(gradsFor(p, []float32{1}))
	// decay: 2 - 0.1*0.5*2 = 1.9, then the Adam step of -0.1.
	assert.InDelta(t, 1.8, p.Tensor().Data()[0], 1e-5)
}

func TestRMSprop_Update(t *testing.T) {
	_, p := setup([]float32{1})
	opt := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{LR: 0.01, Alpha: 0.9})

	opt.Step(gradsFor(p, []float32{2}))
	// v = 0.1 * 4 = 0.4; step = 2 / sqrt(0.4)
	want := 1 - 0.01*2/math.Sqrt(0.4)
	assert.InDelta(t, want, p.Tensor().Data()[0], 1e-5)
}

func TestConvergence_SimpleQuadratic(t *testing.T) {
	optimizers := map[string]func(params []*nn.Parameter[Backend]) optim.Optimizer{
		"sgd":  func(ps []*nn.Parameter[Backend]) optim.Optimizer { return optim.NewSGD(ps, optim.SGDConfig{LR: 0.1}) },
		"adam": func(ps []*nn.Parameter[Backend]) optim.Optimizer { return optim.NewAdam(ps, optim.AdamConfig{LR: 0.1}) },
		"adamw": func(ps []*nn.Parameter[Backend]) optim.Optimizer {
			return optim.NewAdamW(ps, optim.AdamConfig{LR: 0.1, WeightDecay: 1e-4})
		},
		"rmsprop": func(ps []*nn.Parameter[Backend]) optim.Optimizer {
			return optim.NewRMSprop(ps, optim.RMSpropConfig{LR: 0.02})
		},
	}

	for name, newOpt := range optimizers {
		t.Run(name, func(t *testing.T) {
			backend, p := setup([]float32{5})
			opt := newOpt([]*nn.Parameter[Backend]{p})
			tape := backend.Tape()
			tape.StartRecording()

			// minimize (w - 3)²
			for range 300 {
				opt.ZeroGrad()
				loss := p.Tensor().AddScalar(-3).Square().Sum()
				opt.Step(autodiff.Backward(loss, backend))
				tape.Clear()
			}
			assert.InDelta(t, 3, p.Tensor().Data()[0], 0.1)
		})
	}
}
