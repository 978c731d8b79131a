package ops

import (
	"math"

	"github.com/born-ml/keras/internal/tensor"
)

// MulScalarOp represents output = x * scalar.
type MulScalarOp struct {
	base
	scalar float32
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar float32) *MulScalarOp {
	return &MulScalarOp{base: base{inputs: []*tensor.RawTensor{x}, output: output}, scalar: scalar}
}

// Backward returns grad * scalar.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// AddScalarOp represents output = x + scalar.
type AddScalarOp struct{ base }

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward passes the gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// ExpOp represents output = exp(x). d(exp(x))/dx = exp(x) = output.
type ExpOp struct{ base }

// NewExpOp creates a new ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward returns grad * output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// LogOp represents output = log(x). d(log(x))/dx = 1/x.
type LogOp struct{ base }

// NewLogOp creates a new LogOp.
func NewLogOp(x, output *tensor.RawTensor) *LogOp {
	return &LogOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward returns grad / x.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.inputs[0])}
}

// SqrtOp represents output = sqrt(x). d(sqrt(x))/dx = 1/(2*sqrt(x)).
type SqrtOp struct{ base }

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward returns grad / (2 * output).
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	out := op.output.Data()
	return []*tensor.RawTensor{mapGrad(outputGrad, func(g float32, i int) float32 {
		return g / (2 * out[i])
	})}
}

// AbsOp represents output = |x|. The gradient at 0 is 0.
type AbsOp struct{ base }

// NewAbsOp creates a new AbsOp.
func NewAbsOp(x, output *tensor.RawTensor) *AbsOp {
	return &AbsOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward returns grad * sign(x).
func (op *AbsOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0].Data()
	return []*tensor.RawTensor{mapGrad(outputGrad, func(g float32, i int) float32 {
		switch {
		case x[i] > 0:
			return g
		case x[i] < 0:
			return -g
		default:
			return 0
		}
	})}
}

// ReLUOp represents output = max(0, x). d(ReLU(x))/dx = 1 if x > 0, else 0.
type ReLUOp struct{ base }

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward masks the gradient where the input was not positive.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0].Data()
	return []*tensor.RawTensor{mapGrad(outputGrad, func(g float32, i int) float32 {
		if x[i] > 0 {
			return g
		}
		return 0
	})}
}

// SigmoidOp represents output = σ(x). dσ/dx = σ(x) * (1 - σ(x)).
type SigmoidOp struct{ base }

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(x, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward returns grad * output * (1 - output).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	out := op.output.Data()
	return []*tensor.RawTensor{mapGrad(outputGrad, func(g float32, i int) float32 {
		return g * out[i] * (1 - out[i])
	})}
}

// TanhOp represents output = tanh(x). d(tanh(x))/dx = 1 - tanh²(x).
type TanhOp struct{ base }

// NewTanhOp creates a new TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward returns grad * (1 - output²).
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	out := op.output.Data()
	return []*tensor.RawTensor{mapGrad(outputGrad, func(g float32, i int) float32 {
		return g * (1 - out[i]*out[i])
	})}
}

// LogSoftmaxOp represents output = x - logsumexp(x) along the last dimension.
//
// Backward:
//
//	grad_x = grad - softmax(x) * sum(grad, -1)
type LogSoftmaxOp struct{ base }

// NewLogSoftmaxOp creates a new LogSoftmaxOp.
func NewLogSoftmaxOp(x, output *tensor.RawTensor) *LogSoftmaxOp {
	return &LogSoftmaxOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes the input gradient row by row.
func (op *LogSoftmaxOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	shape := op.output.Shape()
	n := shape[len(shape)-1]
	out, g := op.output.Data(), outputGrad.Data()

	gradX := tensor.MustNewRaw(shape, outputGrad.Device())
	dst := gradX.Data()
	for r := 0; r < len(g)/n; r++ {
		var sum float32
		for j := r * n; j < (r+1)*n; j++ {
			sum += g[j]
		}
		for j := r * n; j < (r+1)*n; j++ {
			dst[j] = g[j] - float32(math.Exp(float64(out[j])))*sum
		}
	}
	return []*tensor.RawTensor{gradX}
}
