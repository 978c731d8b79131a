package cpu

import (
	"math"

	"github.com/born-ml/keras/internal/parallel"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float32) float32 { return max(v, 0) })
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise, using the stable branch
// for negative inputs.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sigmoid", x, func(v float32) float32 {
		if v >= 0 {
			return float32(1 / (1 + math.Exp(-float64(v))))
		}
		e := math.Exp(float64(v))
		return float32(e / (1 + e))
	})
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("tanh", x, func(v float32) float32 { return float32(math.Tanh(float64(v))) })
}

// LogSoftmax computes x - logsumexp(x) along the last dimension.
//
// The row maximum is subtracted before exponentiating for numerical stability.
func (cpu *CPUBackend) LogSoftmax(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		exceptions.Panicf("logsoftmax: scalar input")
	}
	n := shape[len(shape)-1]
	rows := x.NumElements() / n

	result := newResult("logsoftmax", shape, x.Device())
	dst, src := result.Data(), x.Data()

	parallel.For(rows, func(r int) {
		row := src[r*n : (r+1)*n]
		out := dst[r*n : (r+1)*n]
		maxVal := row[0]
		for _, v := range row[1:] {
			maxVal = max(maxVal, v)
		}
		var sum float64
		for _, v := range row {
			sum += math.Exp(float64(v - maxVal))
		}
		logSum := float32(math.Log(sum))
		for j, v := range row {
			out[j] = v - maxVal - logSum
		}
	}, cpu.par)
	return result
}
