package ops

import (
	"github.com/born-ml/keras/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		return grad
	}
	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	result := grad
	for i := len(gradShape) - len(targetShape); i > 0; i-- {
		result = backend.SumDim(result, 0, false)
	}
	for i, d := range targetShape {
		if d == 1 && result.Shape()[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}
	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// broadcastTo expands grad (whose shape broadcasts to shape) into a full tensor of shape.
func broadcastTo(grad *tensor.RawTensor, shape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	zeros := tensor.MustNewRaw(shape, grad.Device())
	return backend.Add(zeros, grad)
}

// keepDimShape returns shape with dim set to 1.
func keepDimShape(shape tensor.Shape, dim int) tensor.Shape {
	out := shape.Clone()
	out[dim] = 1
	return out
}

// mapGrad builds a gradient of the output's shape with f(grad, i) per element.
func mapGrad(outputGrad *tensor.RawTensor, f func(g float32, i int) float32) *tensor.RawTensor {
	result := tensor.MustNewRaw(outputGrad.Shape(), outputGrad.Device())
	dst, g := result.Data(), outputGrad.Data()
	for i := range dst {
		dst[i] = f(g[i], i)
	}
	return result
}
