package ops

import "github.com/born-ml/keras/internal/tensor"

// SumOp represents output = sum(x) as a rank-0 tensor.
type SumOp struct{ base }

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastTo(outputGrad, op.inputs[0].Shape(), backend)}
}

// SumDimOp represents a reduction sum operation along a dimension: output = sum(x, dim).
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
//
// If keepDim=false, the gradient is first reshaped to put the reduced dimension back.
type SumDimOp struct {
	base
	dim     int
	keepDim bool
	scale   float32
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{base: base{inputs: []*tensor.RawTensor{x}, output: output}, dim: dim, keepDim: keepDim, scale: 1}
}

// NewMeanDimOp creates the operation for output = mean(x, dim): a SumDimOp whose
// gradient is scaled by 1/size(dim).
func NewMeanDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	op := NewSumDimOp(x, output, dim, keepDim)
	op.scale = 1 / float32(x.Shape()[dim])
	return op
}

// Backward computes input gradients for the reduction.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := outputGrad
	if !op.keepDim {
		grad = backend.Reshape(grad, keepDimShape(x.Shape(), op.dim))
	}
	gradX := broadcastTo(grad, x.Shape(), backend)
	if op.scale != 1 {
		gradX = backend.MulScalar(gradX, op.scale)
	}
	return []*tensor.RawTensor{gradX}
}
