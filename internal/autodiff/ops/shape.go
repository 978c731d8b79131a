package ops

import "github.com/born-ml/keras/internal/tensor"

// ReshapeOp represents output = reshape(x, newShape).
type ReshapeOp struct{ base }

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(x, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward reshapes the gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// TransposeOp represents output = transpose(x, axes).
type TransposeOp struct {
	base
	axes []int
}

// NewTransposeOp creates a new TransposeOp. Empty axes mean the last two
// dimensions were swapped.
func NewTransposeOp(x, output *tensor.RawTensor, axes []int) *TransposeOp {
	if len(axes) == 0 {
		n := len(x.Shape())
		axes = make([]int, n)
		for i := range axes {
			axes[i] = i
		}
		axes[n-1], axes[n-2] = axes[n-2], axes[n-1]
	}
	return &TransposeOp{base: base{inputs: []*tensor.RawTensor{x}, output: output}, axes: axes}
}

// Backward applies the inverse permutation to the gradient.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, a := range op.axes {
		inverse[a] = i
	}
	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}

// GatherOp represents output[r] = x[r, index[r]] along the last dimension.
// The index receives no gradient.
type GatherOp struct{ base }

// NewGatherOp creates a new GatherOp.
func NewGatherOp(x, index, output *tensor.RawTensor) *GatherOp {
	return &GatherOp{base{inputs: []*tensor.RawTensor{x, index}, output: output}}
}

// Backward scatters the gradient into the gathered positions.
func (op *GatherOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x, index := op.inputs[0], op.inputs[1]
	shape := x.Shape()
	n := shape[len(shape)-1]

	gradX := tensor.MustNewRaw(shape, x.Device())
	dst, idx, g := gradX.Data(), index.Data(), outputGrad.Data()
	for r := range g {
		dst[r*n+int(idx[r])] += g[r]
	}
	return []*tensor.RawTensor{gradX, nil}
}
