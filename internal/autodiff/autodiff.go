// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op (Add, Mul, MatMul) implements backward pass
//   - Reverse-mode AD: Computes gradients efficiently using chain rule
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x := tensor.MustFromSlice([]float32{2.0}, tensor.Shape{1}, backend)
//	y := x.Mul(x) // y = x²
//
//	grads := autodiff.Backward(y.Sum(), backend)
//	fmt.Println(grads[x.Raw()].Data()) // dy/dx = 2x = [4]
package autodiff

import (
	"github.com/born-ml/keras/internal/autodiff/ops"
	"github.com/born-ml/keras/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// record adds op to the tape when recording and returns its output.
func (b *AutodiffBackend[B]) record(op ops.Operation) *tensor.RawTensor {
	b.tape.Record(op)
	return op.Output()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewAddOp(x, y, b.inner.Add(x, y)))
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewSubOp(x, y, b.inner.Sub(x, y)))
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewMulOp(x, y, b.inner.Mul(x, y)))
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewDivOp(x, y, b.inner.Div(x, y)))
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewMatMulOp(x, y, b.inner.MatMul(x, y)))
}

// Reshape changes the shape and records the operation.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return b.record(ops.NewReshapeOp(t, b.inner.Reshape(t, newShape)))
}

// Transpose permutes the axes and records the operation.
func (b *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	return b.record(ops.NewTransposeOp(t, b.inner.Transpose(t, axes...), axes))
}

// MulScalar multiplies by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return b.record(ops.NewMulScalarOp(x, b.inner.MulScalar(x, scalar), scalar))
}

// AddScalar adds a scalar and records the operation.
func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return b.record(ops.NewAddScalarOp(x, b.inner.AddScalar(x, scalar)))
}

// Exp computes e^x and records the operation.
func (b *AutodiffBackend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewExpOp(x, b.inner.Exp(x)))
}

// Log computes ln(x) and records the operation.
func (b *AutodiffBackend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewLogOp(x, b.inner.Log(x)))
}

// Sqrt computes sqrt(x) and records the operation.
func (b *AutodiffBackend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewSqrtOp(x, b.inner.Sqrt(x)))
}

// Abs computes |x| and records the operation.
func (b *AutodiffBackend[B]) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewAbsOp(x, b.inner.Abs(x)))
}

// ReLU applies max(0, x) and records the operation.
func (b *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewReLUOp(x, b.inner.ReLU(x)))
}

// Sigmoid applies the logistic function and records the operation.
func (b *AutodiffBackend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewSigmoidOp(x, b.inner.Sigmoid(x)))
}

// Tanh applies the hyperbolic tangent and records the operation.
func (b *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewTanhOp(x, b.inner.Tanh(x)))
}

// LogSoftmax computes log(softmax(x)) along the last dimension and records the operation.
func (b *AutodiffBackend[B]) LogSoftmax(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewLogSoftmaxOp(x, b.inner.LogSoftmax(x)))
}

// Sum reduces all elements and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewSumOp(x, b.inner.Sum(x)))
}

// SumDim sums along a dimension and records the operation.
func (b *AutodiffBackend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	dim = normalizeDim(dim, len(x.Shape()))
	return b.record(ops.NewSumDimOp(x, b.inner.SumDim(x, dim, keepDim), dim, keepDim))
}

// MeanDim averages along a dimension and records the operation.
func (b *AutodiffBackend[B]) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	dim = normalizeDim(dim, len(x.Shape()))
	return b.record(ops.NewMeanDimOp(x, b.inner.MeanDim(x, dim, keepDim), dim, keepDim))
}

// Gather selects along the last dimension and records the operation.
func (b *AutodiffBackend[B]) Gather(x, index *tensor.RawTensor) *tensor.RawTensor {
	return b.record(ops.NewGatherOp(x, index, b.inner.Gather(x, index)))
}

// Argmax is not differentiable and is never recorded.
func (b *AutodiffBackend[B]) Argmax(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Argmax(x)
}

// Cat concatenates along dimension 0. The result is not recorded.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Cat(tensors)
}

func normalizeDim(dim, ndim int) int {
	if dim < 0 {
		return dim + ndim
	}
	return dim
}
