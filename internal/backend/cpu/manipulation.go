package cpu

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Reshape returns a copy of t with a new shape of the same element count.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		exceptions.Panicf("reshape: cannot reshape %v into %v", t.Shape(), newShape)
	}
	result := newResult("reshape", newShape, t.Device())
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the axes of t. Without axes the last two dimensions are swapped.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		if ndim < 2 {
			exceptions.Panicf("transpose: need at least 2 dimensions, got %v", shape)
		}
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = i
		}
		axes[ndim-1], axes[ndim-2] = axes[ndim-2], axes[ndim-1]
	}
	if len(axes) != ndim {
		exceptions.Panicf("transpose: got %d axes for %dD tensor", len(axes), ndim)
	}

	outShape := make(tensor.Shape, ndim)
	seen := make([]bool, ndim)
	for i, a := range axes {
		if a < 0 || a >= ndim || seen[a] {
			exceptions.Panicf("transpose: invalid permutation %v", axes)
		}
		seen[a] = true
		outShape[i] = shape[a]
	}

	result := newResult("transpose", outShape, t.Device())
	src, dst := t.Data(), result.Data()
	inStrides := t.Strides()
	outStrides := outShape.ComputeStrides()

	for i := range dst {
		rem := i
		offset := 0
		for d := 0; d < ndim; d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			offset += coord * inStrides[axes[d]]
		}
		dst[i] = src[offset]
	}
	return result
}

// Gather selects x[..., index[...]] along the last dimension.
// index must have the shape of x without its last dimension and hold float32
// integer values in [0, x.shape[-1]).
func (cpu *CPUBackend) Gather(x, index *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		exceptions.Panicf("gather: scalar input")
	}
	n := shape[len(shape)-1]
	outShape := shape[:len(shape)-1]
	if !index.Shape().Equal(outShape) {
		exceptions.Panicf("gather: index shape %v does not match %v", index.Shape(), outShape)
	}

	result := newResult("gather", outShape.Clone(), x.Device())
	src, idx, dst := x.Data(), index.Data(), result.Data()
	for r := range dst {
		j := int(idx[r])
		if j < 0 || j >= n {
			exceptions.Panicf("gather: index %d out of range [0, %d)", j, n)
		}
		dst[r] = src[r*n+j]
	}
	return result
}

// Cat concatenates tensors along dimension 0.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor) *tensor.RawTensor {
	if len(tensors) == 0 {
		exceptions.Panicf("cat: no tensors")
	}
	first := tensors[0].Shape()
	if len(first) == 0 {
		exceptions.Panicf("cat: cannot concatenate scalars")
	}
	total := 0
	for i, t := range tensors {
		s := t.Shape()
		if len(s) != len(first) || !s[1:].Equal(first[1:]) {
			exceptions.Panicf("cat: tensor %d has shape %v, incompatible with %v", i, s, first)
		}
		total += s[0]
	}

	outShape := first.Clone()
	outShape[0] = total
	result := newResult("cat", outShape, tensors[0].Device())
	dst := result.Data()
	offset := 0
	for _, t := range tensors {
		offset += copy(dst[offset:], t.Data())
	}
	return result
}
