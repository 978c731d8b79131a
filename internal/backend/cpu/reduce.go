package cpu

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Sum reduces all elements to a rank-0 tensor.
// Accumulation is done in float64.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	var sum float64
	for _, v := range x.Data() {
		sum += float64(v)
	}
	result := newResult("sum", tensor.Shape{}, x.Device())
	result.Data()[0] = float32(sum)
	return result
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x shape [2, 3, 4]
//	backend.SumDim(x, -1, true)   // shape: [2, 3, 1]
//	backend.SumDim(x, -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("sumdim", dim, len(shape))

	result := newResult("sumdim", reducedShape(shape, dim, keepDim), x.Device())
	sumDim(x.Data(), result.Data(), shape, dim)
	return result
}

// MeanDim averages tensor elements along the specified dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("meandim", dim, len(shape))

	result := newResult("meandim", reducedShape(shape, dim, keepDim), x.Device())
	dst := result.Data()
	sumDim(x.Data(), dst, shape, dim)
	scale := 1 / float32(shape[dim])
	for i := range dst {
		dst[i] *= scale
	}
	return result
}

// Argmax returns the index (as float32) of the maximum along the last dimension.
// Ties resolve to the first index.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		exceptions.Panicf("argmax: scalar input")
	}
	n := shape[len(shape)-1]
	outShape := shape[:len(shape)-1].Clone()
	result := newResult("argmax", outShape, x.Device())

	src, dst := x.Data(), result.Data()
	for r := range dst {
		row := src[r*n : (r+1)*n]
		best := 0
		for j, v := range row {
			if v > row[best] {
				best = j
			}
		}
		dst[r] = float32(best)
	}
	return result
}

func normalizeDim(op string, dim, ndim int) int {
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		exceptions.Panicf("%s: dimension %d out of range for %dD tensor", op, dim, ndim)
	}
	return dim
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			out = append(out, d)
		}
	}
	return out
}

// sumDim sums src over dim into dst, viewing src as [outer, dim, inner].
func sumDim(src, dst []float32, shape tensor.Shape, dim int) {
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	size := shape[dim]

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var sum float32
			base := o*size*inner + in
			for d := 0; d < size; d++ {
				sum += src[base+d*inner]
			}
			dst[o*inner+in] = sum
		}
	}
}
