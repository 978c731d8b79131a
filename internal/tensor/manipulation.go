package tensor

import (
	"github.com/gomlx/exceptions"
)

// Reshape returns a tensor with the same data and a new shape.
// A single -1 dimension is inferred from the element count.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{2, 6}, backend)
//	r := t.Reshape(3, -1) // Shape{3, 4}
func (t *Tensor[B]) Reshape(dims ...int) *Tensor[B] {
	shape := make(Shape, len(dims))
	copy(shape, dims)

	inferred := -1
	known := 1
	for i, d := range shape {
		if d == -1 {
			if inferred >= 0 {
				exceptions.Panicf("Reshape: only one dimension can be inferred, got %v", dims)
			}
			inferred = i
			continue
		}
		known *= d
	}
	if inferred >= 0 {
		if known == 0 || t.NumElements()%known != 0 {
			exceptions.Panicf("Reshape: cannot reshape %v into %v", t.Shape(), dims)
		}
		shape[inferred] = t.NumElements() / known
	}
	if shape.NumElements() != t.NumElements() {
		exceptions.Panicf("Reshape: cannot reshape %v (%d elements) into %v", t.Shape(), t.NumElements(), shape)
	}
	return New(t.backend.Reshape(t.raw, shape), t.backend)
}

// Flatten reshapes [N, ...] into [N, prod(...)].
func (t *Tensor[B]) Flatten() *Tensor[B] {
	if t.Rank() < 2 {
		return t
	}
	return t.Reshape(t.Shape()[0], -1)
}

// Transpose permutes the axes. Without arguments the last two axes are swapped.
func (t *Tensor[B]) Transpose(axes ...int) *Tensor[B] {
	return New(t.backend.Transpose(t.raw, axes...), t.backend)
}

// Cat concatenates tensors along dimension 0.
// All tensors must share their trailing dimensions. The result is not
// connected to the gradient tape.
func Cat[B Backend](tensors []*Tensor[B]) *Tensor[B] {
	if len(tensors) == 0 {
		exceptions.Panicf("Cat: no tensors to concatenate")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	b := tensors[0].backend
	return New(b.Cat(raws), b)
}

// Slice returns rows [start, end) of dimension 0 as a new tensor.
func (t *Tensor[B]) Slice(start, end int) *Tensor[B] {
	shape := t.Shape()
	if t.Rank() == 0 || start < 0 || end > shape[0] || start >= end {
		exceptions.Panicf("Slice: invalid range [%d, %d) for shape %v", start, end, shape)
	}
	rowSize := t.NumElements() / shape[0]
	outShape := shape.Clone()
	outShape[0] = end - start
	raw := MustNewRaw(outShape, t.Device())
	copy(raw.Data(), t.Data()[start*rowSize:end*rowSize])
	return New(raw, t.backend)
}

// Index gathers rows of dimension 0 in the given order.
func (t *Tensor[B]) Index(rows []int) *Tensor[B] {
	shape := t.Shape()
	if t.Rank() == 0 || len(rows) == 0 {
		exceptions.Panicf("Index: cannot index shape %v with %d rows", shape, len(rows))
	}
	rowSize := t.NumElements() / shape[0]
	outShape := shape.Clone()
	outShape[0] = len(rows)
	raw := MustNewRaw(outShape, t.Device())
	src, dst := t.Data(), raw.Data()
	for i, r := range rows {
		if r < 0 || r >= shape[0] {
			exceptions.Panicf("Index: row %d out of bounds for shape %v", r, shape)
		}
		copy(dst[i*rowSize:(i+1)*rowSize], src[r*rowSize:(r+1)*rowSize])
	}
	return New(raw, t.backend)
}
