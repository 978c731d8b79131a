package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// Tensor is a float32 tensor bound to the backend B that executes its operations.
//
// Operations go through the backend, so a tensor created on an autodiff backend
// gets its operations recorded on the gradient tape.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros(tensor.Shape{3, 4}, backend)
//	result := t.Add(t)
type Tensor[B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a Tensor from a RawTensor and backend.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return &Tensor[B]{raw: raw, backend: b}
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	raw, err := RawFromSlice(data, shape, b.Device())
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// MustFromSlice is FromSlice that panics on a shape mismatch.
func MustFromSlice[B Backend](data []float32, shape Shape, b B) *Tensor[B] {
	t, err := FromSlice(data, shape, b)
	if err != nil {
		exceptions.Panicf("tensor.MustFromSlice: %v", err)
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor[B]) Shape() Shape {
	return t.raw.Shape()
}

// Rank returns the number of dimensions.
func (t *Tensor[B]) Rank() int {
	return len(t.raw.Shape())
}

// IsScalar reports whether the tensor has rank 0.
func (t *Tensor[B]) IsScalar() bool {
	return len(t.raw.Shape()) == 0
}

// Device returns the tensor's compute device.
func (t *Tensor[B]) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor[B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[B]) Backend() B {
	return t.backend
}

// Data returns the tensor's buffer (zero-copy).
func (t *Tensor[B]) Data() []float32 {
	return t.raw.Data()
}

// Item returns the value of a single-element tensor.
func (t *Tensor[B]) Item() float32 {
	if t.NumElements() != 1 {
		exceptions.Panicf("Item() only works for single-element tensors, got shape %v", t.Shape())
	}
	return t.raw.Data()[0]
}

// At returns the element at the given indices.
func (t *Tensor[B]) At(indices ...int) float32 {
	shape := t.Shape()
	if len(indices) != len(shape) {
		exceptions.Panicf("expected %d indices, got %d", len(shape), len(indices))
	}
	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			exceptions.Panicf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i])
		}
		offset += idx * strides[i]
	}
	return t.raw.Data()[offset]
}

// String returns a short description of the tensor.
func (t *Tensor[B]) String() string {
	return fmt.Sprintf("Tensor%v on %s", t.Shape(), t.Device())
}

// Clone returns a deep copy that is not connected to the gradient tape.
func (t *Tensor[B]) Clone() *Tensor[B] {
	return New(t.raw.Clone(), t.backend)
}

// Detach returns a tensor sharing this tensor's data but unknown to the
// gradient tape, so nothing computed from it flows back into the graph.
func (t *Tensor[B]) Detach() *Tensor[B] {
	view, err := t.raw.View(t.Shape())
	if err != nil {
		exceptions.Panicf("Detach: %v", err)
	}
	return New(view, t.backend)
}

// To copies the tensor to the given device.
func (t *Tensor[B]) To(device Device) *Tensor[B] {
	return New(t.raw.To(device), t.backend)
}
