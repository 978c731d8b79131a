package tensor

import (
	"math/rand"

	"github.com/gomlx/exceptions"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros(tensor.Shape{3, 4}, backend)
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	raw, err := NewRaw(shape, b.Device())
	if err != nil {
		exceptions.Panicf("Zeros: %v", err)
	}
	return New(raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with value.
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Scalar creates a rank-0 tensor.
func Scalar[B Backend](value float32, b B) *Tensor[B] {
	return Full(Shape{}, value, b)
}

// Randn creates a tensor with values drawn from N(0, 1) using rng.
// A nil rng uses the global source.
func Randn[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		if rng != nil {
			data[i] = float32(rng.NormFloat64())
		} else {
			//nolint:gosec // weight initialization, not security sensitive
			data[i] = float32(rand.NormFloat64())
		}
	}
	return t
}

// Rand creates a tensor with values drawn from U[0, 1) using rng.
// A nil rng uses the global source.
func Rand[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		if rng != nil {
			data[i] = rng.Float32()
		} else {
			//nolint:gosec // weight initialization, not security sensitive
			data[i] = rand.Float32()
		}
	}
	return t
}

// Arange creates a 1-D tensor [0, 1, ..., n-1].
func Arange[B Backend](n int, b B) *Tensor[B] {
	t := Zeros(Shape{n}, b)
	data := t.Data()
	for i := range data {
		data[i] = float32(i)
	}
	return t
}
