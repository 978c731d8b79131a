// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the float32 tensors trained by keras models.
//
// A Tensor is bound to the backend that executes its operations. Tensors
// created on an autodiff backend get their operations recorded while the
// backend's tape is recording.
//
//	backend := cpu.New()
//	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	y := x.MatMul(x.Transpose()).Sum()
//
// Class labels are stored as float32 indices.
package tensor

import (
	"math/rand"

	"github.com/born-ml/keras/internal/tensor"
)

// Tensor is a float32 tensor bound to backend B.
type Tensor[B Backend] = tensor.Tensor[B]

// RawTensor is the untyped buffer behind a Tensor.
type RawTensor = tensor.RawTensor

// Shape lists the size of every dimension.
type Shape = tensor.Shape

// Backend executes tensor operations.
type Backend = tensor.Backend

// Device identifies where a tensor lives.
type Device = tensor.Device

// Devices. Only CPU executes operations; the others tag copied data.
const (
	CPU    = tensor.CPU
	CUDA   = tensor.CUDA
	Vulkan = tensor.Vulkan
	Metal  = tensor.Metal
	WebGPU = tensor.WebGPU
)

// ParseDevice converts a device name ("cpu", "cuda", ...) to a Device.
func ParseDevice(name string) (Device, error) {
	return tensor.ParseDevice(name)
}

// New creates a Tensor from a RawTensor and backend.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return tensor.New(raw, b)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	return tensor.FromSlice(data, shape, b)
}

// MustFromSlice is FromSlice that panics on a shape mismatch.
func MustFromSlice[B Backend](data []float32, shape Shape, b B) *Tensor[B] {
	return tensor.MustFromSlice(data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Zeros(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Ones(shape, b)
}

// Full creates a tensor filled with value.
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	return tensor.Full(shape, value, b)
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[B] {
	return tensor.Randn(shape, rng, b)
}

// Cat concatenates tensors along dimension 0.
func Cat[B Backend](tensors []*Tensor[B]) *Tensor[B] {
	return tensor.Cat(tensors)
}
