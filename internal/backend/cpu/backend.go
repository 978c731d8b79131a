// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"github.com/born-ml/keras/internal/parallel"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// CPUBackend implements tensor operations on the CPU.
//
// Results are tagged with the device of the first operand, so tensors moved
// with To keep their device label through a computation.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a CPU backend using parallel.DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallelism config.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// DefaultDevice returns the device computations run on, logging the host CPU.
func DefaultDevice() tensor.Device {
	klog.V(1).Infof("compute device: %s, %s", tensor.CPU, parallel.Describe())
	return tensor.CPU
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// newResult allocates an output tensor, panicking on an invalid shape.
func newResult(op string, shape tensor.Shape, device tensor.Device) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, device)
	if err != nil {
		exceptions.Panicf("%s: failed to create result tensor: %v", op, err)
	}
	return result
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float32) float32 { return x / y })
}

func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor, f func(x, y float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		exceptions.Panicf("%s: %v", op, err)
	}
	result := newResult(op, outShape, a.Device())
	dst, aData, bData := result.Data(), a.Data(), b.Data()

	if !needsBroadcast {
		parallel.For(len(dst), func(i int) {
			dst[i] = f(aData[i], bData[i])
		}, cpu.par)
		return result
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)
	parallel.For(len(dst), func(i int) {
		dst[i] = f(aData[computeFlatIndex(i, outStrides, aStrides)], bData[computeFlatIndex(i, outStrides, bStrides)])
	}, cpu.par)
	return result
}
