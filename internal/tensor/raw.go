package tensor

import (
	"strings"

	"github.com/pkg/errors"
)

// Device represents the compute device a tensor lives on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// ParseDevice converts a device name ("cpu", "cuda", ...) to a Device.
func ParseDevice(name string) (Device, error) {
	for d := CPU; d <= WebGPU; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return CPU, errors.Errorf("unknown device %q", name)
}

// RawTensor is the low-level, untyped-by-backend tensor representation:
// a dense row-major float32 buffer plus its shape and device.
//
// The identity of a *RawTensor is what the gradient tape tracks, so two
// RawTensors sharing one buffer are still distinct graph nodes.
type RawTensor struct {
	data   []float32
	shape  Shape
	stride []int
	device Device
}

// NewRaw allocates a zero-filled RawTensor with the given shape.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	return &RawTensor{
		data:   make([]float32, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: device,
	}, nil
}

// MustNewRaw is NewRaw for shapes already known to be valid.
func MustNewRaw(shape Shape, device Device) *RawTensor {
	r, err := NewRaw(shape, device)
	if err != nil {
		panic(err)
	}
	return r
}

// RawFromSlice wraps a copy of data in a RawTensor.
func RawFromSlice(data []float32, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, device)
	if err != nil {
		return nil, err
	}
	copy(r.data, data)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's row-major strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// ByteSize returns the memory size of the data in bytes.
func (r *RawTensor) ByteSize() int {
	return 4 * len(r.data)
}

// Data returns the underlying buffer.
//
// WARNING: modifications to the returned slice modify the tensor.
func (r *RawTensor) Data() []float32 {
	return r.data
}

// Clone returns a deep copy with its own buffer.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]float32, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		device: r.device,
	}
}

// View returns a new RawTensor sharing this buffer under a different shape.
// The element count must not change.
func (r *RawTensor) View(shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(r.data) {
		return nil, errors.Errorf("cannot view %v as %v", r.shape, shape)
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: r.device,
	}, nil
}

// To copies the tensor to the given device. A fresh buffer is allocated even
// when the device does not change.
func (r *RawTensor) To(device Device) *RawTensor {
	out := r.Clone()
	out.device = device
	return out
}
