package autodiff

import (
	"github.com/born-ml/keras/internal/tensor"
	"github.com/gomlx/exceptions"
)

// BackwardCapable is implemented by backends that record a gradient tape.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// Tape returns the gradient tape for backward computation.
	Tape() *GradientTape
}

var _ BackwardCapable = (*AutodiffBackend[tensor.Backend])(nil)

// Backward computes gradients of t using the backend's tape.
//
// The output gradient is seeded with ones of t's shape, so for a scalar loss
// the result holds dLoss/dx for every recorded x.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones(tensor.Shape{2}, backend)
//	y := x.Mul(x).Sum() // y = Σx²
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()] // [2, 2]
func Backward[B BackwardCapable](t *tensor.Tensor[B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.Tape()
	if tape.NumOps() == 0 {
		exceptions.Panicf("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	outputGrad := tensor.MustNewRaw(t.Shape(), t.Device())
	data := outputGrad.Data()
	for i := range data {
		data[i] = 1
	}
	return tape.Backward(t.Raw(), outputGrad, backend)
}

// NoGrad runs fn with recording disabled on the backend's tape, restoring the
// previous recording state afterwards (also when fn panics).
func NoGrad[B BackwardCapable](backend B, fn func()) {
	tape := backend.Tape()
	was := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if was {
			tape.StartRecording()
		}
	}()
	fn()
}
