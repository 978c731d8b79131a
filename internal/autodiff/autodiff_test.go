package autodiff_test

import (
	"testing"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() Backend {
	b := autodiff.New(cpu.New())
	b.Tape().StartRecording()
	return b
}

func TestAutodiffBackend_NameAndDevice(t *testing.T) {
	backend := autodiff.New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.NotNil(t, backend.Inner())
}

func TestTape_RecordingAndClear(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	assert.False(t, tape.IsRecording())

	a := tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	a.Add(a)
	assert.Equal(t, 0, tape.NumOps(), "nothing recorded while stopped")

	tape.StartRecording()
	a.Add(a)
	assert.Equal(t, 1, tape.NumOps())

	tape.Clear()
	assert.Equal(t, 0, tape.NumOps())
	assert.True(t, tape.IsRecording(), "Clear preserves the recording state")
}

func TestBackward_Square(t *testing.T) {
	backend := newBackend()
	x := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	loss := x.Mul(x).Sum()

	grads := autodiff.Backward(loss, backend)
	assert.Equal(t, []float32{2, 4, 6}, grads[x.Raw()].Data())
}

func TestBackward_AccumulatesReuse(t *testing.T) {
	backend := newBackend()
	x := tensor.MustFromSlice([]float32{2}, tensor.Shape{1}, backend)
	// y = x*x + x*3 -> dy/dx = 2x + 3 = 7
	y := x.Mul(x).Add(x.MulScalar(3)).Sum()

	grads := autodiff.Backward(y, backend)
	assert.InDelta(t, 7, grads[x.Raw()].Data()[0], 1e-6)
}

func TestBackward_LinearLayer(t *testing.T) {
	backend := newBackend()
	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	w := tensor.MustFromSlice([]float32{0.5, -1, 2, 1}, tensor.Shape{2, 2}, backend)
	bias := tensor.MustFromSlice([]float32{1, 1}, tensor.Shape{2}, backend)

	loss := x.MatMul(w).Add(bias).Sum()
	grads := autodiff.Backward(loss, backend)

	// dL/dW = X^T @ ones, dL/db = column count.
	assert.Equal(t, []float32{4, 4, 6, 6}, grads[w.Raw()].Data())
	assert.Equal(t, []float32{2, 2}, grads[bias.Raw()].Data())
	assert.Equal(t, tensor.Shape{2}, grads[bias.Raw()].Shape())
}

func TestBackward_SeedsAtGivenOutput(t *testing.T) {
	backend := newBackend()
	x := tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	loss := x.MulScalar(2).Sum()
	_ = x.MulScalar(100).Sum() // recorded after the loss, must not contribute

	grads := autodiff.Backward(loss, backend)
	assert.Equal(t, []float32{2, 2}, grads[x.Raw()].Data())
}

func TestDetachBreaksGraph(t *testing.T) {
	backend := newBackend()
	x := tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	y := x.MulScalar(3)
	loss := y.Detach().Mul(x).Sum()

	grads := autodiff.Backward(loss, backend)
	// Only the direct path counts: d(c*x)/dx = c = 3x.
	assert.Equal(t, []float32{3, 6}, grads[x.Raw()].Data())
}

func TestNoGrad(t *testing.T) {
	backend := newBackend()
	x := tensor.MustFromSlice([]float32{1}, tensor.Shape{1}, backend)

	autodiff.NoGrad(backend, func() {
		x.Add(x)
		assert.False(t, backend.Tape().IsRecording())
	})
	assert.Equal(t, 0, backend.Tape().NumOps())
	assert.True(t, backend.Tape().IsRecording(), "recording state is restored")

	backend.Tape().StopRecording()
	autodiff.NoGrad(backend, func() {})
	assert.False(t, backend.Tape().IsRecording())
}

func TestNoGrad_RestoresOnPanic(t *testing.T) {
	backend := newBackend()
	require.Panics(t, func() {
		autodiff.NoGrad(backend, func() { panic("boom") })
	})
	assert.True(t, backend.Tape().IsRecording())
}

func TestBackward_PanicsOnEmptyTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := tensor.Scalar(1, backend)
	assert.Panics(t, func() { autodiff.Backward(x, backend) })
}
