package ops

import (
	"testing"

	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestReduceBroadcast(t *testing.T) {
	backend := cpu.New()
	grad, err := tensor.RawFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	assert.NoError(t, err)

	tests := []struct {
		name   string
		target tensor.Shape
		want   []float32
	}{
		{"same", tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}},
		{"row", tensor.Shape{3}, []float32{5, 7, 9}},
		{"column", tensor.Shape{2, 1}, []float32{6, 15}},
		{"keep_row", tensor.Shape{1, 3}, []float32{5, 7, 9}},
		{"scalar", tensor.Shape{}, []float32{21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reduceBroadcast(grad, tt.target, backend)
			assert.True(t, tt.target.Equal(got.Shape()), "shape %v", got.Shape())
			assert.Equal(t, tt.want, got.Data())
		})
	}
}

func TestGatherOp_Backward(t *testing.T) {
	x := tensor.MustNewRaw(tensor.Shape{2, 3}, tensor.CPU)
	idx, _ := tensor.RawFromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPU)
	out := cpu.New().Gather(x, idx)
	g, _ := tensor.RawFromSlice([]float32{5, 7}, tensor.Shape{2}, tensor.CPU)

	grads := NewGatherOp(x, idx, out).Backward(g, cpu.New())
	assert.Equal(t, []float32{0, 5, 0, 0, 0, 7}, grads[0].Data())
	assert.Nil(t, grads[1], "index gets no gradient")
}

func TestTransposeOp_InversePermutation(t *testing.T) {
	backend := cpu.New()
	x, _ := tensor.RawFromSlice([]float32{0, 1, 2, 3, 4, 5}, tensor.Shape{1, 2, 3}, tensor.CPU)
	out := backend.Transpose(x, 2, 0, 1)

	grads := NewTransposeOp(x, out, []int{2, 0, 1}).Backward(out, backend)
	assert.Equal(t, x.Shape(), grads[0].Shape())
	assert.Equal(t, x.Data(), grads[0].Data())
}
