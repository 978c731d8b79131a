package summary_test

import (
	"testing"

	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/summary"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *cpu.CPUBackend

func TestOf(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[Backend](
		nn.NewLinear(4, 8, backend),
		nn.NewReLU[Backend](),
		nn.NewLinear(8, 3, backend),
	)

	s, err := summary.Of[Backend](model, tensor.Shape{4}, backend)
	require.NoError(t, err)
	require.Len(t, s.Layers, 3)

	assert.Equal(t, "0.Linear", s.Layers[0].Name)
	assert.Equal(t, tensor.Shape{1, 8}, s.Layers[0].OutputShape)
	assert.Equal(t, 40, s.Layers[0].Params)
	assert.Equal(t, "ReLU", s.Layers[1].Type)
	assert.Equal(t, 0, s.Layers[1].Params)
	assert.Equal(t, tensor.Shape{1, 3}, s.Layers[2].OutputShape)
	assert.Equal(t, 27, s.Layers[2].Params)
	assert.Equal(t, 67, s.Total)

	out := s.String()
	assert.Contains(t, out, "Layer (type)")
	assert.Contains(t, out, "(None, 8)")
	assert.Contains(t, out, "Total params: 67")
}

func TestOfSingleModule(t *testing.T) {
	backend := cpu.New()
	s, err := summary.Of[Backend](nn.NewLinear(2, 1, backend), tensor.Shape{2}, backend)
	require.NoError(t, err)
	require.Len(t, s.Layers, 1)
	assert.Equal(t, 3, s.Total)
}

func TestOfShapeMismatch(t *testing.T) {
	backend := cpu.New()
	_, err := summary.Of[Backend](nn.NewLinear(4, 2, backend), tensor.Shape{3}, backend)
	assert.Error(t, err)
}
