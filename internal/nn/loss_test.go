package nn_test

import (
	"math"
	"testing"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReduction(t *testing.T) {
	r, err := nn.ParseReduction("NONE")
	require.NoError(t, err)
	assert.Equal(t, nn.ReductionNone, r)
	assert.Equal(t, "sum", nn.ReductionSum.String())

	_, err = nn.ParseReduction("max")
	assert.Error(t, err)
}

func TestMSELoss_Reductions(t *testing.T) {
	backend := newBackend()
	pred := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	target := tensor.MustFromSlice([]float32{0, 2, 3, 6}, tensor.Shape{2, 2}, backend)

	mean := nn.NewMSELoss[Backend](nn.ReductionMean).Forward(pred, target)
	assert.True(t, mean.IsScalar())
	assert.InDelta(t, 1.25, mean.Item(), 1e-6)

	sum := nn.NewMSELoss[Backend](nn.ReductionSum).Forward(pred, target)
	assert.InDelta(t, 5, sum.Item(), 1e-6)

	none := nn.NewMSELoss[Backend](nn.ReductionNone).Forward(pred, target)
	assert.Equal(t, tensor.Shape{2}, none.Shape())
	assert.Equal(t, []float32{0.5, 2}, none.Data())

	assert.Panics(t, func() {
		nn.NewMSELoss[Backend](nn.ReductionMean).Forward(pred, tensor.Zeros(tensor.Shape{4}, backend))
	})
}

func TestL1Loss(t *testing.T) {
	backend := newBackend()
	pred := tensor.MustFromSlice([]float32{1, -2, 3}, tensor.Shape{3}, backend)
	target := tensor.MustFromSlice([]float32{0, 0, 0}, tensor.Shape{3}, backend)

	assert.InDelta(t, 2, nn.NewL1Loss[Backend](nn.ReductionMean).Forward(pred, target).Item(), 1e-6)
	assert.Equal(t, []float32{1, 2, 3}, nn.NewL1Loss[Backend](nn.ReductionNone).Forward(pred, target).Data())
}

func TestBCEWithLogitsLoss(t *testing.T) {
	backend := newBackend()
	logits := tensor.MustFromSlice([]float32{0, 2, -3}, tensor.Shape{3, 1}, backend)
	target := tensor.MustFromSlice([]float32{1, 0, 0}, tensor.Shape{3, 1}, backend)

	loss := nn.NewBCEWithLogitsLoss[Backend](nn.ReductionNone).Forward(logits, target)
	assert.Equal(t, tensor.Shape{3}, loss.Shape())

	bce := func(x, y float64) float64 {
		p := 1 / (1 + math.Exp(-x))
		return -(y*math.Log(p) + (1-y)*math.Log(1-p))
	}
	assert.InDelta(t, bce(0, 1), loss.Data()[0], 1e-5)
	assert.InDelta(t, bce(2, 0), loss.Data()[1], 1e-5)
	assert.InDelta(t, bce(-3, 0), loss.Data()[2], 1e-5)
}

func TestCrossEntropyLoss(t *testing.T) {
	backend := newBackend()
	logits := tensor.MustFromSlice([]float32{2, 1, 0, 0, 0, 3}, tensor.Shape{2, 3}, backend)
	labels := tensor.MustFromSlice([]float32{0, 2}, tensor.Shape{2}, backend)

	logSoftmax := func(row []float64, j int) float64 {
		var s float64
		for _, v := range row {
			s += math.Exp(v)
		}
		return row[j] - math.Log(s)
	}
	l0 := -logSoftmax([]float64{2, 1, 0}, 0)
	l1 := -logSoftmax([]float64{0, 0, 3}, 2)

	t.Run("Mean", func(t *testing.T) {
		loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{}).Forward(logits, labels)
		assert.InDelta(t, (l0+l1)/2, loss.Item(), 1e-5)
	})

	t.Run("None", func(t *testing.T) {
		loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{Reduction: nn.ReductionNone}).Forward(logits, labels)
		assert.InDelta(t, l0, loss.Data()[0], 1e-5)
		assert.InDelta(t, l1, loss.Data()[1], 1e-5)
	})

	t.Run("LabelSmoothing", func(t *testing.T) {
		eps := 0.3
		loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{
			Reduction: nn.ReductionNone, LabelSmoothing: float32(eps),
		}).Forward(logits, labels)

		row := []float64{2, 1, 0}
		want := 0.0
		for j := range row {
			target := eps / 3
			if j == 0 {
				target += 1 - eps
			}
			want -= target * logSoftmax(row, j)
		}
		assert.InDelta(t, want, loss.Data()[0], 1e-5)
	})

	t.Run("ClassWeight", func(t *testing.T) {
		loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{
			Reduction: nn.ReductionNone, ClassWeight: []float32{2, 1, 0.5},
		}).Forward(logits, labels)
		assert.InDelta(t, 2*l0, loss.Data()[0], 1e-5)
		assert.InDelta(t, 0.5*l1, loss.Data()[1], 1e-5)
	})

	t.Run("ColumnLabels", func(t *testing.T) {
		col := labels.Reshape(2, 1)
		loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{}).Forward(logits, col)
		assert.InDelta(t, (l0+l1)/2, loss.Item(), 1e-5)
	})
}

func TestCrossEntropyLoss_Gradient(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()
	logits := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	labels := tensor.MustFromSlice([]float32{1}, tensor.Shape{1}, backend)

	loss := nn.NewCrossEntropyLoss[Backend](nn.CrossEntropyConfig{}).Forward(logits, labels)
	grads := autodiff.Backward(loss, backend)

	// d/dx = softmax(x) - onehot(y)
	softmax := logits.Softmax().Data()
	got := grads[logits.Raw()].Data()
	for j := range got {
		want := softmax[j]
		if j == 1 {
			want--
		}
		assert.InDelta(t, want, got[j], 1e-5)
	}
}
