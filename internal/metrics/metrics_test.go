package metrics_test

import (
	"math"
	"testing"

	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/stretchr/testify/assert"
)

type Backend = *cpu.CPUBackend

func vec(backend Backend, shape tensor.Shape, data ...float32) *tensor.Tensor[Backend] {
	return tensor.MustFromSlice(data, shape, backend)
}

func TestAccuracy(t *testing.T) {
	backend := cpu.New()
	pred := vec(backend, tensor.Shape{4, 3},
		0.1, 0.8, 0.1,
		0.7, 0.2, 0.1,
		0.2, 0.2, 0.6,
		0.3, 0.4, 0.3,
	)

	acc := metrics.NewAccuracy[Backend]()
	assert.Equal(t, "acc", acc.Abbr())

	score := acc.Score(pred, vec(backend, tensor.Shape{4}, 1, 0, 2, 0))
	assert.True(t, score.IsScalar())
	assert.InDelta(t, 0.75, score.Item(), 1e-6)

	// Column-vector labels are accepted.
	score = acc.Score(pred, vec(backend, tensor.Shape{4, 1}, 1, 0, 2, 1))
	assert.InDelta(t, 1.0, score.Item(), 1e-6)

	assert.Panics(t, func() { acc.Score(pred, vec(backend, tensor.Shape{2}, 0, 1)) })
}

func TestBinaryAccuracy(t *testing.T) {
	backend := cpu.New()
	pred := vec(backend, tensor.Shape{4, 1}, 0.9, 0.4, 0.6, 0.1)
	target := vec(backend, tensor.Shape{4, 1}, 1, 0, 0, 0)

	acc := metrics.NewBinaryAccuracy[Backend]()
	assert.Equal(t, "acc", acc.Abbr())
	assert.InDelta(t, 0.75, acc.Score(pred, target).Item(), 1e-6)
}

func TestRegressionMetrics(t *testing.T) {
	backend := cpu.New()
	pred := vec(backend, tensor.Shape{4}, 1, 2, 3, 4)
	target := vec(backend, tensor.Shape{4, 1}, 1, 0, 3, 8)

	tests := []struct {
		metric metrics.Metric[Backend]
		abbr   string
		want   float64
	}{
		{metrics.NewMeanSquaredError[Backend](), "mse", 5},
		{metrics.NewMeanAbsoluteError[Backend](), "mae", 1.5},
		{metrics.NewRootMeanSquaredError[Backend](), "rmse", math.Sqrt(5)},
	}
	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			assert.Equal(t, tt.abbr, tt.metric.Abbr())
			assert.InDelta(t, tt.want, tt.metric.Score(pred, target).Item(), 1e-5)
		})
	}
}

func TestROCAUC(t *testing.T) {
	backend := cpu.New()
	auc := metrics.NewROCAUC[Backend]()
	assert.Equal(t, "auc", auc.Abbr())

	t.Run("perfect", func(t *testing.T) {
		score := auc.Score(vec(backend, tensor.Shape{4}, 0.1, 0.2, 0.8, 0.9), vec(backend, tensor.Shape{4}, 0, 0, 1, 1))
		assert.InDelta(t, 1.0, score.Item(), 1e-6)
	})

	t.Run("inverted", func(t *testing.T) {
		score := auc.Score(vec(backend, tensor.Shape{4, 1}, 0.9, 0.8, 0.2, 0.1), vec(backend, tensor.Shape{4}, 0, 0, 1, 1))
		assert.InDelta(t, 0.0, score.Item(), 1e-6)
	})

	t.Run("ties share rank", func(t *testing.T) {
		// One positive and one negative with equal scores count half.
		score := auc.Score(vec(backend, tensor.Shape{4}, 0.5, 0.5, 0.1, 0.9), vec(backend, tensor.Shape{4}, 1, 0, 0, 1))
		assert.InDelta(t, 0.875, score.Item(), 1e-6)
	})

	t.Run("two column probabilities", func(t *testing.T) {
		pred := vec(backend, tensor.Shape{3, 2}, 0.7, 0.3, 0.2, 0.8, 0.6, 0.4)
		score := auc.Score(pred, vec(backend, tensor.Shape{3}, 0, 1, 1))
		assert.InDelta(t, 1.0, score.Item(), 1e-6)
	})

	t.Run("single class", func(t *testing.T) {
		score := auc.Score(vec(backend, tensor.Shape{2}, 0.1, 0.9), vec(backend, tensor.Shape{2}, 1, 1))
		assert.True(t, math.IsNaN(float64(score.Item())))
	})
}

func TestNamed(t *testing.T) {
	backend := cpu.New()
	maxErr := metrics.NewNamed[Backend]("max_err", func(pred, target *tensor.Tensor[Backend]) *tensor.Tensor[Backend] {
		return pred.Sub(target).Abs()
	})
	assert.Equal(t, "max_err", maxErr.Abbr())

	got := maxErr.Score(vec(backend, tensor.Shape{2}, 1, 5), vec(backend, tensor.Shape{2}, 2, 2))
	assert.Equal(t, []float32{1, 3}, got.Data())

	named := metrics.FromMetric[Backend](metrics.NewMeanSquaredError[Backend]())
	assert.Equal(t, "mse", named.Name)
	assert.Equal(t, "max_err", metrics.FromMetric[Backend](maxErr).Name)
}
