package keras_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/born-ml/keras"
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/registry"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/born-ml/keras/internal/training"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

type fixture struct {
	backend Backend
	linear  *nn.Linear[Backend]
	model   *keras.Model[Backend]
	x, y    *tensor.Tensor[Backend]
	out     *bytes.Buffer
}

// newFixture fits y = 2x on x = 1..4 with a 1x1 Linear starting at w=0.5, b=0.
func newFixture() *fixture {
	backend := autodiff.New(cpu.New())
	linear := nn.NewLinear(1, 1, backend)
	linear.Weight().Tensor().Data()[0] = 0.5
	linear.Bias().Tensor().Data()[0] = 0

	f := &fixture{
		backend: backend,
		linear:  linear,
		model:   keras.NewModel[Backend](linear, backend),
		x:       tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4, 1}, backend),
		y:       tensor.MustFromSlice([]float32{2, 4, 6, 8}, tensor.Shape{4, 1}, backend),
		out:     &bytes.Buffer{},
	}
	f.model.SetOutput(f.out)
	return f
}

func (f *fixture) compile(t *testing.T, metrics ...any) {
	t.Helper()
	require.NoError(t, f.model.Compile(keras.CompileConfig[Backend]{
		Optimizer: optim.NewSGD(f.linear.Parameters(), optim.SGDConfig{LR: 0.01}),
		Loss:      "mse",
		Metrics:   metrics,
	}))
}

func meanError(predictions, targets *tensor.Tensor[Backend]) *tensor.Tensor[Backend] {
	return predictions.Sub(targets).Mean()
}

func TestNotCompiled(t *testing.T) {
	f := newFixture()
	assert.False(t, f.model.Compiled())

	_, err := f.model.Fit(f.x, f.y, keras.DefaultFitConfig[Backend](1))
	assert.ErrorIs(t, err, keras.ErrNotCompiled)
	_, err = f.model.Evaluate(f.x, f.y, 2)
	assert.ErrorIs(t, err, keras.ErrNotCompiled)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  keras.CompileConfig[Backend]
		is   error
		msg  string
	}{
		{"unknown loss", keras.CompileConfig[Backend]{Optimizer: "sgd", Loss: "hinge"}, registry.ErrUnknownName, `invalid loss name "hinge"`},
		{"unknown optimizer", keras.CompileConfig[Backend]{Optimizer: "lbfgs", Loss: "mse"}, registry.ErrUnknownName, `invalid optimizer name "lbfgs"`},
		{"unknown metric", keras.CompileConfig[Backend]{Optimizer: "sgd", Loss: "mse", Metrics: []any{"f1"}}, registry.ErrUnknownName, "we support"},
		{"unsupported metric type", keras.CompileConfig[Backend]{Optimizer: "sgd", Loss: "mse", Metrics: []any{42}}, nil, "unsupported metric type int"},
		{"missing loss", keras.CompileConfig[Backend]{Optimizer: "sgd"}, nil, "loss is required"},
		{"duplicate metric", keras.CompileConfig[Backend]{Optimizer: "sgd", Loss: "mse", Metrics: []any{"mae", "mae"}}, nil, "mae"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			err := f.model.Compile(tt.cfg)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.ErrorContains(t, err, tt.msg)
			assert.False(t, f.model.Compiled())
		})
	}
}

func TestFitScenario(t *testing.T) {
	f := newFixture()
	f.compile(t)

	cfg := keras.DefaultFitConfig[Backend](2)
	cfg.BatchSize = 2
	cfg.Verbose = 0
	cfg.Shuffle = false
	history, err := f.model.Fit(f.x, f.y, cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, history.Len())
	assert.Equal(t, []string{"loss", "lr"}, history.Columns())
	for _, lr := range history.Column("lr") {
		assert.InDelta(t, 0.01, lr, 1e-7)
	}
	assert.Empty(t, f.out.String())
}

func TestFitMetricOrder(t *testing.T) {
	f := newFixture()
	f.compile(t, "mae", meanError)

	cfg := keras.DefaultFitConfig[Backend](1)
	cfg.Verbose = 0
	cfg.ValidationData = [2]*tensor.Tensor[Backend]{f.x, f.y}
	history, err := f.model.Fit(f.x, f.y, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"loss", "mae", "meanError",
		"val_loss", "val_mae", "val_meanError",
		"lr",
	}, history.Columns())
}

func TestFitValidationSplit(t *testing.T) {
	f := newFixture()
	f.compile(t)

	cfg := keras.DefaultFitConfig[Backend](1)
	cfg.Verbose = 1
	cfg.ValidationSplit = 0.5
	history, err := f.model.Fit(f.x, f.y, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"loss", "val_loss", "lr"}, history.Columns())
	assert.Contains(t, f.out.String(), "Train on 2 samples, validate on 2 samples:")
}

func TestFitValidationExclusive(t *testing.T) {
	f := newFixture()
	f.compile(t)

	cfg := keras.DefaultFitConfig[Backend](1)
	cfg.ValidationSplit = 0.25
	cfg.ValidationData = [2]*tensor.Tensor[Backend]{f.x, f.y}
	_, err := f.model.Fit(f.x, f.y, cfg)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestFitValidationDataNeedsBoth(t *testing.T) {
	f := newFixture()
	f.compile(t)

	for _, pair := range [][2]*tensor.Tensor[Backend]{{f.x, nil}, {nil, f.y}} {
		cfg := keras.DefaultFitConfig[Backend](1)
		cfg.ValidationData = pair
		history, err := f.model.Fit(f.x, f.y, cfg)
		assert.ErrorContains(t, err, "needs both inputs and targets")
		assert.Nil(t, history)
	}
}

func TestFitValidationSplitTooSmall(t *testing.T) {
	f := newFixture()
	f.compile(t)
	before := f.linear.Weight().Tensor().Data()[0]

	cfg := keras.DefaultFitConfig[Backend](3)
	cfg.Verbose = 0
	cfg.ValidationSplit = 0.2
	history, err := f.model.Fit(f.x, f.y, cfg)
	assert.ErrorContains(t, err, "leaves 0 for validation")
	assert.Nil(t, history)
	assert.Equal(t, before, f.linear.Weight().Tensor().Data()[0])
}

func TestFitSampleWeights(t *testing.T) {
	t.Run("unreduced loss", func(t *testing.T) {
		f := newFixture()
		f.compile(t)
		cfg := keras.DefaultFitConfig[Backend](1)
		cfg.Verbose = 0
		cfg.SampleWeight = tensor.MustFromSlice([]float32{1, 0, 2, 1}, tensor.Shape{4}, f.backend)
		_, err := f.model.Fit(f.x, f.y, cfg)
		require.NoError(t, err)
	})

	t.Run("reducing loss", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.model.Compile(keras.CompileConfig[Backend]{
			Optimizer: "sgd",
			Loss:      nn.NewMSELoss[Backend](nn.ReductionMean),
		}))
		before := f.linear.Weight().Tensor().Data()[0]

		cfg := keras.DefaultFitConfig[Backend](1)
		cfg.Verbose = 0
		cfg.SampleWeight = tensor.MustFromSlice([]float32{1, 1, 1, 1}, tensor.Shape{4}, f.backend)
		_, err := f.model.Fit(f.x, f.y, cfg)
		assert.ErrorIs(t, err, training.ErrUnreducedLoss)
		assert.Equal(t, before, f.linear.Weight().Tensor().Data()[0])
	})
}

func TestEvaluate(t *testing.T) {
	f := newFixture()
	f.compile(t, "mae")

	first, err := f.model.Evaluate(f.x, f.y, 3)
	require.NoError(t, err)
	second, err := f.model.Evaluate(f.x, f.y, 0)
	require.NoError(t, err)

	// Predictions are 0.5x, errors 1.5x: mean squared error 2.25 * 7.5.
	loss, _ := first.Get("loss")
	assert.InDelta(t, 16.875, loss, 1e-4)
	mae, _ := first.Get("mae")
	assert.InDelta(t, 3.75, mae, 1e-5)
	assert.Equal(t, first.String(), second.String())
}

func TestPredict(t *testing.T) {
	f := newFixture()

	out, err := f.model.Predict(f.x, 3, keras.PredictOptions[Backend]{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 1}, out.Shape())
	assert.Equal(t, []float32{0.5, 1, 1.5, 2}, out.Data())
	assert.Zero(t, f.backend.Tape().NumOps())

	out, err = f.model.Predict(f.x, 0, keras.PredictOptions[Backend]{
		Activation: func(t *tensor.Tensor[Backend]) *tensor.Tensor[Backend] { return t.MulScalar(2) },
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, out.Data())

	cpuDevice := tensor.CPU
	out, err = f.model.Predict(f.x, 2, keras.PredictOptions[Backend]{Device: &cpuDevice})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 1, 1.5, 2}, out.Data())
}

func TestSaveLoadWeights(t *testing.T) {
	f := newFixture()
	path := filepath.Join(t.TempDir(), "model.safetensors")
	require.NoError(t, f.model.SaveWeights(path))

	other := newFixture()
	other.linear.Weight().Tensor().Data()[0] = -3
	other.linear.Bias().Tensor().Data()[0] = 7
	require.NoError(t, other.model.LoadWeights(path))
	assert.Equal(t, float32(0.5), other.linear.Weight().Tensor().Data()[0])
	assert.Equal(t, float32(0), other.linear.Bias().Tensor().Data()[0])

	assert.Error(t, other.model.LoadWeights(filepath.Join(t.TempDir(), "missing.safetensors")))
}

func TestSummary(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.model.Summary(1))
	assert.Contains(t, f.out.String(), "0.Linear")
	assert.Contains(t, f.out.String(), "Total params: 2")
	assert.Equal(t, 2, f.model.CountParams())
}
