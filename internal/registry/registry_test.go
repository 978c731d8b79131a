package registry_test

import (
	"testing"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/registry"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func TestTable(t *testing.T) {
	table := registry.NewTable[int]("thing").
		Register("One", 1).
		Register("two", 2).
		Register("ONE", 11)

	assert.Equal(t, []string{"one", "two"}, table.Names())

	v, err := table.Lookup("oNe")
	require.NoError(t, err)
	assert.Equal(t, 11, v)

	_, err = table.Lookup("three")
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownName))
	assert.Equal(t, `invalid thing name "three", we support [one two]`, err.Error())

	var unknown *registry.UnknownNameError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "three", unknown.Name)
}

func TestMetricNames(t *testing.T) {
	assert.Equal(t,
		[]string{"mse", "mae", "rmse", "acc", "binary_acc", "auc", "roc_auc"},
		registry.Metrics[Backend]().Names())

	_, err := registry.NewMetric[Backend]("f1")
	assert.EqualError(t, err, `invalid metric name "f1", we support [mse mae rmse acc binary_acc auc roc_auc]`)
}

func TestNewMetric(t *testing.T) {
	tests := []struct {
		name string
		abbr string
	}{
		{"mse", "mse"},
		{"MAE", "mae"},
		{"rmse", "rmse"},
		{"acc", "acc"},
		{"binary_acc", "acc"},
		{"auc", "auc"},
		{"roc_auc", "auc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := registry.NewMetric[Backend](tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.abbr, m.Abbr())
		})
	}

	m, err := registry.NewMetric[Backend]("acc")
	require.NoError(t, err)
	assert.IsType(t, &metrics.Accuracy[Backend]{}, m)
}

func TestNewLoss(t *testing.T) {
	assert.Equal(t,
		[]string{"mse", "mae", "ce", "bce", "ce_loss", "bce_loss"},
		registry.Losses[Backend]().Names())

	loss, err := registry.NewLoss[Backend]("ce_loss", nn.ReductionNone)
	require.NoError(t, err)
	assert.IsType(t, &nn.CrossEntropyLoss[Backend]{}, loss)

	backend := autodiff.New(cpu.New())
	mse, err := registry.NewLoss[Backend]("MSE", nn.ReductionNone)
	require.NoError(t, err)
	pred := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{3, 1}, backend)
	target := tensor.MustFromSlice([]float32{1, 0, 0}, tensor.Shape{3, 1}, backend)
	assert.Equal(t, []float32{0, 4, 9}, mse.Forward(pred, target).Data())

	_, err = registry.NewLoss[Backend]("hinge", nn.ReductionMean)
	assert.True(t, errors.Is(err, registry.ErrUnknownName))
}

func TestNewOptimizer(t *testing.T) {
	backend := autodiff.New(cpu.New())
	params := nn.NewLinear(2, 1, backend).Parameters()

	tests := []struct {
		name string
		lr   float32
	}{
		{"sgd", 0.01},
		{"Adam", 0.001},
		{"adamw", 0.001},
		{"rmsprop", 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := registry.NewOptimizer(tt.name, params)
			require.NoError(t, err)
			assert.InDelta(t, tt.lr, opt.GetLR(), 1e-9)
			require.Len(t, opt.ParamGroups(), 1)
			assert.Equal(t, 2, opt.ParamGroups()[0].NumParams())
		})
	}

	opt, err := registry.NewOptimizer("sgd", params)
	require.NoError(t, err)
	assert.IsType(t, &optim.SGD[Backend]{}, opt)

	_, err = registry.NewOptimizer("lbfgs", params)
	assert.EqualError(t, err, `invalid optimizer name "lbfgs", we support [sgd adam adamw rmsprop]`)
}
