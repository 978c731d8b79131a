package registry

import (
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/tensor"
)

// LossFactory builds a loss with the given reduction.
type LossFactory[B tensor.Backend] func(reduction nn.Reduction) nn.Loss[B]

// MetricFactory builds a metric.
type MetricFactory[B tensor.Backend] func() metrics.Metric[B]

// OptimizerFactory builds an optimizer with default hyper-parameters over params.
type OptimizerFactory[B tensor.Backend] func(params []*nn.Parameter[B]) optim.Optimizer

// Losses returns the built-in loss table:
// mse, mae, ce, bce and the deprecated aliases ce_loss, bce_loss.
func Losses[B tensor.Backend]() *Table[LossFactory[B]] {
	ce := func(r nn.Reduction) nn.Loss[B] {
		return nn.NewCrossEntropyLoss[B](nn.CrossEntropyConfig{Reduction: r})
	}
	bce := func(r nn.Reduction) nn.Loss[B] { return nn.NewBCEWithLogitsLoss[B](r) }
	return NewTable[LossFactory[B]]("loss").
		Register("mse", func(r nn.Reduction) nn.Loss[B] { return nn.NewMSELoss[B](r) }).
		Register("mae", func(r nn.Reduction) nn.Loss[B] { return nn.NewL1Loss[B](r) }).
		Register("ce", ce).
		Register("bce", bce).
		Register("ce_loss", ce).
		Register("bce_loss", bce)
}

// Metrics returns the built-in metric table:
// mse, mae, rmse, acc, binary_acc, auc, roc_auc.
func Metrics[B tensor.Backend]() *Table[MetricFactory[B]] {
	auc := func() metrics.Metric[B] { return metrics.NewROCAUC[B]() }
	return NewTable[MetricFactory[B]]("metric").
		Register("mse", func() metrics.Metric[B] { return metrics.NewMeanSquaredError[B]() }).
		Register("mae", func() metrics.Metric[B] { return metrics.NewMeanAbsoluteError[B]() }).
		Register("rmse", func() metrics.Metric[B] { return metrics.NewRootMeanSquaredError[B]() }).
		Register("acc", func() metrics.Metric[B] { return metrics.NewAccuracy[B]() }).
		Register("binary_acc", func() metrics.Metric[B] { return metrics.NewBinaryAccuracy[B]() }).
		Register("auc", auc).
		Register("roc_auc", auc)
}

// Optimizers returns the built-in optimizer table: sgd, adam, adamw, rmsprop.
func Optimizers[B tensor.Backend]() *Table[OptimizerFactory[B]] {
	return NewTable[OptimizerFactory[B]]("optimizer").
		Register("sgd", func(p []*nn.Parameter[B]) optim.Optimizer { return optim.NewSGD(p, optim.SGDConfig{}) }).
		Register("adam", func(p []*nn.Parameter[B]) optim.Optimizer { return optim.NewAdam(p, optim.AdamConfig{}) }).
		Register("adamw", func(p []*nn.Parameter[B]) optim.Optimizer { return optim.NewAdamW(p, optim.AdamConfig{}) }).
		Register("rmsprop", func(p []*nn.Parameter[B]) optim.Optimizer { return optim.NewRMSprop(p, optim.RMSpropConfig{}) })
}

// NewLoss builds the named loss.
func NewLoss[B tensor.Backend](name string, reduction nn.Reduction) (nn.Loss[B], error) {
	factory, err := Losses[B]().Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(reduction), nil
}

// NewMetric builds the named metric.
func NewMetric[B tensor.Backend](name string) (metrics.Metric[B], error) {
	factory, err := Metrics[B]().Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

// NewOptimizer builds the named optimizer over params.
func NewOptimizer[B tensor.Backend](name string, params []*nn.Parameter[B]) (optim.Optimizer, error) {
	factory, err := Optimizers[B]().Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(params), nil
}
