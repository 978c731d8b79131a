// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package keras

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/registry"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
)

// CompileConfig configures a Model for training.
type CompileConfig[B tensor.Backend] struct {
	// Optimizer is a name ("sgd", "adam", "adamw", "rmsprop") or an optim.Optimizer.
	Optimizer any

	// Loss is a name ("mse", "mae", "ce", "bce") or an nn.Loss[B].
	// Named losses are built unreduced, so they also work with sample weights.
	Loss any

	// Metrics are names, metrics.Metric[B] values (keyed by their abbreviation),
	// metrics.Named[B] values or metrics.ScoreFunc[B] functions (keyed by their
	// function name).
	Metrics []any

	// NamedMetrics are added after Metrics under their own names.
	NamedMetrics []metrics.Named[B]

	// Device every batch is moved to. Default tensor.CPU.
	Device tensor.Device
}

// Compile configures the model for training. The loss is always the first
// metric, under the name "loss".
func (m *Model[B]) Compile(cfg CompileConfig[B]) error {
	loss, err := m.resolveLoss(cfg.Loss)
	if err != nil {
		return err
	}
	opt, err := m.resolveOptimizer(cfg.Optimizer)
	if err != nil {
		return err
	}

	named := []metrics.Named[B]{metrics.NewNamed("loss", metrics.ScoreFunc[B](loss.Forward))}
	for _, spec := range cfg.Metrics {
		n, err := resolveMetric[B](spec)
		if err != nil {
			return err
		}
		named = append(named, n)
	}
	named = append(named, cfg.NamedMetrics...)

	device := cfg.Device
	if device == tensor.CPU {
		device = cpu.DefaultDevice()
	}

	trainer, err := training.New(training.Config[B]{
		Backend:   m.backend,
		Model:     m.module,
		Optimizer: opt,
		Loss:      loss,
		Metrics:   named,
		Device:    device,
		Output:    m.out,
	})
	if err != nil {
		return err
	}
	m.trainer = trainer
	return nil
}

func (m *Model[B]) resolveLoss(spec any) (nn.Loss[B], error) {
	switch l := spec.(type) {
	case string:
		return registry.NewLoss[B](l, nn.ReductionNone)
	case nn.Loss[B]:
		return l, nil
	case nil:
		return nil, errors.New("compile: loss is required")
	}
	return nil, errors.Errorf("compile: unsupported loss type %T", spec)
}

func (m *Model[B]) resolveOptimizer(spec any) (optim.Optimizer, error) {
	switch o := spec.(type) {
	case string:
		return registry.NewOptimizer(o, m.module.Parameters())
	case optim.Optimizer:
		return o, nil
	case nil:
		return nil, errors.New("compile: optimizer is required")
	}
	return nil, errors.Errorf("compile: unsupported optimizer type %T", spec)
}

func resolveMetric[B tensor.Backend](spec any) (metrics.Named[B], error) {
	switch s := spec.(type) {
	case string:
		metric, err := registry.NewMetric[B](s)
		if err != nil {
			return metrics.Named[B]{}, err
		}
		return metrics.FromMetric(metric), nil
	case metrics.Named[B]:
		return s, nil
	case metrics.Metric[B]:
		return metrics.FromMetric(s), nil
	case metrics.ScoreFunc[B]:
		return metrics.NewNamed(funcName(s), s), nil
	case func(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B]:
		return metrics.NewNamed(funcName(s), metrics.ScoreFunc[B](s)), nil
	}
	return metrics.Named[B]{}, errors.Errorf("compile: unsupported metric type %T", spec)
}

// funcName returns the unqualified name of a function, e.g. "meanError" for
// "github.com/me/pkg.meanError".
func funcName(fn any) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	name = name[strings.LastIndexByte(name, '/')+1:]
	if _, after, ok := strings.Cut(name, "."); ok {
		name = after
	}
	return strings.TrimSuffix(name, "[...]")
}
