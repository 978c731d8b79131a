// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package keras

import (
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/data"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/born-ml/keras/internal/training"
	"github.com/pkg/errors"
)

// DefaultBatchSize is used when a batch size is not positive.
const DefaultBatchSize = 32

// FitConfig configures Model.Fit. Start from DefaultFitConfig to get the
// documented defaults.
type FitConfig[B autodiff.BackwardCapable] struct {
	Epochs    int
	BatchSize int // Default 32.

	// ValidationSplit is the fraction of the samples held out for validation.
	// The split is random, seeded by ValSplitSeed, and happens after the
	// sample weights are attached.
	ValidationSplit float64
	ValSplitSeed    int64 // Default 7.

	// ValidationData holds validation inputs and targets. Mutually exclusive
	// with ValidationSplit.
	ValidationData [2]*tensor.Tensor[B]

	// SampleWeight holds one weight per training sample. The loss must be unreduced.
	SampleWeight *tensor.Tensor[B]

	Callbacks []training.Callback[B]

	// Verbose is 0 for silent, 1 for one line per epoch, 2 for a compact line.
	Verbose int

	// PreciseTrainMetrics scores the train metrics with the parameters at the
	// end of the epoch instead of those each batch was trained with.
	PreciseTrainMetrics bool

	Shuffle bool  // Reshuffle the training samples every epoch.
	Seed    int64 // Seed of the shuffle.
}

// DefaultFitConfig returns a FitConfig for epochs epochs with verbosity 1,
// batches of 32 shuffled samples and validation split seed 7.
func DefaultFitConfig[B autodiff.BackwardCapable](epochs int) FitConfig[B] {
	return FitConfig[B]{
		Epochs:       epochs,
		BatchSize:    DefaultBatchSize,
		ValSplitSeed: 7,
		Verbose:      1,
		Shuffle:      true,
	}
}

// Fit trains the model on x and y.
func (m *Model[B]) Fit(x, y *tensor.Tensor[B], cfg FitConfig[B]) (*training.History, error) {
	if m.trainer == nil {
		return nil, ErrNotCompiled
	}
	hasValData := cfg.ValidationData[0] != nil || cfg.ValidationData[1] != nil
	if hasValData && (cfg.ValidationData[0] == nil || cfg.ValidationData[1] == nil) {
		return nil, errors.New("fit: ValidationData needs both inputs and targets")
	}
	if hasValData && cfg.ValidationSplit > 0 {
		return nil, errors.New("fit: ValidationData and ValidationSplit are mutually exclusive")
	}
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		return nil, errors.Errorf("fit: validation split must be in [0, 1), got %g", cfg.ValidationSplit)
	}

	full, err := data.NewTensorDataset(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "fit")
	}
	if cfg.SampleWeight != nil {
		if full, err = full.WithWeights(cfg.SampleWeight); err != nil {
			return nil, errors.Wrap(err, "fit")
		}
	}

	var trainSet, valSet data.Dataset[B] = full, nil
	switch {
	case cfg.ValidationSplit > 0:
		train, val, err := data.SplitFraction[B](full, cfg.ValidationSplit, cfg.ValSplitSeed)
		if err != nil {
			return nil, errors.Wrap(err, "fit")
		}
		trainSet, valSet = train, val
	case hasValData:
		val, err := data.NewTensorDataset(cfg.ValidationData[0], cfg.ValidationData[1])
		if err != nil {
			return nil, errors.Wrap(err, "fit: validation data")
		}
		valSet = val
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	train, err := data.NewLoader(trainSet, data.LoaderConfig{BatchSize: batchSize, Shuffle: cfg.Shuffle, Seed: cfg.Seed})
	if err != nil {
		return nil, err
	}
	var val training.Loader[B]
	if valSet != nil {
		valLoader, err := data.NewLoader(valSet, data.LoaderConfig{BatchSize: batchSize})
		if err != nil {
			return nil, err
		}
		val = valLoader
	}
	return m.FitLoader(train, val, cfg)
}

// FitLoader trains the model on batches from train, validating on val when
// it is not nil. Only Epochs, Callbacks, Verbose and PreciseTrainMetrics of
// cfg are used.
func (m *Model[B]) FitLoader(train, val training.Loader[B], cfg FitConfig[B]) (*training.History, error) {
	if m.trainer == nil {
		return nil, ErrNotCompiled
	}
	m.trainer.RegisterCallbacks(cfg.Callbacks...)
	return m.trainer.Run(train, val, cfg.Epochs, cfg.Verbose, cfg.PreciseTrainMetrics)
}

// Evaluate returns the loss and metrics of the model on x and y, computed
// in batches in inference mode.
func (m *Model[B]) Evaluate(x, y *tensor.Tensor[B], batchSize int) (*training.Snapshot, error) {
	if m.trainer == nil {
		return nil, ErrNotCompiled
	}
	ds, err := data.NewTensorDataset(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	loader, err := data.NewLoader[B](ds, data.LoaderConfig{BatchSize: batchSize})
	if err != nil {
		return nil, err
	}
	return m.trainer.Evaluate(loader)
}

// EvaluateLoader returns the loss and metrics of the model on loader.
func (m *Model[B]) EvaluateLoader(loader training.Loader[B]) (*training.Snapshot, error) {
	if m.trainer == nil {
		return nil, ErrNotCompiled
	}
	return m.trainer.Evaluate(loader)
}

// PredictOptions configures Model.Predict.
type PredictOptions[B tensor.Backend] struct {
	// Device inputs are moved to. Nil means the compiled device, or CPU when
	// the model is not compiled.
	Device *tensor.Device

	// Activation is applied to the concatenated outputs, e.g. softmax on logits.
	Activation func(*tensor.Tensor[B]) *tensor.Tensor[B]
}

// Predict runs the model on x in batches, in inference mode and without
// recording gradients, and returns the outputs concatenated along dimension 0.
// Predict does not require Compile.
func (m *Model[B]) Predict(x *tensor.Tensor[B], batchSize int, opts PredictOptions[B]) (*tensor.Tensor[B], error) {
	if x.Rank() == 0 || x.Shape()[0] == 0 {
		return nil, errors.Wrapf(training.ErrEmptyDataset, "predict on shape %v", x.Shape())
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	device := tensor.CPU
	switch {
	case opts.Device != nil:
		device = *opts.Device
	case m.trainer != nil:
		device = m.trainer.Context().Device
	}

	nn.SetTraining(m.module, false)
	n := x.Shape()[0]
	outputs := make([]*tensor.Tensor[B], 0, (n+batchSize-1)/batchSize)
	autodiff.NoGrad(m.backend, func() {
		for start := 0; start < n; start += batchSize {
			end := min(start+batchSize, n)
			outputs = append(outputs, m.module.Forward(x.Slice(start, end).To(device)))
		}
	})

	out := tensor.Cat(outputs)
	if opts.Activation != nil {
		autodiff.NoGrad(m.backend, func() {
			out = opts.Activation(out)
		})
	}
	return out, nil
}
