// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package callbacks provides the callbacks passed to Model.Fit.
//
//	stop, err := callbacks.NewEarlyStopping[Backend](callbacks.EarlyStoppingConfig{Patience: 3})
//	cfg := keras.DefaultFitConfig[Backend](100)
//	cfg.Callbacks = []callbacks.Callback[Backend]{stop}
package callbacks

import (
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/callbacks"
	"github.com/born-ml/keras/internal/training"
)

// Callback exposes the handlers it registers for training events.
type Callback[B autodiff.BackwardCapable] = training.Callback[B]

// Context is the state of a training run, handed to every handler.
type Context[B autodiff.BackwardCapable] = training.Context[B]

// Handler reacts to a training event.
type Handler[B autodiff.BackwardCapable] = training.Handler[B]

// Events.
const (
	TrainBegin = training.TrainBegin
	EpochBegin = training.EpochBegin
	EpochEnd   = training.EpochEnd
	TrainEnd   = training.TrainEnd
)

// ErrStopTraining, returned by an EpochEnd handler, ends training after the epoch.
var ErrStopTraining = training.ErrStopTraining

// Mode tells whether a monitored value improves by decreasing or increasing.
type Mode = callbacks.Mode

// Modes.
const (
	ModeAuto = callbacks.ModeAuto
	ModeMin  = callbacks.ModeMin
	ModeMax  = callbacks.ModeMax
)

// EarlyStoppingConfig configures NewEarlyStopping.
type EarlyStoppingConfig = callbacks.EarlyStoppingConfig

// NewEarlyStopping stops training once the monitored metric stops improving.
func NewEarlyStopping[B autodiff.BackwardCapable](cfg EarlyStoppingConfig) (*callbacks.EarlyStopping[B], error) {
	return callbacks.NewEarlyStopping[B](cfg)
}

// CheckpointConfig configures NewModelCheckpoint.
type CheckpointConfig = callbacks.CheckpointConfig

// NewModelCheckpoint saves the model weights at the end of epochs.
func NewModelCheckpoint[B autodiff.BackwardCapable](cfg CheckpointConfig) (*callbacks.ModelCheckpoint[B], error) {
	return callbacks.NewModelCheckpoint[B](cfg)
}

// Schedule maps the epoch and the current learning rate to a new rate.
type Schedule = callbacks.Schedule

// NewLRScheduler applies schedule at the start of every epoch.
func NewLRScheduler[B autodiff.BackwardCapable](schedule Schedule) *callbacks.LRScheduler[B] {
	return callbacks.NewLRScheduler[B](schedule)
}

// StepDecay multiplies the rate by gamma every stepSize epochs.
func StepDecay(stepSize int, gamma float64) Schedule { return callbacks.StepDecay(stepSize, gamma) }

// ExponentialDecay multiplies the rate by gamma every epoch.
func ExponentialDecay(gamma float64) Schedule { return callbacks.ExponentialDecay(gamma) }

// CosineAnnealing anneals the rate from baseLR to etaMin over tMax epochs.
func CosineAnnealing(baseLR float64, tMax int, etaMin float64) Schedule {
	return callbacks.CosineAnnealing(baseLR, tMax, etaMin)
}

// NewCSVLogger writes the training history to path when training ends.
func NewCSVLogger[B autodiff.BackwardCapable](path string) *callbacks.CSVLogger[B] {
	return callbacks.NewCSVLogger[B](path)
}

// Lambda builds a callback from plain functions.
type Lambda[B autodiff.BackwardCapable] = callbacks.Lambda[B]
