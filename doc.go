// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package keras wraps a Born module with a Keras-style training API:
// compile it with an optimizer, a loss and metrics, fit it on tensors or
// loaders, then evaluate and predict.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model := keras.NewModel[Backend](nn.NewSequential[Backend](
//	    nn.NewLinear(4, 16, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(16, 3, backend),
//	), backend)
//
//	err := model.Compile(keras.CompileConfig[Backend]{
//	    Optimizer: "adam",
//	    Loss:      "ce",
//	    Metrics:   []any{"acc"},
//	})
//	cfg := keras.DefaultFitConfig[Backend](10)
//	cfg.ValidationSplit = 0.2
//	history, err := model.Fit(x, y, cfg)
//	fmt.Println(history.Render())
//
// Training runs as a sequence of epochs. Each epoch fires the callbacks'
// EpochBegin handlers, trains on every batch, evaluates on the validation
// data, appends a row to the History and fires the EpochEnd handlers.
// A handler returning training.ErrStopTraining at EpochEnd ends training
// after that epoch.
package keras
