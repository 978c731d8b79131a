// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the optimizers of keras models.
//
// Every optimizer holds parameter groups; GetLR and SetLR act on the
// learning rate of the first group and every group respectively.
package optim

import (
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/tensor"
)

// Optimizer updates parameters from their gradients.
type Optimizer = optim.Optimizer

// ParamGroup is a set of parameters sharing hyper-parameters.
type ParamGroup = optim.ParamGroup

// SGDConfig configures NewSGD. LR defaults to 0.01.
type SGDConfig = optim.SGDConfig

// NewSGD creates stochastic gradient descent with optional momentum.
//
// Example:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1, Momentum: 0.9})
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *optim.SGD[B] {
	return optim.NewSGD(params, config)
}

// AdamConfig configures NewAdam and NewAdamW. LR defaults to 0.001.
type AdamConfig = optim.AdamConfig

// NewAdam creates Adam.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *optim.Adam[B] {
	return optim.NewAdam(params, config)
}

// NewAdamW creates Adam with decoupled weight decay.
func NewAdamW[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *optim.Adam[B] {
	return optim.NewAdamW(params, config)
}

// RMSpropConfig configures NewRMSprop. LR defaults to 0.01.
type RMSpropConfig = optim.RMSpropConfig

// NewRMSprop creates RMSprop.
func NewRMSprop[B tensor.Backend](params []*nn.Parameter[B], config RMSpropConfig) *optim.RMSprop[B] {
	return optim.NewRMSprop(params, config)
}
