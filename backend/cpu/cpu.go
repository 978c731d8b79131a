// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go compute backend.
//
// Large element-wise operations and matrix multiplications are split
// across the physical cores of the host.
package cpu

import (
	internalcpu "github.com/born-ml/keras/internal/backend/cpu"
	"github.com/born-ml/keras/internal/parallel"
	"github.com/born-ml/keras/tensor"
)

// Backend is the CPU backend.
type Backend = internalcpu.CPUBackend

var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend using every physical core.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
func New() *Backend {
	return internalcpu.New()
}

// NewSingleThreaded creates a CPU backend that never fans out.
func NewSingleThreaded() *Backend {
	cfg := parallel.DefaultConfig()
	cfg.Enabled = false
	return internalcpu.NewWithConfig(cfg)
}

// Describe returns a one-line description of the host CPU.
func Describe() string {
	return parallel.Describe()
}
