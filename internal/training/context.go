package training

import (
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/metrics"
	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/optim"
	"github.com/born-ml/keras/internal/tensor"
)

// Context is the state of a run, shared by the Trainer with its callbacks.
// Handlers may change it, e.g. the learning rate through Optimizer.
type Context[B autodiff.BackwardCapable] struct {
	Epoch     int // current epoch, 1-based; 0 before the first epoch
	MaxEpochs int
	Verbose   int

	Backend   B
	Device    tensor.Device
	Model     nn.Module[B]
	Optimizer optim.Optimizer
	Loss      nn.Loss[B]
	Metrics   []metrics.Named[B]

	// History holds the rows of the epochs completed so far.
	History *History
	// Logs is the row of the latest epoch, set before EpochEnd fires.
	Logs *Snapshot
}

// LR returns the learning rate of the first parameter group.
func (c *Context[B]) LR() float64 {
	return float64(c.Optimizer.GetLR())
}
