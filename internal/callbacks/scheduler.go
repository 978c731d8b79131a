package callbacks

import (
	"math"

	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/training"
	"k8s.io/klog/v2"
)

// Schedule maps the 1-based epoch and the current learning rate to the
// rate used for that epoch.
type Schedule func(epoch int, lr float64) float64

// LRScheduler sets the optimizer's learning rate at the start of every epoch.
//
// Example:
//
//	sched := callbacks.NewLRScheduler[Backend](callbacks.StepDecay(10, 0.5))
type LRScheduler[B autodiff.BackwardCapable] struct {
	schedule Schedule
}

// NewLRScheduler creates an LRScheduler callback.
func NewLRScheduler[B autodiff.BackwardCapable](schedule Schedule) *LRScheduler[B] {
	return &LRScheduler[B]{schedule: schedule}
}

// Hooks implements training.Callback.
func (s *LRScheduler[B]) Hooks() []training.Hook[B] {
	return []training.Hook[B]{{Event: training.EpochBegin, Handler: s.onEpochBegin}}
}

func (s *LRScheduler[B]) onEpochBegin(ctx *training.Context[B]) error {
	lr := ctx.LR()
	next := s.schedule(ctx.Epoch, lr)
	if next != lr {
		klog.V(1).Infof("epoch %d: learning rate %g -> %g", ctx.Epoch, lr, next)
		ctx.Optimizer.SetLR(float32(next))
	}
	return nil
}

// StepDecay multiplies the rate by gamma every stepSize epochs.
func StepDecay(stepSize int, gamma float64) Schedule {
	return func(epoch int, lr float64) float64 {
		if stepSize > 0 && epoch > 1 && (epoch-1)%stepSize == 0 {
			return lr * gamma
		}
		return lr
	}
}

// ExponentialDecay multiplies the rate by gamma every epoch after the first.
func ExponentialDecay(gamma float64) Schedule {
	return func(epoch int, lr float64) float64 {
		if epoch > 1 {
			return lr * gamma
		}
		return lr
	}
}

// CosineAnnealing anneals from baseLR at epoch 1 to etaMin at epoch tMax+1.
// A non-positive tMax yields etaMin from the first epoch.
func CosineAnnealing(baseLR float64, tMax int, etaMin float64) Schedule {
	return func(epoch int, _ float64) float64 {
		if tMax <= 0 {
			return etaMin
		}
		t := min(epoch-1, tMax)
		return etaMin + (baseLR-etaMin)*(1+math.Cos(math.Pi*float64(t)/float64(tMax)))/2
	}
}
