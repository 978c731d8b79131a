package callbacks

import (
	"github.com/born-ml/keras/internal/autodiff"
	"github.com/born-ml/keras/internal/training"
)

// Lambda builds a callback from plain functions. Nil fields are skipped.
type Lambda[B autodiff.BackwardCapable] struct {
	OnTrainBegin training.Handler[B]
	OnEpochBegin training.Handler[B]
	OnEpochEnd   training.Handler[B]
	OnTrainEnd   training.Handler[B]
}

// Hooks implements training.Callback.
func (l *Lambda[B]) Hooks() []training.Hook[B] {
	var hooks []training.Hook[B]
	for _, h := range []training.Hook[B]{
		{Event: training.TrainBegin, Handler: l.OnTrainBegin},
		{Event: training.EpochBegin, Handler: l.OnEpochBegin},
		{Event: training.EpochEnd, Handler: l.OnEpochEnd},
		{Event: training.TrainEnd, Handler: l.OnTrainEnd},
	} {
		if h.Handler != nil {
			hooks = append(hooks, h)
		}
	}
	return hooks
}
